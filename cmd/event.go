package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/ponto-eletronico/internal/broker"
	"github.com/frahmantamala/ponto-eletronico/internal/core/events"
	"github.com/frahmantamala/ponto-eletronico/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish test events through the event bus and the broker`,
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [event-type]",
	Short:     "Publish a test event",
	Long:      `Publish a test event to the event bus, forwarding it to the broker when enabled`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: events.Types,
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(args[0])
	},
}

var eventData string

func publishTestEvent(eventType string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupRuntime(cfg)
	log := logger.LoggerWrapper()

	eventBus := events.NewEventBus(log)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		log.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	if cfg.Broker.Enabled {
		publisher, err := broker.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue)
		if err != nil {
			return fmt.Errorf("failed to connect to broker: %w", err)
		}
		defer publisher.Close()
		broker.Forward(eventBus, publisher, log)
	}

	testEvent := events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data: map[string]interface{}{
			"message": eventData,
			"source":  "cli-command",
		},
	}

	log.Info("publishing test event", "event_type", eventType, "event_id", testEvent.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := eventBus.Publish(ctx, testEvent); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := eventBus.Wait(ctx); err != nil {
		return fmt.Errorf("event handlers did not finish: %w", err)
	}

	log.Info("test event published successfully")
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
