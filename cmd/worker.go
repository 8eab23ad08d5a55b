package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/ponto-eletronico/internal/broker"
	"github.com/frahmantamala/ponto-eletronico/internal/core/events"
	"github.com/frahmantamala/ponto-eletronico/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background workers that react to time-clock events`,
}

// Event worker command
var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Consume time-clock events from the broker",
	Long:  `Consume the broker queue and dispatch every event to the local event bus`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startEventWorker()
	},
}

var workerQueue string

func startEventWorker() error {
	config, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupRuntime(config)
	log := logger.LoggerWrapper()

	queue := getStringFlag(workerQueue, config.Broker.Queue)

	consumer, err := broker.NewConsumer(config.Broker.URL, queue, log)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer consumer.Close()

	eventBus := events.NewEventBus(log)
	eventBus.Subscribe(events.Wildcard, func(ctx context.Context, event events.Event) error {
		log.Info("received time-clock event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("event worker is running. Press Ctrl+C to stop.", "queue", queue)

	err = consumer.Consume(ctx, func(ctx context.Context, msg broker.Message) error {
		return eventBus.PublishSync(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("event worker stopped: %w", err)
	}

	log.Info("event worker shutdown complete")
	return nil
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func init() {
	eventWorkerCmd.Flags().StringVar(&workerQueue, "queue", "", "Queue to consume (overrides config)")

	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
