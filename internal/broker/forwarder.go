package broker

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/ponto-eletronico/internal/core/events"
)

// Subscriber is the part of the event bus the forwarder hooks into.
type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

// Forward relays every event published on bus to target.
func Forward(bus Subscriber, target events.Publisher, logger *slog.Logger) {
	bus.Subscribe(events.Wildcard, func(ctx context.Context, event events.Event) error {
		if err := target.Publish(ctx, event); err != nil {
			return err
		}
		logger.Debug("event forwarded to broker", "event_type", event.EventType(), "event_id", event.EventID())
		return nil
	})
}
