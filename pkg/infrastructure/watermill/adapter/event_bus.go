package adapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/multierr"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

// eventEnvelope is the wire shape of a domain event. Payload round-trips as
// generic JSON; remote consumers see maps, not the producer's struct types.
type eventEnvelope struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	AggregateID   string            `json:"aggregate_id"`
	OccurredAt    time.Time         `json:"occurred_at"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	CausationID   string            `json:"causation_id,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Payload       any               `json:"payload,omitempty"`
}

// RelayEventBus decorates an in-process bus: every published event is first
// delivered to local subscribers, then relayed to a broker topic named after
// the event. Local delivery semantics are unchanged by broker availability.
type RelayEventBus struct {
	inner     application.EventBus
	publisher message.Publisher
	logger    application.AppLogger
}

func NewRelayEventBus(inner application.EventBus, publisher message.Publisher, logger application.AppLogger) *RelayEventBus {
	return &RelayEventBus{
		inner:     inner,
		publisher: publisher,
		logger:    logger,
	}
}

func (bus *RelayEventBus) RegisterHandler(eventName string, handler application.EventHandler) {
	bus.inner.RegisterHandler(eventName, handler)
}

func (bus *RelayEventBus) Publish(ctx context.Context, event domain.Event) error {
	errs := bus.inner.Publish(ctx, event)

	payload, err := application.MarshalPayload(envelopeFrom(event))
	if err != nil {
		application.LogError(ctx, bus.logger, "error marshalling event envelope", err, map[string]interface{}{
			"event_name": event.Name,
			"event_id":   event.ID,
		})
		return multierr.Append(errs, err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_name", event.Name)
	msg.Metadata.Set("aggregate_id", event.AggregateID)

	if err := bus.publisher.Publish(event.Name, msg); err != nil {
		application.LogError(ctx, bus.logger, "error relaying event to broker", err, map[string]interface{}{
			"event_name": event.Name,
			"event_id":   event.ID,
		})
		return multierr.Append(errs, err)
	}

	application.LogInfo(ctx, bus.logger, "event relayed", map[string]interface{}{
		"event_name": event.Name,
		"event_id":   event.ID,
	})
	return errs
}

// RelayIncoming feeds events arriving on a broker topic into the local bus.
// Messages are handled in arrival order; a failed delivery is nacked so the
// broker redelivers it.
func RelayIncoming(ctx context.Context, subscriber message.Subscriber, topic string, bus application.EventBus, logger application.AppLogger) error {
	messages, err := subscriber.Subscribe(ctx, topic)
	if err != nil {
		application.LogError(ctx, logger, "error subscribing to topic", err, map[string]interface{}{
			"topic": topic,
		})
		return err
	}

	go func() {
		for msg := range messages {
			event, err := eventFrom(msg.Payload)
			if err != nil {
				application.LogError(ctx, logger, "error unmarshalling event envelope", err, map[string]interface{}{
					"topic":      topic,
					"message_id": msg.UUID,
				})
				msg.Nack()
				continue
			}

			if err := bus.Publish(ctx, event); err != nil {
				application.LogError(ctx, logger, "error delivering relayed event", err, map[string]interface{}{
					"topic":    topic,
					"event_id": event.ID,
				})
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}

func envelopeFrom(event domain.Event) eventEnvelope {
	return eventEnvelope{
		ID:            event.ID,
		Name:          event.Name,
		AggregateID:   event.AggregateID,
		OccurredAt:    event.OccurredAt,
		CorrelationID: event.CorrelationID,
		CausationID:   event.CausationID,
		Metadata:      event.Metadata,
		Payload:       event.Payload,
	}
}

func eventFrom(payload []byte) (domain.Event, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		ID:            envelope.ID,
		Name:          envelope.Name,
		AggregateID:   envelope.AggregateID,
		OccurredAt:    envelope.OccurredAt,
		CorrelationID: envelope.CorrelationID,
		CausationID:   envelope.CausationID,
		Metadata:      envelope.Metadata,
		Payload:       envelope.Payload,
	}, nil
}
