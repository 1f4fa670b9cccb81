package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/earnbaseio/earnbase-common/models"
)

const schemaVersion = "1.0"

// ServiceInfo identifies the publishing service in event metadata.
type ServiceInfo struct {
	Name        string
	Environment string
}

// Publisher emits domain events through a Kafka producer.
type Publisher struct {
	producer *Producer
	logger   *zap.Logger
	service  ServiceInfo
}

// NewPublisher constructs a Kafka-backed event publisher.
func NewPublisher(producer *Producer, service ServiceInfo, logger *zap.Logger) *Publisher {
	return &Publisher{producer: producer, service: service, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID     string           `json:"event_id"`
	EventType   string           `json:"event_type"`
	AggregateID string           `json:"aggregate_id,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
	Version     string           `json:"version"`
	Payload     any              `json:"payload"`
	Metadata    envelopeMetadata `json:"metadata,omitempty"`
}

// Publish serializes the event into a JSON envelope and queues it on the
// topic derived from the event type. It blocks only when the producer input
// buffer is full, honoring context cancellation.
func (p *Publisher) Publish(ctx context.Context, event models.DomainEvent) error {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := event.EventID
	if id == "" {
		id = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:     id,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Timestamp:   ts.UTC(),
		Version:     schemaVersion,
		Payload:     event.Payload,
		Metadata: envelopeMetadata{
			"service":     p.service.Name,
			"environment": p.service.Environment,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(event.EventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishAll publishes every recorded event of an aggregate, stopping on the
// first failure.
func (p *Publisher) PublishAll(ctx context.Context, events []models.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
