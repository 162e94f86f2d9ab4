package repository

import (
	"context"

	"TriggerLab/internal/domain/models"
	domrepo "TriggerLab/internal/domain/repository"
	pkgkafka "TriggerLab/pkg/kafka"
)

// KafkaPublisher emits trigger lifecycle events to a Kafka topic, keyed by
// trigger id so per-trigger ordering survives partitioning.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev models.TriggerEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.ID), ev)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// MultiPublisher fans one event out to several publishers; the first error
// wins but every publisher still sees the event.
type MultiPublisher struct {
	publishers []domrepo.Publisher
}

func NewMultiPublisher(publishers ...domrepo.Publisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

func (m *MultiPublisher) Publish(ctx context.Context, ev models.TriggerEvent) error {
	var first error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *MultiPublisher) Close() error {
	var first error
	for _, p := range m.publishers {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
