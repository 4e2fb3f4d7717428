package service

import (
	"context"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

type Publisher interface {
	Publish(ctx context.Context, ev model.AuditEvent) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.AuditEvent) error { return nil }

// KafkaPublisher sends audit events keyed by loan, so the events of one loan stay ordered
// within a partition.
type KafkaPublisher struct {
	q     kafka.Enqueuer
	topic string
}

func NewKafkaPublisher(q kafka.Enqueuer, topic string) *KafkaPublisher {
	if topic == "" {
		topic = kafka.AuditTopic
	}
	return &KafkaPublisher{q: q, topic: topic}
}

func (p *KafkaPublisher) Publish(_ context.Context, ev model.AuditEvent) error {
	key := ev.EntryID.String()
	if ev.LoanID != nil {
		key = ev.LoanID.String()
	}
	return p.q.Enqueue(p.topic, key, ev)
}
