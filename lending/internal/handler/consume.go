package handler

import (
	"context"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type AuditEventHandler func(ctx context.Context, ev model.AuditEvent) error

// AuditConsumer reads the audit events published after each lifecycle mutation.
type AuditConsumer struct {
	handle AuditEventHandler
	log    *zap.Logger
	ready  chan bool
}

func NewAuditConsumer(handle AuditEventHandler, log *zap.Logger) *AuditConsumer {
	return &AuditConsumer{
		handle: handle,
		log:    log.Named("consumer"),
		ready:  make(chan bool),
	}
}

// Ready is closed once the first session is set up.
func (consumer *AuditConsumer) Ready() <-chan bool {
	return consumer.ready
}

func (consumer *AuditConsumer) Setup(sarama.ConsumerGroupSession) error {
	select {
	case <-consumer.ready:
	default:
		close(consumer.ready)
	}
	return nil
}

func (consumer *AuditConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *AuditConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var ev model.AuditEvent
			if err := jsoniter.Unmarshal(message.Value, &ev); err != nil {
				consumer.log.Error("decode audit event", zap.Int64("offset", message.Offset), zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}
			// a failed message ends the claim unmarked so no later mark commits past it
			if err := consumer.handle(session.Context(), ev); err != nil {
				consumer.log.Error("handle audit event", zap.Stringer("entry", ev.EntryID), zap.Error(err))
				return errors.Wrapf(err, "handle audit event at offset %d", message.Offset)
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
