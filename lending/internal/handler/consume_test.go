package handler_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/handler"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *stubSession) Context() context.Context { return s.ctx }

func (s *stubSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type stubClaim struct {
	sarama.ConsumerGroupClaim
	msgs chan *sarama.ConsumerMessage
}

func (c *stubClaim) Messages() <-chan *sarama.ConsumerMessage { return c.msgs }

func TestAuditConsumer_ConsumeClaim(t *testing.T) {
	t.Parallel()

	loanID := uuid.New()
	good := model.AuditEvent{
		EntryID:   uuid.New(),
		Action:    model.ActionCheckout,
		LoanID:    &loanID,
		Actor:     "alice",
		Timestamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	goodBody, err := json.Marshal(good)
	require.NoError(t, err)
	failing := good
	failing.EntryID = uuid.New()
	failingBody, err := json.Marshal(failing)
	require.NoError(t, err)

	var got []model.AuditEvent
	consumer := handler.NewAuditConsumer(func(_ context.Context, ev model.AuditEvent) error {
		if ev.EntryID == failing.EntryID {
			return errors.New("sink down")
		}
		got = append(got, ev)
		return nil
	}, zap.NewNop())

	after := good
	after.EntryID = uuid.New()
	afterBody, err := json.Marshal(after)
	require.NoError(t, err)

	msgs := make(chan *sarama.ConsumerMessage, 4)
	msgs <- &sarama.ConsumerMessage{Offset: 1, Value: goodBody}
	msgs <- &sarama.ConsumerMessage{Offset: 2, Value: []byte("{broken")}
	msgs <- &sarama.ConsumerMessage{Offset: 3, Value: failingBody}
	msgs <- &sarama.ConsumerMessage{Offset: 4, Value: afterBody}
	close(msgs)

	session := &stubSession{ctx: context.Background()}
	require.NoError(t, consumer.Setup(session))
	select {
	case <-consumer.Ready():
	default:
		t.Fatal("consumer is not ready after setup")
	}
	require.NoError(t, consumer.Setup(session))

	err = consumer.ConsumeClaim(session, &stubClaim{msgs: msgs})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sink down")

	require.Len(t, got, 1)
	require.Equal(t, good.EntryID, got[0].EntryID)
	require.Equal(t, loanID, *got[0].LoanID)
	require.Equal(t, "alice", got[0].Actor)
	// undecodable messages are skipped; a failure stops the claim before offset 4
	require.Equal(t, []int64{1, 2}, session.marked)
	require.Len(t, msgs, 1)
}

func TestAuditConsumer_StopsOnSessionEnd(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	consumer := handler.NewAuditConsumer(func(context.Context, model.AuditEvent) error { return nil }, zap.NewNop())

	err := consumer.ConsumeClaim(&stubSession{ctx: ctx}, &stubClaim{msgs: make(chan *sarama.ConsumerMessage)})
	require.NoError(t, err)
}
