package kafka_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/lending-service/pkg/circuit_breaker"
	"github.com/Astemirdum/lending-service/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
)

type stubProducer struct {
	sarama.SyncProducer
	sent []*sarama.ProducerMessage
	err  error
}

func (p *stubProducer) SendMessage(msg *sarama.ProducerMessage) (int32, int64, error) {
	if p.err != nil {
		return 0, 0, p.err
	}
	p.sent = append(p.sent, msg)
	return 0, int64(len(p.sent)), nil
}

func (p *stubProducer) Close() error { return nil }

func TestEnqueuer_Enqueue(t *testing.T) {
	t.Parallel()
	cb := circuit_breaker.New(circuit_breaker.Config{RecordLength: 2, Timeout: time.Hour, Percentile: 1, RecoveryRequests: 1})

	t.Run("ok", func(t *testing.T) {
		p := &stubProducer{}
		q := kafka.NewEnqueuer(p, cb)
		require.NoError(t, q.Enqueue(kafka.AuditTopic, "k1", map[string]string{"action": "checkout"}))
		require.Len(t, p.sent, 1)

		require.Equal(t, kafka.AuditTopic, p.sent[0].Topic)
		b, err := p.sent[0].Value.Encode()
		require.NoError(t, err)
		var got map[string]string
		require.NoError(t, json.Unmarshal(b, &got))
		require.Equal(t, "checkout", got["action"])
	})

	t.Run("breaker opens on broker errors", func(t *testing.T) {
		brokerErr := errors.New("broker down")
		p := &stubProducer{err: brokerErr}
		q := kafka.NewEnqueuer(p, circuit_breaker.New(circuit_breaker.Config{
			RecordLength: 2, Timeout: time.Hour, Percentile: 1, RecoveryRequests: 1,
		}))
		require.ErrorIs(t, q.Enqueue(kafka.AuditTopic, "k", 1), brokerErr)
		require.ErrorIs(t, q.Enqueue(kafka.AuditTopic, "k", 1), brokerErr)
		require.ErrorIs(t, q.Enqueue(kafka.AuditTopic, "k", 1), circuit_breaker.ErrOpenCB)
	})
}
