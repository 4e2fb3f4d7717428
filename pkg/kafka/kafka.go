package kafka

import (
	"encoding/json"

	"github.com/Astemirdum/lending-service/pkg/circuit_breaker"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const AuditTopic = "lending.audit"

type Config struct {
	Addrs   []string `envconfig:"KAFKA_ADDRS"`
	Topic   string   `envconfig:"KAFKA_AUDIT_TOPIC" default:"lending.audit"`
	Breaker circuit_breaker.Config
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type Enqueuer interface {
	Enqueue(topic, key string, v any) error
	Close() error
}

// NewEnqueuer wraps a sync producer so that sends fail fast while the broker is unhealthy.
func NewEnqueuer(producer sarama.SyncProducer, cb circuit_breaker.CircuitBreaker) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
		cb:       cb,
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
}

func (q *enqueuerImpl) Enqueue(topic, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "json.Marshal")
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	return q.cb.Call(func() error {
		_, _, err := q.producer.SendMessage(msg)
		return err
	})
}

func (q *enqueuerImpl) Close() error {
	return q.producer.Close()
}
