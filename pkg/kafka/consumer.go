package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const AuditConsumerGroup = "lending-audit-tail"

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume joins the group and serves handler until ctx is done. A session ends on every
// rebalance, so Consume is called in a loop.
func Consume(ctx context.Context, consumer sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topics ...string) error {
	for {
		if err := consumer.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return errors.Wrap(err, "consumer.Consume")
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
