package escalation

import (
	"context"

	"github.com/chative-support-desk/server/internal/agent/model"
	errx "github.com/chative-support-desk/server/internal/core/error"
	"github.com/chative-support-desk/server/pkg/kafka"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

// Publisher is the subset of the Kafka producer used for notifications.
type Publisher interface {
	Send(ctx context.Context, key string, payload any) error
}

// KafkaNotifier publishes escalation events keyed by session id, so all
// hand-offs of one session land on the same partition.
type KafkaNotifier struct {
	pub Publisher
}

func NewKafkaNotifier(pub Publisher) *KafkaNotifier {
	return &KafkaNotifier{pub: pub}
}

func (n *KafkaNotifier) Notify(ctx context.Context, event model.EscalationEvent) error {
	if err := n.pub.Send(ctx, event.SessionID, event); err != nil {
		return errx.WrapKafka(err)
	}
	logx.Debug().Str("session_id", event.SessionID).Str("agent", event.Agent).Msg("Escalation event published")
	return nil
}

// NopNotifier drops events. Used when no brokers are configured.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, event model.EscalationEvent) error {
	logx.Debug().Str("session_id", event.SessionID).Str("agent", event.Agent).Msg("Escalation notifier disabled, event dropped")
	return nil
}

// NewNotifier returns a Kafka backed notifier when brokers are configured
// and a NopNotifier otherwise. The returned closer releases the producer.
func NewNotifier(cfg model.EscalationConfig) (model.EscalationNotifier, func() error) {
	if len(cfg.Brokers) == 0 {
		return NopNotifier{}, func() error { return nil }
	}
	producer := kafka.NewProducer(cfg.Brokers, cfg.Topic)
	logx.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("Escalation events go to Kafka")
	return NewKafkaNotifier(producer), producer.Close
}

var (
	_ model.EscalationNotifier = (*KafkaNotifier)(nil)
	_ model.EscalationNotifier = NopNotifier{}
)
