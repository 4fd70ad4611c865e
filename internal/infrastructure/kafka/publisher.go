package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher is what the usecases depend on; tests substitute a fake.
type Publisher interface {
	PublishLedgerEvent(event LedgerEvent) error
	PublishAdjustmentEvent(event AdjustmentEvent) error
}

type KafkaPublisher struct {
	ledgerWriter     *kafka.Writer
	adjustmentWriter *kafka.Writer
}

func NewKafkaPublisher(brokers []string, ledgerTopic, adjustmentTopic string) *KafkaPublisher {
	return &KafkaPublisher{
		ledgerWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    ledgerTopic,
			Balancer: &kafka.LeastBytes{},
		},
		adjustmentWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    adjustmentTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Events are keyed by tenant so per-tenant ordering survives partitioning,
// matching the per-tenant NSR order consumers reconcile against.
func (k *KafkaPublisher) PublishLedgerEvent(event LedgerEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.ledgerWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.TenantID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (k *KafkaPublisher) PublishAdjustmentEvent(event AdjustmentEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.adjustmentWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.TenantID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (k *KafkaPublisher) Close() error {
	if err := k.ledgerWriter.Close(); err != nil {
		return err
	}
	return k.adjustmentWriter.Close()
}
