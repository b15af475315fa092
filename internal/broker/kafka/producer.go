package kafkabroker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/seimple/seimple/internal/domain"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// Producer forwards stored records to a Kafka topic, keyed by host so a
// single origin stays in partition order.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(cfg ProducerConfig) *Producer {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		Balancer: &kafka.Hash{},
	})
	return &Producer{
		writer: w,
		topic:  cfg.Topic,
	}
}

func (p *Producer) Forward(ctx context.Context, rec *domain.LogRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(rec.Host),
		Value: payload,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Errorf("Failed to forward record %d: %v", rec.ID, err)
		return err
	}
	log.Debugf("Record forwarded: id=%d host=%s", rec.ID, rec.Host)
	return nil
}

func (p *Producer) Close() error {
	log.Info("Closing Kafka producer...")
	return p.writer.Close()
}
