package pkg

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher 变更事件的发送端
type Publisher interface {
	Send(ctx context.Context, key string, value []byte) error
	Close() error
}

type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaProducer(cfg KafkaConfig) (*KafkaProducer, error) {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
	return &KafkaProducer{writer: w, topic: cfg.Topic}, nil
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *KafkaProducer) Send(ctx context.Context, key string, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	return p.writer.WriteMessages(ctx, msg)
}

// NopPublisher 未配置 KAFKA_BROKERS 时使用
type NopPublisher struct{}

func (NopPublisher) Send(context.Context, string, []byte) error { return nil }

func (NopPublisher) Close() error { return nil }
