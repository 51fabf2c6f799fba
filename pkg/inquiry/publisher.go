package inquiry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

const eventInquirySubmitted = "inquiry.submitted"

// producer is the part of *kgo.Client the publisher needs.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaPublisher publishes every submission as a JSON record keyed by its
// reference, so follow-up systems can pick consultation requests up.
type KafkaPublisher struct {
	client producer
	topic  string
}

// NewKafkaPublisher creates a client for brokers. Topics are created on
// first use when the cluster allows it.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic}, nil
}

func (p *KafkaPublisher) Submit(ctx context.Context, sub Submission) error {
	value, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(sub.Reference.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event", Value: []byte(eventInquirySubmitted)},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish submission %s: %w", sub.Reference, err)
	}
	return nil
}

// Close releases the underlying client.
func (p *KafkaPublisher) Close() error {
	p.client.Close()
	return nil
}
