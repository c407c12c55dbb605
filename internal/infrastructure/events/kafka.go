package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"jobboard/internal/config"

	kgo "github.com/segmentio/kafka-go"
)

const TypeJobCreated = "job.created"

// JobCreated is published once per successfully created job.
type JobCreated struct {
	Type      string    `json:"type"`
	JobID     int64     `json:"job_id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	JobType   string    `json:"job_type"`
	Timestamp time.Time `json:"timestamp"`
}

type Publisher interface {
	PublishJobCreated(ctx context.Context, e JobCreated) error
	Close() error
}

type KafkaPublisher struct {
	w *kgo.Writer
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{w: &kgo.Writer{
		Addr:                   kgo.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kgo.Hash{},
		RequiredAcks:           kgo.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}}
}

func (p *KafkaPublisher) PublishJobCreated(ctx context.Context, e JobCreated) error {
	if e.Type == "" {
		e.Type = TypeJobCreated
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kgo.Message{
		Key:   []byte(strconv.FormatInt(e.JobID, 10)),
		Value: b,
		Time:  e.Timestamp,
	})
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishJobCreated(context.Context, JobCreated) error { return nil }
func (NopPublisher) Close() error                                        { return nil }
