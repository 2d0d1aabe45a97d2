package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shortlyhq/shortly/internal/events"
)

// ClickPublisher writes ClickRecorded events to Kafka. Redirect handlers
// call it off the request path; a lost click event never fails a redirect.
type ClickPublisher struct {
	writer *kafka.Writer
}

func NewClickPublisher(brokers []string, topic string) *ClickPublisher {
	return &ClickPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *ClickPublisher) Publish(ctx context.Context, ev events.ClickRecorded) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Token),
		Value: value,
		Time:  ev.OccurredAt.UTC(),
	})
}

func (p *ClickPublisher) Close() error {
	return p.writer.Close()
}
