package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"riderdispatch/internal/core/domain/model/order"

	"github.com/IBM/sarama"
)

var ErrPublisherIsClosed = errors.New("order event publisher is closed")

// OrderChangedEvent is the message body written for every committed order change.
type OrderChangedEvent struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	RiderID    *string   `json:"rider_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOrderChangedEvent snapshots the order.
func NewOrderChangedEvent(o *order.Order, occurredAt time.Time) OrderChangedEvent {
	event := OrderChangedEvent{
		OrderID:    o.ID().String(),
		Status:     o.Status().String(),
		OccurredAt: occurredAt.UTC(),
	}
	if riderID := o.Rider(); riderID != nil {
		id := riderID.String()
		event.RiderID = &id
	}
	return event
}

// OrderEventPublisher writes OrderChangedEvent messages with a sarama SyncProducer.
type OrderEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

// NewProducerConfig returns the producer settings used in production:
// acknowledgement from all in-sync replicas and a bounded retry budget.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true // required by SyncProducer
	config.Net.DialTimeout = 10 * time.Second
	config.Net.ReadTimeout = 10 * time.Second
	config.Net.WriteTimeout = 10 * time.Second
	return config
}

// NewOrderEventPublisher connects to a comma separated broker list.
func NewOrderEventPublisher(brokers string, topic string) (*OrderEventPublisher, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("kafka topic is required")
	}

	brokerList := strings.Split(brokers, ",")
	for i := range brokerList {
		brokerList[i] = strings.TrimSpace(brokerList[i])
	}

	producer, err := sarama.NewSyncProducer(brokerList, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return NewOrderEventPublisherWithProducer(producer, topic, time.Now), nil
}

// NewOrderEventPublisherWithProducer wraps an existing producer.
func NewOrderEventPublisherWithProducer(
	producer sarama.SyncProducer,
	topic string,
	now func() time.Time,
) *OrderEventPublisher {
	return &OrderEventPublisher{
		producer: producer,
		topic:    topic,
		now:      now,
	}
}

// PublishOrderChanged sends one event and waits for the broker acknowledgement.
func (p *OrderEventPublisher) PublishOrderChanged(ctx context.Context, o *order.Order) error {
	if p.producer == nil {
		return ErrPublisherIsClosed
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(NewOrderChangedEvent(o, p.now()))
	if err != nil {
		return err
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(o.ID().String()),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to publish order %s: %w", o.ID(), err)
	}

	return nil
}

// Close flushes and closes the producer. Later publishes fail with ErrPublisherIsClosed.
func (p *OrderEventPublisher) Close() error {
	if p.producer == nil {
		return nil
	}
	err := p.producer.Close()
	p.producer = nil
	return err
}
