package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"riderdispatch/internal/adapters/out/kafka"
	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Pizza Place",
		[]string{"Margherita"},
		1500,
		"1 Main St",
		testNow,
	)
	require.NoError(t, err)
	return o
}

func newPublisher(t *testing.T) (*kafka.OrderEventPublisher, *mocks.SyncProducer) {
	t.Helper()
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	return kafka.NewOrderEventPublisherWithProducer(producer, "order.changed", func() time.Time { return testNow }), producer
}

func TestPublishOrderChanged_WritesEvent(t *testing.T) {
	publisher, producer := newPublisher(t)
	o := newOrder(t)
	riderID := kernel.NewUUID()
	require.NoError(t, o.Assign(riderID, testNow))

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event kafka.OrderChangedEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.OrderID != o.ID().String() || event.Status != "assigned" {
			return fmt.Errorf("unexpected event %+v", event)
		}
		if event.RiderID == nil || *event.RiderID != riderID.String() {
			return fmt.Errorf("unexpected rider %v", event.RiderID)
		}
		if !event.OccurredAt.Equal(testNow) {
			return fmt.Errorf("unexpected time %s", event.OccurredAt)
		}
		return nil
	})

	require.NoError(t, publisher.PublishOrderChanged(context.Background(), o))
	require.NoError(t, publisher.Close())
}

func TestPublishOrderChanged_BrokerError(t *testing.T) {
	publisher, producer := newPublisher(t)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := publisher.PublishOrderChanged(context.Background(), newOrder(t))

	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, publisher.Close())
}

func TestPublishOrderChanged_CancelledContext(t *testing.T) {
	publisher, _ := newPublisher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.PublishOrderChanged(ctx, newOrder(t))

	require.ErrorIs(t, err, context.Canceled)
	require.NoError(t, publisher.Close())
}

func TestPublishOrderChanged_AfterClose(t *testing.T) {
	publisher, _ := newPublisher(t)
	require.NoError(t, publisher.Close())

	err := publisher.PublishOrderChanged(context.Background(), newOrder(t))

	require.ErrorIs(t, err, kafka.ErrPublisherIsClosed)
	require.NoError(t, publisher.Close())
}

func TestNewOrderChangedEvent_PendingHasNoRider(t *testing.T) {
	o := newOrder(t)

	event := kafka.NewOrderChangedEvent(o, testNow)

	assert.Equal(t, "pending", event.Status)
	assert.Nil(t, event.RiderID)

	raw, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rider_id":null`)
}

func TestNewProducerConfig_WaitsForAllReplicas(t *testing.T) {
	config := kafka.NewProducerConfig()

	assert.Equal(t, sarama.WaitForAll, config.Producer.RequiredAcks)
	assert.True(t, config.Producer.Return.Successes)
	assert.Equal(t, 5, config.Producer.Retry.Max)
}
