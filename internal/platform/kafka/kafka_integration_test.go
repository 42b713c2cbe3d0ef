//go:build integration

package kafka_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbiter/internal/platform/kafka"
	"arbiter/internal/platform/kafka/consumer"
	"arbiter/pkg/testutil/containers"
)

type collector struct {
	mu   sync.Mutex
	msgs []*consumer.Message
	got  chan struct{}
}

func (c *collector) Handle(_ context.Context, msg *consumer.Message) error {
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
	c.got <- struct{}{}
	return nil
}

func TestProduceAndConsume(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping kafka integration test in short mode")
	}
	rp := containers.GetManager().GetRedpanda(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	producer, err := kafka.NewProducer(rp.Brokers)
	require.NoError(t, err)
	defer producer.Close()

	const topic = "arbiter.audit.it"
	require.NoError(t, kafka.EnsureTopic(ctx, producer.Client(), topic, 1, 1))
	require.NoError(t, kafka.EnsureTopic(ctx, producer.Client(), topic, 1, 1), "second call tolerates an existing topic")

	require.NoError(t, producer.Ping(ctx))
	require.NoError(t, producer.Publish(ctx, topic, []byte("k1"), []byte(`{"action":"slash_proposed"}`)))
	require.NoError(t, producer.Publish(ctx, topic, []byte("k2"), []byte(`{"action":"slash_executed"}`)))

	c := &collector{got: make(chan struct{}, 2)}
	group, err := consumer.New(rp.Brokers, "arbiter-it", []string{topic}, c, nil)
	require.NoError(t, err)

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- group.Run(runCtx) }()

	for range 2 {
		select {
		case <-c.got:
		case <-ctx.Done():
			t.Fatal("timed out waiting for records")
		}
	}
	stop()
	require.NoError(t, <-done)

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.msgs, 2)
	assert.Equal(t, "k1", string(c.msgs[0].Key))
	assert.Equal(t, `{"action":"slash_executed"}`, string(c.msgs[1].Value))
	assert.Equal(t, topic, c.msgs[0].Topic)
}

func TestProducerRequiresBrokers(t *testing.T) {
	_, err := kafka.NewProducer(nil)
	assert.Error(t, err)
	_, err = consumer.New(nil, "g", []string{"t"}, &collector{}, nil)
	assert.Error(t, err)
}
