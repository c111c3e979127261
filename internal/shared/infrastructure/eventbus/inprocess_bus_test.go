package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInProcessBus_DeliversToMatchingHandlers(t *testing.T) {
	bus := NewInProcessBus(nil)

	var got []string
	bus.Subscribe("scheduling.sequence.scheduled", func(ctx context.Context, routingKey string, payload []byte) error {
		got = append(got, string(payload))
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), "scheduling.sequence.scheduled", []byte("a")))
	require.NoError(t, bus.Publish(context.Background(), "scheduling.run.completed", []byte("b")))

	assert.Equal(t, []string{"a"}, got)
}

func TestInProcessBus_WildcardSubscription(t *testing.T) {
	bus := NewInProcessBus(nil)

	var keys []string
	bus.Subscribe("", func(ctx context.Context, routingKey string, payload []byte) error {
		keys = append(keys, routingKey)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), "scheduling.sequence.scheduled", nil))
	require.NoError(t, bus.Publish(context.Background(), "scheduling.run.completed", nil))

	assert.Equal(t, []string{"scheduling.sequence.scheduled", "scheduling.run.completed"}, keys)
}

func TestInProcessBus_HandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := NewInProcessBus(nil)

	delivered := false
	bus.Subscribe("k", func(ctx context.Context, routingKey string, payload []byte) error {
		return errors.New("handler broke")
	})
	bus.Subscribe("k", func(ctx context.Context, routingKey string, payload []byte) error {
		delivered = true
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), "k", nil))
	assert.True(t, delivered)
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher(nil)
	assert.NoError(t, pub.Publish(context.Background(), "anything", []byte("payload")))
	assert.NoError(t, pub.Close())
}
