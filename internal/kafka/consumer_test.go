package kafka

import (
	"context"
	"testing"

	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}

func TestConsumer_ConsumeStopsOnCancelledContext(t *testing.T) {
	c := NewConsumer([]string{"127.0.0.1:1"}, "parkbooking-audit", "booking-events", logger.Discard())
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := c.Consume(ctx, func(context.Context, kafka.Message) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.False(t, called)
}
