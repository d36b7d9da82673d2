package consumer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reputation-scryper/internal/collector/config"
	"reputation-scryper/pkg/logger"
)

func TestRegisterStreamHandler_RunsUntilStopped(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	c := NewRedisConsumer(cfg, nil, logger.NewNop())

	var calls atomic.Int32
	c.RegisterStreamHandler(context.Background(), func(ctx context.Context) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		calls.Add(1)
		time.Sleep(time.Millisecond)
	}, "test-stream", time.Second)

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	c.Stop()

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestRegisterTickerHandler_StopsOnContextCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	c := NewRedisConsumer(cfg, nil, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	c.RegisterTickerHandler(ctx, func(context.Context) { calls.Add(1) }, 5*time.Millisecond, time.Second, "retry")

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	c.Stop()
	c.Stop()
}
