package consumer

import (
	"context"
	"sync"
	"time"

	"reputation-scryper/internal/collector/config"
	"reputation-scryper/internal/collector/service"
	"reputation-scryper/pkg/common"
	"reputation-scryper/pkg/logger"
	"reputation-scryper/pkg/utils"
)

// RedisConsumer drives the refresh stream handlers.
type RedisConsumer struct {
	cfg                *config.Config
	refreshTaskService service.RefreshTaskService
	logger             *logger.Logger
	stopChan           chan struct{}
	stopOnce           sync.Once
	wg                 sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(cfg *config.Config, refreshTaskService service.RefreshTaskService, log *logger.Logger) *RedisConsumer {
	return &RedisConsumer{
		cfg:                cfg,
		refreshTaskService: refreshTaskService,
		logger:             log,
		stopChan:           make(chan struct{}),
	}
}

// Start begins the consumer's task processing loops.
func (c *RedisConsumer) Start(ctx context.Context) {
	c.logger.Info("Redis consumer started")
	handlerTimeout := c.cfg.Collector.RefreshTimeout + c.cfg.Collector.StreamReadBlock
	c.RegisterStreamHandler(ctx, c.refreshTaskService.ProcessTask, common.RedisStreamRefresh, handlerTimeout)
	c.RegisterTickerHandler(ctx, c.refreshTaskService.ProcessRetries, c.cfg.Collector.StreamRetryInterval, handlerTimeout, common.RedisStreamRefresh+"-retry")
}

// RegisterStreamHandler calls fn in a loop, each call bounded by timeout, until stopped.
func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.Field("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

// RegisterTickerHandler calls fn every interval until stopped.
func (c *RedisConsumer) RegisterTickerHandler(ctx context.Context, fn func(ctx context.Context), interval time.Duration, timeout time.Duration, name string) {
	c.logger.Info("Registering ticker handler",
		logger.Field("name", name),
		logger.Field("interval", interval),
		logger.Field("timeout", timeout))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			case <-ctx.Done():
				c.logger.Info("Ticker handler stopping due to context cancellation", logger.Field("name", name))
				return
			case <-c.stopChan:
				c.logger.Info("Ticker handler stopping", logger.Field("name", name))
				return
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
