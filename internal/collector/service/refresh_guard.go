package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reputation-scryper/pkg/common"
	"reputation-scryper/pkg/logger"
)

// ReleaseFunc ends a guarded refresh. A successful run starts the cooldown window.
type ReleaseFunc func(ctx context.Context, success bool)

// RefreshGuard keeps refreshes of one company from overlapping or repeating too often.
type RefreshGuard interface {
	Acquire(ctx context.Context, companyID uuid.UUID) (ReleaseFunc, error)
}

// releaseLockScript deletes the lock only when it still holds our token.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewRefreshGuard creates a redis backed RefreshGuard.
func NewRefreshGuard(redisClient *redis.Client, lockTTL, cooldown time.Duration, log *logger.Logger) RefreshGuard {
	return &redisRefreshGuard{
		redisClient: redisClient,
		lockTTL:     lockTTL,
		cooldown:    cooldown,
		logger:      log,
	}
}

type redisRefreshGuard struct {
	redisClient *redis.Client
	lockTTL     time.Duration
	cooldown    time.Duration
	logger      *logger.Logger
}

func (g *redisRefreshGuard) Acquire(ctx context.Context, companyID uuid.UUID) (ReleaseFunc, error) {
	lockKey := fmt.Sprintf(common.RedisKeyRefreshLock, companyID)
	lastKey := fmt.Sprintf(common.RedisKeyRefreshLast, companyID)

	if g.cooldown > 0 {
		exists, err := g.redisClient.Exists(ctx, lastKey).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check refresh cooldown: %w", err)
		}
		if exists > 0 {
			return nil, fmt.Errorf("%w: company %s refreshed recently", ErrRefreshThrottled, companyID)
		}
	}

	token := uuid.NewString()
	ok, err := g.redisClient.SetNX(ctx, lockKey, token, g.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire refresh lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: refresh already running for company %s", ErrRefreshThrottled, companyID)
	}

	return func(ctx context.Context, success bool) {
		if success && g.cooldown > 0 {
			if err := g.redisClient.Set(ctx, lastKey, time.Now().UTC().Format(time.RFC3339), g.cooldown).Err(); err != nil {
				g.logger.Warn("Failed to record refresh time", logger.ErrorField(err), logger.StringField("company_id", companyID.String()))
			}
		}
		if err := releaseLockScript.Run(ctx, g.redisClient, []string{lockKey}, token).Err(); err != nil {
			g.logger.Warn("Failed to release refresh lock", logger.ErrorField(err), logger.StringField("company_id", companyID.String()))
		}
	}, nil
}
