package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"reputation-scryper/internal/collector/config"
	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/pkg/common"
	"reputation-scryper/pkg/logger"
	"reputation-scryper/pkg/telegram"
)

// RefreshTaskService consumes queued refresh tasks.
type RefreshTaskService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
	HandleTask(ctx context.Context, task dto.RefreshTask) (*dto.RefreshSummary, error)
}

// NewRefreshTaskService creates a new RefreshTaskService.
func NewRefreshTaskService(
	cfg *config.Config,
	redisClient *redis.Client,
	refreshService RefreshService,
	guard RefreshGuard,
	telegramBot telegram.Notifier,
	log *logger.Logger,
) RefreshTaskService {
	return &refreshTaskService{
		cfg:            cfg,
		redisClient:    redisClient,
		refreshService: refreshService,
		guard:          guard,
		telegramBot:    telegramBot,
		logger:         log,
	}
}

type refreshTaskService struct {
	cfg            *config.Config
	redisClient    *redis.Client
	refreshService RefreshService
	guard          RefreshGuard
	telegramBot    telegram.Notifier
	logger         *logger.Logger
}

// ProcessTask reads one task from the refresh stream and runs it.
func (s *refreshTaskService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamRefresh, ">"},
		Count:    1,
		Block:    s.cfg.Collector.StreamReadBlock,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	s.handleMessage(ctx, streams[0].Messages[0])
}

// ProcessRetries claims one message left pending by a worker that died before acking.
// Finished runs are always acked, failed and timed out ones included, so they are
// reported once and never redelivered.
func (s *refreshTaskService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamRefresh,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Collector.StreamMaxIdle,
		Start:    "0",
		Count:    1,
	}).Result()
	if err != nil {
		s.logger.Error("Failed to claim refresh task on retry", logger.ErrorField(err))
		return
	}

	if len(msgs) == 0 {
		s.logger.Debug("Retry No pending messages found", logger.StringField("stream", common.RedisStreamRefresh))
		return
	}

	s.logger.Info("Retrying pending refresh task", logger.StringField("message_id", msgs[0].ID))
	s.handleMessage(ctx, msgs[0])
}

func (s *refreshTaskService) handleMessage(ctx context.Context, message redis.XMessage) {
	defer s.ack(ctx, message.ID)

	taskData, ok := message.Values["payload"].(string)
	if !ok {
		s.logger.Error("field 'payload' not found or not a string in stream message", logger.StringField("message_id", message.ID))
		return
	}

	var task dto.RefreshTask
	if err := json.Unmarshal([]byte(taskData), &task); err != nil {
		s.logger.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.StringField("message_id", message.ID))
		return
	}

	summary, err := s.HandleTask(ctx, task)
	if errors.Is(err, ErrRefreshThrottled) {
		s.logger.Info("Skipping throttled refresh", logger.StringField("company_id", task.CompanyID.String()))
		return
	}
	s.notify(task, summary, err)
}

// HandleTask runs a guarded refresh under the configured timeout.
func (s *refreshTaskService) HandleTask(ctx context.Context, task dto.RefreshTask) (*dto.RefreshSummary, error) {
	release, err := s.guard.Acquire(ctx, task.CompanyID)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Collector.RefreshTimeout)
	defer cancel()

	start := time.Now()
	summary, err := s.refreshService.Refresh(runCtx, task.CompanyID)
	release(context.WithoutCancel(ctx), err == nil)

	if err != nil {
		s.logger.Error("Refresh task failed",
			logger.ErrorField(err),
			logger.StringField("company_id", task.CompanyID.String()),
			logger.StringField("requested_by", task.RequestedBy),
		)
		return nil, err
	}

	s.logger.Info("Refresh task completed",
		logger.StringField("company_id", task.CompanyID.String()),
		logger.IntField("total_saved", summary.TotalSaved),
		logger.Field("duration", time.Since(start)),
	)
	return summary, nil
}

func (s *refreshTaskService) notify(task dto.RefreshTask, summary *dto.RefreshSummary, runErr error) {
	notice := telegram.RefreshNotice{CompanyName: task.CompanyName}
	if runErr != nil {
		notice.Error = runErr.Error()
	} else if summary != nil {
		notice.TotalSaved = summary.TotalSaved
		notice.OverallSentiment = string(summary.OverallSentiment)
		notice.Channel = string(summary.Channel)
		notice.Suggestion = summary.Suggestion
	}

	for _, msg := range telegram.FormatRefreshNotices([]telegram.RefreshNotice{notice}) {
		if err := s.telegramBot.SendMessage(msg); err != nil {
			s.logger.Warn("Failed to send refresh notification", logger.ErrorField(err))
		}
		time.Sleep(s.cfg.Collector.NotificationInterval)
	}
}

func (s *refreshTaskService) ack(ctx context.Context, messageID string) {
	if err := s.redisClient.XAck(context.WithoutCancel(ctx), common.RedisStreamRefresh, common.RedisStreamGroup, messageID).Err(); err != nil {
		s.logger.Error("Failed to acknowledge message", logger.ErrorField(err), logger.StringField("message_id", messageID))
	}
}
