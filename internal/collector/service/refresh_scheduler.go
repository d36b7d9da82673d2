package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/collector/repository"
	"reputation-scryper/pkg/logger"
)

// TaskPublisher enqueues refresh tasks for the worker.
type TaskPublisher interface {
	Publish(ctx context.Context, task dto.RefreshTask) error
}

// NewStreamPublisher creates a TaskPublisher writing to a redis stream.
func NewStreamPublisher(redisClient *redis.Client, stream string, maxLen int64) TaskPublisher {
	return &streamPublisher{
		redisClient: redisClient,
		stream:      stream,
		maxLen:      maxLen,
	}
}

type streamPublisher struct {
	redisClient *redis.Client
	stream      string
	maxLen      int64
}

func (p *streamPublisher) Publish(ctx context.Context, task dto.RefreshTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}
	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{"payload": payload},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	return p.redisClient.XAdd(ctx, args).Err()
}

// RefreshScheduler periodically enqueues a refresh task for every company.
type RefreshScheduler interface {
	Start(ctx context.Context) error
	Stop()
	PublishAll(ctx context.Context) int
}

// NewRefreshScheduler creates a new RefreshScheduler for the given cron expression.
func NewRefreshScheduler(schedule string, companyRepo repository.CompanyRepository, publisher TaskPublisher, log *logger.Logger) RefreshScheduler {
	return &refreshScheduler{
		schedule:    schedule,
		companyRepo: companyRepo,
		publisher:   publisher,
		logger:      log,
		cron: cron.New(cron.WithParser(
			cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		)),
	}
}

type refreshScheduler struct {
	schedule    string
	companyRepo repository.CompanyRepository
	publisher   TaskPublisher
	logger      *logger.Logger
	cron        *cron.Cron
}

// Start registers the cron entry and starts the cron runner. An empty schedule disables it.
func (s *refreshScheduler) Start(ctx context.Context) error {
	if s.schedule == "" {
		s.logger.Info("Refresh schedule disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { s.PublishAll(ctx) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("Refresh scheduler started", logger.StringField("schedule", s.schedule))
	return nil
}

func (s *refreshScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Refresh scheduler stopped")
}

// PublishAll enqueues one task per company and returns how many were published.
func (s *refreshScheduler) PublishAll(ctx context.Context) int {
	companies, err := s.companyRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list companies", logger.ErrorField(err))
		return 0
	}

	published := 0
	for _, company := range companies {
		task := dto.RefreshTask{CompanyID: company.ID, CompanyName: company.Name, RequestedBy: "scheduler"}
		if err := s.publisher.Publish(ctx, task); err != nil {
			s.logger.Error("Failed to enqueue refresh task", logger.ErrorField(err), logger.StringField("company_id", company.ID.String()))
			continue
		}
		published++
	}

	s.logger.Info("Refresh tasks published", logger.IntField("published", published), logger.IntField("companies", len(companies)))
	return published
}
