package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reputation-scryper/internal/dashboard/config"
	"reputation-scryper/internal/dashboard/dto"
	"reputation-scryper/internal/dashboard/repository"
	"reputation-scryper/internal/entity"
	"reputation-scryper/pkg/logger"
)

// MaxFeedPage bounds the feed page so the row offset stays small.
const MaxFeedPage = 100000

// DashboardService computes the analytics shown on the dashboard.
type DashboardService interface {
	GetStats(ctx context.Context, userID uuid.UUID, periodDays int) (*dto.StatsResponse, error)
	GetTopTopics(ctx context.Context, userID uuid.UUID, periodDays int) (*dto.TopicsResponse, error)
	GetFeed(ctx context.Context, userID uuid.UUID, query dto.FeedQuery) (*dto.FeedResponse, error)
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(cfg *config.Config, companyRepo repository.CompanyRepository, analyticsRepo repository.AnalyticsRepository, log *logger.Logger) DashboardService {
	return &dashboardService{
		cfg:           cfg.Dashboard,
		companyRepo:   companyRepo,
		analyticsRepo: analyticsRepo,
		logger:        log,
		now:           time.Now,
	}
}

type dashboardService struct {
	cfg           config.Dashboard
	companyRepo   repository.CompanyRepository
	analyticsRepo repository.AnalyticsRepository
	logger        *logger.Logger
	now           func() time.Time
}

func (s *dashboardService) resolveCompany(ctx context.Context, userID uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company for user: %w", err)
	}
	if company == nil {
		return nil, ErrNoCompanyForUser
	}
	return company, nil
}

// window returns [now - days, now]; days <= 0 leaves the lower bound open.
func (s *dashboardService) window(days int) repository.Window {
	now := s.now()
	if days <= 0 {
		return repository.Window{To: now}
	}
	return repository.Window{From: now.AddDate(0, 0, -days), To: now}
}

func (s *dashboardService) periodOrDefault(periodDays int) int {
	if periodDays <= 0 {
		return s.cfg.DefaultPeriodDays
	}
	return periodDays
}

// GetStats counts data points per sentiment. Total is the sum of the buckets.
func (s *dashboardService) GetStats(ctx context.Context, userID uuid.UUID, periodDays int) (*dto.StatsResponse, error) {
	company, err := s.resolveCompany(ctx, userID)
	if err != nil {
		return nil, err
	}

	period := s.periodOrDefault(periodDays)
	rows, err := s.analyticsRepo.CountBySentiment(ctx, company.ID, s.window(period))
	if err != nil {
		s.logger.Error("Failed to count data points", logger.ErrorField(err), logger.StringField("company_id", company.ID.String()))
		return nil, fmt.Errorf("failed to count data points: %w", err)
	}

	stats := &dto.StatsResponse{Period: period}
	for _, row := range rows {
		switch entity.ParseSentiment(string(row.Sentiment)) {
		case entity.SentimentPositive:
			stats.Positive += row.Count
		case entity.SentimentNegative:
			stats.Negative += row.Count
		default:
			stats.Neutral += row.Count
		}
	}
	stats.Total = stats.Positive + stats.Negative + stats.Neutral

	return stats, nil
}

// GetTopTopics counts every topic occurrence, so ["a","a"] adds 2 to "a".
func (s *dashboardService) GetTopTopics(ctx context.Context, userID uuid.UUID, periodDays int) (*dto.TopicsResponse, error) {
	company, err := s.resolveCompany(ctx, userID)
	if err != nil {
		return nil, err
	}

	period := s.periodOrDefault(periodDays)
	topicLists, err := s.analyticsRepo.ListTopics(ctx, company.ID, s.window(period))
	if err != nil {
		s.logger.Error("Failed to list topics", logger.ErrorField(err), logger.StringField("company_id", company.ID.String()))
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	resp := &dto.TopicsResponse{Period: period, Topics: map[string]int{}}
	for _, topics := range topicLists {
		for _, topic := range topics {
			resp.Topics[topic]++
		}
		resp.TotalMentions += len(topics)
	}

	return resp, nil
}

// GetFeed pages the newest data points, one per distinct content.
func (s *dashboardService) GetFeed(ctx context.Context, userID uuid.UUID, query dto.FeedQuery) (*dto.FeedResponse, error) {
	company, err := s.resolveCompany(ctx, userID)
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	if page > MaxFeedPage {
		page = MaxFeedPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = s.cfg.DefaultPageLimit
	}
	if limit > s.cfg.MaxPageLimit {
		limit = s.cfg.MaxPageLimit
	}

	filter := repository.FeedFilter{
		CompanyID: company.ID,
		Window:    s.window(query.Period),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	if query.Sentiment != "" {
		filter.Sentiment = entity.Sentiment(strings.ToUpper(query.Sentiment))
	}

	total, err := s.analyticsRepo.CountDistinctContent(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count feed", logger.ErrorField(err), logger.StringField("company_id", company.ID.String()))
		return nil, fmt.Errorf("failed to count feed: %w", err)
	}

	dataPoints, err := s.analyticsRepo.FindFeed(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to load feed", logger.ErrorField(err), logger.StringField("company_id", company.ID.String()))
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	items := make([]dto.FeedItem, 0, len(dataPoints))
	for _, dp := range dataPoints {
		items = append(items, toFeedItem(dp))
	}

	return &dto.FeedResponse{
		Data: items,
		Meta: dto.FeedMeta{
			Total:    total,
			Page:     page,
			LastPage: int((total + int64(limit) - 1) / int64(limit)),
			Limit:    limit,
		},
	}, nil
}

func toFeedItem(dp entity.DataPoint) dto.FeedItem {
	topics := []string(dp.Topics)
	if topics == nil {
		topics = []string{}
	}
	return dto.FeedItem{
		ID:          dp.ID,
		Source:      dp.Source,
		OriginalURL: dp.OriginalURL,
		Author:      dp.Author,
		Title:       dp.Title,
		Content:     dp.Content,
		Sentiment:   dp.Sentiment,
		Topics:      topics,
		CreatedAt:   dp.CreatedAt,
	}
}
