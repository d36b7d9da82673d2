package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"reputation-scryper/internal/entity"
)

// Window is a created_at range. A zero From means no lower bound.
type Window struct {
	From time.Time
	To   time.Time
}

// SentimentCount is one row of a GROUP BY sentiment query.
type SentimentCount struct {
	Sentiment entity.Sentiment
	Count     int64
}

type topicsRow struct {
	Topics pq.StringArray
}

// FeedFilter selects a page of the deduplicated feed.
type FeedFilter struct {
	CompanyID uuid.UUID
	Window    Window
	Sentiment entity.Sentiment
	Limit     int
	Offset    int
}

// AnalyticsRepository runs the read-only dashboard queries over data_points.
type AnalyticsRepository interface {
	CountBySentiment(ctx context.Context, companyID uuid.UUID, window Window) ([]SentimentCount, error)
	ListTopics(ctx context.Context, companyID uuid.UUID, window Window) ([][]string, error)
	FindFeed(ctx context.Context, filter FeedFilter) ([]entity.DataPoint, error)
	CountDistinctContent(ctx context.Context, filter FeedFilter) (int64, error)
}

// NewAnalyticsRepository creates a new instance of AnalyticsRepository.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{
		db: db,
	}
}

type analyticsRepository struct {
	db *gorm.DB
}

func (r *analyticsRepository) scoped(ctx context.Context, companyID uuid.UUID, window Window) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.DataPoint{}).Where("company_id = ?", companyID)
	if !window.From.IsZero() {
		q = q.Where("created_at >= ?", window.From)
	}
	if !window.To.IsZero() {
		q = q.Where("created_at <= ?", window.To)
	}
	return q
}

func (r *analyticsRepository) CountBySentiment(ctx context.Context, companyID uuid.UUID, window Window) ([]SentimentCount, error) {
	var rows []SentimentCount
	err := r.scoped(ctx, companyID, window).
		Select("sentiment, COUNT(*) AS count").
		Group("sentiment").
		Scan(&rows).Error
	return rows, err
}

// ListTopics returns the topics array of every data point in the window.
func (r *analyticsRepository) ListTopics(ctx context.Context, companyID uuid.UUID, window Window) ([][]string, error) {
	var rows []topicsRow
	err := r.scoped(ctx, companyID, window).
		Select("topics").
		Where("cardinality(topics) > 0").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	topics := make([][]string, 0, len(rows))
	for _, row := range rows {
		topics = append(topics, []string(row.Topics))
	}
	return topics, nil
}

// FindFeed keeps the newest row per distinct content, then pages the survivors
// newest first.
func (r *analyticsRepository) FindFeed(ctx context.Context, filter FeedFilter) ([]entity.DataPoint, error) {
	var (
		qBuilder   strings.Builder
		dataPoints []entity.DataPoint
	)

	where, qParam := feedConditions(filter)

	qBuilder.WriteString(`
	SELECT id, company_id, source, original_url, author, title, content, sentiment, topics, created_at
	FROM (
		SELECT DISTINCT ON (content) id, company_id, source, original_url, author, title, content, sentiment, topics, created_at
		FROM data_points
		WHERE `)
	qBuilder.WriteString(where)
	qBuilder.WriteString(`
		ORDER BY content, created_at DESC, id
	) AS feed
	ORDER BY created_at DESC, id
	LIMIT ? OFFSET ?`)
	qParam = append(qParam, filter.Limit, filter.Offset)

	err := r.db.WithContext(ctx).Raw(qBuilder.String(), qParam...).Scan(&dataPoints).Error
	return dataPoints, err
}

func (r *analyticsRepository) CountDistinctContent(ctx context.Context, filter FeedFilter) (int64, error) {
	where, qParam := feedConditions(filter)

	var total int64
	err := r.db.WithContext(ctx).
		Raw("SELECT COUNT(DISTINCT content) FROM data_points WHERE "+where, qParam...).
		Scan(&total).Error
	return total, err
}

func feedConditions(filter FeedFilter) (string, []interface{}) {
	conditions := []string{"company_id = ?"}
	qParam := []interface{}{filter.CompanyID}

	if !filter.Window.From.IsZero() {
		conditions = append(conditions, "created_at >= ?")
		qParam = append(qParam, filter.Window.From)
	}
	if !filter.Window.To.IsZero() {
		conditions = append(conditions, "created_at <= ?")
		qParam = append(qParam, filter.Window.To)
	}
	if filter.Sentiment != "" {
		conditions = append(conditions, "sentiment = ?")
		qParam = append(qParam, filter.Sentiment)
	}
	return strings.Join(conditions, " AND "), qParam
}
