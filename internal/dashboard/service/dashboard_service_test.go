package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reputation-scryper/internal/dashboard/config"
	"reputation-scryper/internal/dashboard/dto"
	"reputation-scryper/internal/dashboard/repository"
	"reputation-scryper/internal/entity"
	"reputation-scryper/pkg/logger"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeCompanyRepository struct {
	byOwner map[uuid.UUID]entity.Company
	err     error
}

func (f *fakeCompanyRepository) FindByOwner(_ context.Context, ownerID uuid.UUID) (*entity.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byOwner[ownerID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// memoryAnalyticsRepository evaluates the analytics queries over an in-memory table.
type memoryAnalyticsRepository struct {
	rows []entity.DataPoint
	err  error
}

func inWindow(dp entity.DataPoint, companyID uuid.UUID, w repository.Window) bool {
	if dp.CompanyID != companyID {
		return false
	}
	if !w.From.IsZero() && dp.CreatedAt.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && dp.CreatedAt.After(w.To) {
		return false
	}
	return true
}

func (m *memoryAnalyticsRepository) CountBySentiment(_ context.Context, companyID uuid.UUID, w repository.Window) ([]repository.SentimentCount, error) {
	if m.err != nil {
		return nil, m.err
	}
	counts := map[entity.Sentiment]int64{}
	for _, dp := range m.rows {
		if inWindow(dp, companyID, w) {
			counts[dp.Sentiment]++
		}
	}
	var rows []repository.SentimentCount
	for s, c := range counts {
		rows = append(rows, repository.SentimentCount{Sentiment: s, Count: c})
	}
	return rows, nil
}

func (m *memoryAnalyticsRepository) ListTopics(_ context.Context, companyID uuid.UUID, w repository.Window) ([][]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var topics [][]string
	for _, dp := range m.rows {
		if inWindow(dp, companyID, w) && len(dp.Topics) > 0 {
			topics = append(topics, []string(dp.Topics))
		}
	}
	return topics, nil
}

func (m *memoryAnalyticsRepository) distinct(filter repository.FeedFilter) []entity.DataPoint {
	newest := map[string]entity.DataPoint{}
	for _, dp := range m.rows {
		if !inWindow(dp, filter.CompanyID, filter.Window) {
			continue
		}
		if filter.Sentiment != "" && dp.Sentiment != filter.Sentiment {
			continue
		}
		current, ok := newest[dp.Content]
		if !ok || dp.CreatedAt.After(current.CreatedAt) {
			newest[dp.Content] = dp
		}
	}
	result := make([]entity.DataPoint, 0, len(newest))
	for _, dp := range newest {
		result = append(result, dp)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result
}

func (m *memoryAnalyticsRepository) FindFeed(_ context.Context, filter repository.FeedFilter) ([]entity.DataPoint, error) {
	if m.err != nil {
		return nil, m.err
	}
	all := m.distinct(filter)
	if filter.Offset >= len(all) {
		return []entity.DataPoint{}, nil
	}
	end := min(filter.Offset+filter.Limit, len(all))
	return all[filter.Offset:end], nil
}

func (m *memoryAnalyticsRepository) CountDistinctContent(_ context.Context, filter repository.FeedFilter) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.distinct(filter))), nil
}

type dashboardFixture struct {
	userID    uuid.UUID
	companyID uuid.UUID
	repo      *memoryAnalyticsRepository
	service   DashboardService
}

func newDashboardFixture(rows ...entity.DataPoint) *dashboardFixture {
	userID, companyID := uuid.New(), uuid.New()
	for i := range rows {
		if rows[i].CompanyID == uuid.Nil {
			rows[i].CompanyID = companyID
		}
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	repo := &memoryAnalyticsRepository{rows: rows}
	cfg := &config.Config{}
	cfg.ApplyDefaults()

	svc := NewDashboardService(cfg, &fakeCompanyRepository{byOwner: map[uuid.UUID]entity.Company{
		userID: {ID: companyID, Name: "Acme", OwnerID: userID},
	}}, repo, logger.NewNop()).(*dashboardService)
	svc.now = func() time.Time { return testNow }

	return &dashboardFixture{userID: userID, companyID: companyID, repo: repo, service: svc}
}

func point(content string, sentiment entity.Sentiment, age time.Duration, topics ...string) entity.DataPoint {
	return entity.DataPoint{
		Content:   content,
		Sentiment: sentiment,
		Topics:    pq.StringArray(topics),
		CreatedAt: testNow.Add(-age),
	}
}

func TestGetStats_AcmeScenario(t *testing.T) {
	var rows []entity.DataPoint
	for i := 0; i < 7; i++ {
		rows = append(rows, point(fmt.Sprintf("complaint %d", i), entity.SentimentNegative, time.Hour))
	}
	for i := 0; i < 5; i++ {
		rows = append(rows, point(fmt.Sprintf("praise %d", i), entity.SentimentPositive, time.Hour))
	}
	f := newDashboardFixture(rows...)

	stats, err := f.service.GetStats(context.Background(), f.userID, 30)
	require.NoError(t, err)
	assert.Equal(t, &dto.StatsResponse{Period: 30, Total: 12, Positive: 5, Negative: 7, Neutral: 0}, stats)
}

func TestGetStats_WindowAndInvariant(t *testing.T) {
	other := point("other company", entity.SentimentPositive, time.Hour)
	other.CompanyID = uuid.New()
	f := newDashboardFixture(
		point("a", entity.SentimentPositive, 24*time.Hour),
		point("b", entity.SentimentNeutral, 2*24*time.Hour),
		point("c", entity.SentimentNegative, 10*24*time.Hour),
		point("old", entity.SentimentNegative, 60*24*time.Hour),
		other,
	)

	week, err := f.service.GetStats(context.Background(), f.userID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), week.Total)
	assert.Equal(t, week.Total, week.Positive+week.Negative+week.Neutral)

	defaulted, err := f.service.GetStats(context.Background(), f.userID, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, defaulted.Period)
	assert.Equal(t, int64(3), defaulted.Total)
	assert.Equal(t, defaulted.Total, defaulted.Positive+defaulted.Negative+defaulted.Neutral)
}

func TestGetStats_EmptyWindowIsNotAnError(t *testing.T) {
	f := newDashboardFixture()
	stats, err := f.service.GetStats(context.Background(), f.userID, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
}

func TestGetTopTopics(t *testing.T) {
	f := newDashboardFixture(
		point("a", entity.SentimentNegative, time.Hour, "entrega", "entrega"),
		point("b", entity.SentimentNegative, time.Hour, "app"),
		point("c", entity.SentimentPositive, time.Hour),
		point("d", entity.SentimentPositive, time.Hour, "entrega", "preço"),
	)

	topics, err := f.service.GetTopTopics(context.Background(), f.userID, 30)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"entrega": 3, "app": 1, "preço": 1}, topics.Topics)
	assert.Equal(t, 5, topics.TotalMentions)

	sum := 0
	for _, c := range topics.Topics {
		sum += c
	}
	assert.Equal(t, topics.TotalMentions, sum)
}

func TestGetTopTopics_Empty(t *testing.T) {
	f := newDashboardFixture()
	topics, err := f.service.GetTopTopics(context.Background(), f.userID, 7)
	require.NoError(t, err)
	assert.NotNil(t, topics.Topics)
	assert.Equal(t, 0, topics.TotalMentions)
}

func TestGetFeed_DeduplicatesContent(t *testing.T) {
	f := newDashboardFixture(
		point("App travou de novo", entity.SentimentNegative, 2*time.Hour),
		point("App travou de novo", entity.SentimentNegative, time.Hour),
		point("Entrega rápida", entity.SentimentPositive, 3*time.Hour),
	)

	feed, err := f.service.GetFeed(context.Background(), f.userID, dto.FeedQuery{Limit: 10})
	require.NoError(t, err)

	require.Len(t, feed.Data, 2)
	assert.Equal(t, "App travou de novo", feed.Data[0].Content)
	assert.Equal(t, testNow.Add(-time.Hour), feed.Data[0].CreatedAt)
	assert.Equal(t, dto.FeedMeta{Total: 2, Page: 1, LastPage: 1, Limit: 10}, feed.Meta)
}

func TestGetFeed_PaginationIsStable(t *testing.T) {
	var rows []entity.DataPoint
	for i := 0; i < 23; i++ {
		rows = append(rows, point(fmt.Sprintf("content %d", i%17), entity.SentimentNeutral, time.Duration(i)*time.Minute))
	}
	f := newDashboardFixture(rows...)

	seen := map[string]bool{}
	var lastPage int
	for page := 1; ; page++ {
		feed, err := f.service.GetFeed(context.Background(), f.userID, dto.FeedQuery{Page: page, Limit: 5})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(feed.Data), 5)
		assert.Equal(t, int64(17), feed.Meta.Total)
		lastPage = feed.Meta.LastPage
		if len(feed.Data) == 0 {
			break
		}
		for _, item := range feed.Data {
			assert.False(t, seen[item.Content], "duplicate content %q", item.Content)
			seen[item.Content] = true
		}
	}
	assert.Len(t, seen, 17)
	assert.Equal(t, 4, lastPage)
}

func TestGetFeed_DefaultsAndFilters(t *testing.T) {
	f := newDashboardFixture(
		point("bad", entity.SentimentNegative, time.Hour),
		point("good", entity.SentimentPositive, time.Hour),
		point("ancient", entity.SentimentNegative, 400*24*time.Hour),
	)

	feed, err := f.service.GetFeed(context.Background(), f.userID, dto.FeedQuery{Sentiment: "negative"})
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Meta.Page)
	assert.Equal(t, 10, feed.Meta.Limit)
	assert.Equal(t, int64(2), feed.Meta.Total)
	for _, item := range feed.Data {
		assert.Equal(t, entity.SentimentNegative, item.Sentiment)
		assert.NotNil(t, item.Topics)
	}

	windowed, err := f.service.GetFeed(context.Background(), f.userID, dto.FeedQuery{Sentiment: "NEGATIVE", Period: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(1), windowed.Meta.Total)

	capped, err := f.service.GetFeed(context.Background(), f.userID, dto.FeedQuery{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, capped.Meta.Limit)

	empty := newDashboardFixture()
	emptyFeed, err := empty.service.GetFeed(context.Background(), empty.userID, dto.FeedQuery{})
	require.NoError(t, err)
	assert.Empty(t, emptyFeed.Data)
	assert.Equal(t, 0, emptyFeed.Meta.LastPage)
}

func TestGetFeed_HugePageIsClamped(t *testing.T) {
	f := newDashboardFixture(point("a", entity.SentimentNeutral, time.Hour))

	feed, err := f.service.GetFeed(context.Background(), f.userID, dto.FeedQuery{Page: math.MaxInt, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, MaxFeedPage, feed.Meta.Page)
	assert.Empty(t, feed.Data)
	assert.Equal(t, int64(1), feed.Meta.Total)
}

func TestDashboard_NoCompanyForUser(t *testing.T) {
	f := newDashboardFixture(point("a", entity.SentimentPositive, time.Hour))
	stranger := uuid.New()
	ctx := context.Background()

	_, err := f.service.GetStats(ctx, stranger, 30)
	assert.ErrorIs(t, err, ErrNoCompanyForUser)
	_, err = f.service.GetTopTopics(ctx, stranger, 30)
	assert.ErrorIs(t, err, ErrNoCompanyForUser)
	_, err = f.service.GetFeed(ctx, stranger, dto.FeedQuery{})
	assert.ErrorIs(t, err, ErrNoCompanyForUser)
}

func TestDashboard_RepositoryError(t *testing.T) {
	f := newDashboardFixture()
	f.repo.err = errors.New("connection reset")

	_, err := f.service.GetStats(context.Background(), f.userID, 30)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCompanyForUser)
}
