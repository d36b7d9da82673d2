package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"reputation-scryper/internal/entity"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCountBySentiment(t *testing.T) {
	db, mock := newMockDB(t)
	companyID := uuid.New()
	window := Window{From: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)}

	mock.ExpectQuery(`(?s)SELECT sentiment, COUNT\(\*\) AS count FROM "data_points" WHERE company_id = \$1 AND created_at >= \$2 AND created_at <= \$3 GROUP BY sentiment`).
		WithArgs(companyID, window.From, window.To).
		WillReturnRows(sqlmock.NewRows([]string{"sentiment", "count"}).
			AddRow("NEGATIVE", 7).
			AddRow("POSITIVE", 5))

	rows, err := NewAnalyticsRepository(db).CountBySentiment(context.Background(), companyID, window)
	require.NoError(t, err)
	assert.Equal(t, []SentimentCount{
		{Sentiment: entity.SentimentNegative, Count: 7},
		{Sentiment: entity.SentimentPositive, Count: 5},
	}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTopics(t *testing.T) {
	db, mock := newMockDB(t)
	companyID := uuid.New()

	mock.ExpectQuery(`(?s)SELECT topics FROM "data_points" WHERE company_id = \$1 AND cardinality\(topics\) > 0`).
		WithArgs(companyID).
		WillReturnRows(sqlmock.NewRows([]string{"topics"}).
			AddRow("{entrega,entrega}").
			AddRow("{app}"))

	topics, err := NewAnalyticsRepository(db).ListTopics(context.Background(), companyID, Window{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"entrega", "entrega"}, {"app"}}, topics)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFeed(t *testing.T) {
	db, mock := newMockDB(t)
	companyID := uuid.New()
	id := uuid.New()
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)SELECT DISTINCT ON \(content\).*WHERE company_id = \$1 AND created_at <= \$2 AND sentiment = \$3.*ORDER BY content, created_at DESC, id.*ORDER BY created_at DESC, id\s+LIMIT \$4 OFFSET \$5`).
		WithArgs(companyID, to, entity.SentimentNegative, 10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "source", "original_url", "author", "title", "content", "sentiment", "topics", "created_at"}).
			AddRow(id.String(), companyID.String(), "Reclame Aqui", "https://ra.example/1", "Anonymous", "App travou", "App travou de novo", "NEGATIVE", "{app}", createdAt))

	dataPoints, err := NewAnalyticsRepository(db).FindFeed(context.Background(), FeedFilter{
		CompanyID: companyID,
		Window:    Window{To: to},
		Sentiment: entity.SentimentNegative,
		Limit:     10,
		Offset:    20,
	})
	require.NoError(t, err)
	require.Len(t, dataPoints, 1)
	assert.Equal(t, id, dataPoints[0].ID)
	assert.Equal(t, "App travou de novo", dataPoints[0].Content)
	assert.Equal(t, entity.SentimentNegative, dataPoints[0].Sentiment)
	assert.Equal(t, []string{"app"}, []string(dataPoints[0].Topics))
	assert.Equal(t, createdAt, dataPoints[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountDistinctContent(t *testing.T) {
	db, mock := newMockDB(t)
	companyID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(DISTINCT content) FROM data_points WHERE company_id = $1`)).
		WithArgs(companyID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	total, err := NewAnalyticsRepository(db).CountDistinctContent(context.Background(), FeedFilter{CompanyID: companyID})
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	ownerID := uuid.New()
	companyID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE owner_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id"}).AddRow(companyID.String(), "Acme", ownerID.String()))

	company, err := NewCompanyRepository(db).FindByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, companyID, company.ID)
	assert.Equal(t, "Acme", company.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByOwner_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE owner_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id"}))

	company, err := NewCompanyRepository(db).FindByOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, company)
}
