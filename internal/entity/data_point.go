package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Sentiment is the polarity of a DataPoint.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// Sentiments lists every valid sentiment.
var Sentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}

// ParseSentiment maps free text to a Sentiment, defaulting to NEUTRAL.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(strings.ToUpper(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// DataPoint is one piece of reputation evidence about a company.
// Rows are append-only: nothing updates a persisted DataPoint.
type DataPoint struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_data_points_company_created,priority:1" json:"company_id"`
	Source      string         `gorm:"not null" json:"source"`
	OriginalURL string         `json:"original_url"`
	Author      string         `json:"author"`
	Title       string         `json:"title"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Sentiment   Sentiment      `gorm:"type:varchar(16);not null" json:"sentiment"`
	Topics      pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"topics"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index:idx_data_points_company_created,priority:2,sort:desc" json:"created_at"`
}

// TableName specifies the table name for the DataPoint model.
func (DataPoint) TableName() string {
	return "data_points"
}
