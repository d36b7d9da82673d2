package dto

import (
	"time"

	"github.com/google/uuid"

	"reputation-scryper/internal/entity"
)

// PeriodQuery is the query string of the stats and topics endpoints.
type PeriodQuery struct {
	Period int `query:"period" validate:"omitempty,min=1,max=3650"`
}

// StatsResponse holds sentiment counts for a window.
type StatsResponse struct {
	Period   int   `json:"period"`
	Total    int64 `json:"total"`
	Positive int64 `json:"positive"`
	Negative int64 `json:"negative"`
	Neutral  int64 `json:"neutral"`
}

// TopicsResponse holds topic occurrence counts for a window.
type TopicsResponse struct {
	Period        int            `json:"period"`
	TotalMentions int            `json:"total_mentions"`
	Topics        map[string]int `json:"topics"`
}

// FeedQuery is the query string of the feed endpoint.
type FeedQuery struct {
	Page      int    `query:"page" validate:"omitempty,min=1,max=100000"`
	Limit     int    `query:"limit" validate:"omitempty,min=1"`
	Sentiment string `query:"sentiment" validate:"omitempty,oneof=POSITIVE NEGATIVE NEUTRAL positive negative neutral"`
	Period    int    `query:"period" validate:"omitempty,min=1,max=3650"`
}

// FeedItem is one deduplicated DataPoint in the feed.
type FeedItem struct {
	ID          uuid.UUID        `json:"id"`
	Source      string           `json:"source"`
	OriginalURL string           `json:"original_url"`
	Author      string           `json:"author"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Sentiment   entity.Sentiment `json:"sentiment"`
	Topics      []string         `json:"topics"`
	CreatedAt   time.Time        `json:"created_at"`
}

// FeedMeta carries pagination details.
type FeedMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"last_page"`
	Limit    int   `json:"limit"`
}

// FeedResponse is one page of the feed.
type FeedResponse struct {
	Data []FeedItem `json:"data"`
	Meta FeedMeta   `json:"meta"`
}

// SampleQuery is the query string of the public sample endpoint.
type SampleQuery struct {
	Company string `query:"company" validate:"required,min=2,max=120"`
}

// SampleReview is one unsaved review returned by the sample endpoint.
type SampleReview struct {
	Source    string           `json:"source"`
	Author    string           `json:"author"`
	Content   string           `json:"content"`
	Sentiment entity.Sentiment `json:"sentiment"`
}

// SampleResponse is the body of the sample endpoint.
type SampleResponse struct {
	Company string         `json:"company"`
	Total   int            `json:"total"`
	Data    []SampleReview `json:"data"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
