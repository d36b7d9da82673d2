package dto

import (
	"github.com/google/uuid"

	"reputation-scryper/internal/entity"
)

// RefreshSummary is returned by a completed refresh run.
type RefreshSummary struct {
	CompanyID        uuid.UUID          `json:"company_id"`
	TotalSaved       int                `json:"total_saved"`
	OverallSentiment entity.Sentiment   `json:"overall_sentiment"`
	Analysis         string             `json:"analysis,omitempty"`
	Suggestion       string             `json:"suggestion,omitempty"`
	Channel          entity.ChannelType `json:"channel"`
}

// RefreshTask is the payload published to the refresh stream.
type RefreshTask struct {
	CompanyID   uuid.UUID `json:"company_id"`
	CompanyName string    `json:"company_name"`
	RequestedBy string    `json:"requested_by"`
}
