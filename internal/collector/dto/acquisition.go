package dto

import (
	"reputation-scryper/internal/entity"
)

// FeedbackItem is one raw piece of feedback returned by an acquisition channel.
type FeedbackItem struct {
	Text   string              `json:"text"`
	Source string              `json:"source"`
	URL    string              `json:"url"`
	Author string              `json:"author"`
	Title  string              `json:"title"`
	Type   entity.FeedbackType `json:"type"`
	Date   string              `json:"date"`
	Topics []string            `json:"topics"`
}

// FeedbackCategory is an aggregated group of similar feedback with an estimated count.
type FeedbackCategory struct {
	Category string              `json:"category"`
	Count    int                 `json:"count"`
	Summary  string              `json:"summary"`
	Dates    []string            `json:"dates"`
	Type     entity.FeedbackType `json:"type"`
}

// GroundingSource is a provenance citation attached to a channel response.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// AcquisitionResult is what a channel returns for one company lookup.
// Either Items, Categories, or both may be populated.
type AcquisitionResult struct {
	Channel          entity.ChannelType `json:"channel"`
	Items            []FeedbackItem     `json:"items"`
	Categories       []FeedbackCategory `json:"categories"`
	OverallSentiment entity.Sentiment   `json:"overall_sentiment"`
	Sources          []GroundingSource  `json:"sources"`
	Analysis         string             `json:"analysis"`
	Suggestion       string             `json:"suggestion"`
}

// NewEmptyResult returns a result with no feedback and NEUTRAL sentiment.
func NewEmptyResult(channel entity.ChannelType) *AcquisitionResult {
	return &AcquisitionResult{
		Channel:          channel,
		Items:            []FeedbackItem{},
		OverallSentiment: entity.SentimentNeutral,
		Sources:          []GroundingSource{},
	}
}

// IsEmpty reports whether the result carries no feedback at all.
func (r *AcquisitionResult) IsEmpty() bool {
	return r == nil || (len(r.Items) == 0 && len(r.Categories) == 0)
}

// GroundedResponse is the raw text and citations of a grounded LLM call.
type GroundedResponse struct {
	Text    string
	Sources []GroundingSource
}
