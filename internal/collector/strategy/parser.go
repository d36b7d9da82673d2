package strategy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/entity"
	"reputation-scryper/pkg/utils"
)

const (
	defaultAnalysis    = "Analysis unavailable."
	defaultSuggestion  = "No suggestions."
	defaultSourceTitle = "Google Source"
)

// flexString accepts a JSON string, number, bool or null.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*f = ""
		return nil
	}
	*f = flexString(data)
	return nil
}

// flexInt accepts a JSON number or a numeric string; anything else is 0.
// Values are clamped to [0, math.MaxInt32].
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil {
		*f = 0
		return nil
	}
	switch {
	case math.IsNaN(n) || n < 0:
		n = 0
	case n > math.MaxInt32:
		n = math.MaxInt32
	}
	*f = flexInt(int(n))
	return nil
}

// flexStrings accepts an array of scalars or a single string.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = nil
	if len(data) == 0 || data[0] != '[' {
		var s flexString
		if err := s.UnmarshalJSON(data); err == nil && s != "" {
			*f = flexStrings{string(s)}
		}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, r := range raw {
		var s flexString
		if err := s.UnmarshalJSON(r); err == nil && s != "" {
			*f = append(*f, string(s))
		}
	}
	return nil
}

type rawItem struct {
	Text   flexString  `json:"text"`
	Source flexString  `json:"source"`
	URL    flexString  `json:"url"`
	Author flexString  `json:"author"`
	Title  flexString  `json:"title"`
	Type   flexString  `json:"type"`
	Date   flexString  `json:"date"`
	Topics flexStrings `json:"topics"`
}

type rawCategory struct {
	Category flexString  `json:"category"`
	Count    flexInt     `json:"count"`
	Summary  flexString  `json:"summary"`
	Dates    flexStrings `json:"dates"`
}

// rawPayload covers both the item-level and the category-level response shapes.
type rawPayload struct {
	Items            json.RawMessage `json:"items"`
	Complaints       json.RawMessage `json:"complaints"`
	Praises          json.RawMessage `json:"praises"`
	OverallSentiment flexString      `json:"overallSentiment"`
	AnalysisText     flexString      `json:"analysisText"`
	SuggestionText   flexString      `json:"suggestionText"`
}

// parseSearchPayload extracts the embedded JSON object from raw model text and
// decodes it with field-level defaults. Only a missing or undecodable object is
// reported as ErrMalformedUpstreamResponse; bad individual entries are skipped.
func parseSearchPayload(channel entity.ChannelType, raw string) (*dto.AcquisitionResult, error) {
	jsonText, err := utils.ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedUpstreamResponse, err)
	}

	var payload rawPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedUpstreamResponse, err)
	}

	result := dto.NewEmptyResult(channel)
	result.OverallSentiment = entity.ParseSentiment(string(payload.OverallSentiment))
	result.Analysis = firstNonEmpty(string(payload.AnalysisText), defaultAnalysis)
	result.Suggestion = firstNonEmpty(string(payload.SuggestionText), defaultSuggestion)

	for _, msg := range rawArray(payload.Items) {
		var item rawItem
		if err := json.Unmarshal(msg, &item); err != nil {
			continue
		}
		result.Items = append(result.Items, dto.FeedbackItem{
			Text:   strings.TrimSpace(string(item.Text)),
			Source: strings.TrimSpace(string(item.Source)),
			URL:    strings.TrimSpace(string(item.URL)),
			Author: strings.TrimSpace(string(item.Author)),
			Title:  strings.TrimSpace(string(item.Title)),
			Type:   entity.FeedbackType(strings.ToUpper(strings.TrimSpace(string(item.Type)))),
			Date:   strings.TrimSpace(string(item.Date)),
			Topics: []string(item.Topics),
		})
	}

	result.Categories = append(result.Categories, parseCategories(payload.Complaints, entity.FeedbackComplaint)...)
	result.Categories = append(result.Categories, parseCategories(payload.Praises, entity.FeedbackPraise)...)

	return result, nil
}

func parseCategories(data json.RawMessage, feedbackType entity.FeedbackType) []dto.FeedbackCategory {
	messages := rawArray(data)
	categories := make([]dto.FeedbackCategory, 0, len(messages))
	for _, msg := range messages {
		var c rawCategory
		if err := json.Unmarshal(msg, &c); err != nil {
			continue
		}
		name := strings.TrimSpace(string(c.Category))
		if name == "" {
			continue
		}
		categories = append(categories, dto.FeedbackCategory{
			Category: name,
			Count:    int(c.Count),
			Summary:  strings.TrimSpace(string(c.Summary)),
			Dates:    []string(c.Dates),
			Type:     feedbackType,
		})
	}
	return categories
}

// rawArray returns the elements of a JSON array, or nil for anything else.
func rawArray(data json.RawMessage) []json.RawMessage {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil
	}
	return elements
}

// dedupeSources drops empty URIs and keeps the first title seen per URI.
func dedupeSources(sources []dto.GroundingSource) []dto.GroundingSource {
	seen := make(map[string]struct{}, len(sources))
	unique := make([]dto.GroundingSource, 0, len(sources))
	for _, s := range sources {
		uri := strings.TrimSpace(s.URI)
		if uri == "" {
			continue
		}
		if _, ok := seen[uri]; ok {
			continue
		}
		seen[uri] = struct{}{}
		unique = append(unique, dto.GroundingSource{
			URI:   uri,
			Title: firstNonEmpty(strings.TrimSpace(s.Title), defaultSourceTitle),
		})
	}
	return unique
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
