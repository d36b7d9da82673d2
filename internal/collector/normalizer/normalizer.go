package normalizer

import (
	"strings"
	"time"

	"github.com/lib/pq"

	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/entity"
	"reputation-scryper/pkg/utils"
)

const (
	// MaxItemsPerCategory caps how many records one aggregated category expands into.
	MaxItemsPerCategory = 10
	// MaxTitleLength is the rune length of titles derived from content.
	MaxTitleLength      = 50

	UnattributedSource = "Google Search"
	CategorySource     = "Google Search Analysis"
	CategoryAuthor     = "Anonymous (AI aggregated)"
	AnonymousAuthor    = "Anonymous"
	truncatedTitleMark = "..."
)

// Normalizer maps acquisition results onto DataPoints. It never fails:
// missing or unknown fields fall back to neutral defaults.
type Normalizer struct {
	extractTopics bool
	now           func() time.Time
}

// New creates a Normalizer. When extractTopics is false, item-level topics are dropped.
func New(extractTopics bool) *Normalizer {
	return &Normalizer{
		extractTopics: extractTopics,
		now:           time.Now,
	}
}

// Normalize returns one DataPoint per usable item followed by the expanded categories.
// CompanyID and ID are left zero; CreatedAt is only set from a valid upstream date.
func (n *Normalizer) Normalize(result *dto.AcquisitionResult) []entity.DataPoint {
	if result == nil {
		return []entity.DataPoint{}
	}

	fallbackURL := UnattributedSource
	if len(result.Sources) > 0 && strings.TrimSpace(result.Sources[0].URI) != "" {
		fallbackURL = strings.TrimSpace(result.Sources[0].URI)
	}

	dataPoints := make([]entity.DataPoint, 0, len(result.Items)+len(result.Categories))
	for _, item := range result.Items {
		var topics []string
		if n.extractTopics {
			topics = cleanTopics(item.Topics)
		}
		if dp, ok := n.toDataPoint(item, topics, fallbackURL); ok {
			dataPoints = append(dataPoints, dp)
		}
	}

	for _, item := range ExpandCategories(result.Categories) {
		if dp, ok := n.toDataPoint(item, item.Topics, fallbackURL); ok {
			dataPoints = append(dataPoints, dp)
		}
	}

	return dataPoints
}

// ExpandCategories turns each aggregated category into min(count, MaxItemsPerCategory)
// items carrying the category as title and sole topic.
func ExpandCategories(categories []dto.FeedbackCategory) []dto.FeedbackItem {
	var items []dto.FeedbackItem
	for _, c := range categories {
		name := strings.TrimSpace(c.Category)
		if name == "" {
			continue
		}
		content := strings.TrimSpace(c.Summary)
		if content == "" {
			content = name
		}

		count := min(max(c.Count, 0), MaxItemsPerCategory)
		for i := 0; i < count; i++ {
			item := dto.FeedbackItem{
				Text:   content,
				Source: CategorySource,
				Author: CategoryAuthor,
				Title:  name,
				Type:   c.Type,
				Topics: []string{name},
			}
			if i < len(c.Dates) {
				item.Date = c.Dates[i]
			}
			items = append(items, item)
		}
	}
	return items
}

func (n *Normalizer) toDataPoint(item dto.FeedbackItem, topics []string, fallbackURL string) (entity.DataPoint, bool) {
	content := strings.TrimSpace(item.Text)
	if content == "" {
		return entity.DataPoint{}, false
	}

	originalURL := firstNonBlank(item.URL, fallbackURL)
	source := firstNonBlank(item.Source, utils.Hostname(originalURL), UnattributedSource)
	title := utils.TruncateRunes(firstNonBlank(item.Title, content), MaxTitleLength, truncatedTitleMark)

	if topics == nil {
		topics = []string{}
	}

	dp := entity.DataPoint{
		Source:      source,
		OriginalURL: originalURL,
		Author:      firstNonBlank(item.Author, AnonymousAuthor),
		Title:       title,
		Content:     content,
		Sentiment:   SentimentFor(item.Type),
		Topics:      pq.StringArray(topics),
	}

	if createdAt, ok := utils.ParseLooseDate(item.Date); ok && !createdAt.After(n.now()) {
		dp.CreatedAt = createdAt
	}

	return dp, true
}

// SentimentFor maps a feedback type to a sentiment; unknown types are NEUTRAL.
func SentimentFor(t entity.FeedbackType) entity.Sentiment {
	switch entity.FeedbackType(strings.ToUpper(strings.TrimSpace(string(t)))) {
	case entity.FeedbackPraise:
		return entity.SentimentPositive
	case entity.FeedbackComplaint:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}

func cleanTopics(topics []string) []string {
	cleaned := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
