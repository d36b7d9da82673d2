package normalizer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/entity"
)

func newTestNormalizer(extractTopics bool) *Normalizer {
	n := New(extractTopics)
	n.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return n
}

func acmeResult() *dto.AcquisitionResult {
	result := dto.NewEmptyResult(entity.ChannelAISearch)
	for i := 0; i < 7; i++ {
		result.Items = append(result.Items, dto.FeedbackItem{
			Text:   fmt.Sprintf("Reclamação número %d sobre o atendimento da Acme", i),
			Source: "Reclame Aqui",
			Type:   entity.FeedbackComplaint,
		})
	}
	for i := 0; i < 5; i++ {
		result.Items = append(result.Items, dto.FeedbackItem{
			Text:   fmt.Sprintf("Elogio %d", i),
			Source: "Twitter",
			Type:   entity.FeedbackPraise,
		})
	}
	return result
}

func TestNormalize_ItemLevel(t *testing.T) {
	dataPoints := newTestNormalizer(false).Normalize(acmeResult())

	require.Len(t, dataPoints, 12)
	counts := map[entity.Sentiment]int{}
	for _, dp := range dataPoints {
		counts[dp.Sentiment]++
		assert.NotEmpty(t, dp.Content)
		assert.Empty(t, dp.Topics)
		assert.NotNil(t, dp.Topics)
		assert.True(t, dp.CreatedAt.IsZero())
	}
	assert.Equal(t, 7, counts[entity.SentimentNegative])
	assert.Equal(t, 5, counts[entity.SentimentPositive])
	assert.Equal(t, 0, counts[entity.SentimentNeutral])
}

func TestNormalize_SentimentMapping(t *testing.T) {
	assert.Equal(t, entity.SentimentPositive, SentimentFor("PRAISE"))
	assert.Equal(t, entity.SentimentPositive, SentimentFor(" praise "))
	assert.Equal(t, entity.SentimentNegative, SentimentFor("Complaint"))
	assert.Equal(t, entity.SentimentNeutral, SentimentFor(""))
	assert.Equal(t, entity.SentimentNeutral, SentimentFor("QUESTION"))
}

func TestNormalize_TitleAndContent(t *testing.T) {
	long := strings.Repeat("á", 60)
	result := &dto.AcquisitionResult{Items: []dto.FeedbackItem{
		{Text: long},
		{Text: "Curto"},
		{Text: "Has a title", Title: "Explicit"},
		{Text: "   "},
		{Text: "Serp result", Title: strings.Repeat("b", 80)},
	}}

	dataPoints := newTestNormalizer(false).Normalize(result)
	require.Len(t, dataPoints, 4)

	assert.Equal(t, long, dataPoints[0].Content)
	assert.Equal(t, strings.Repeat("á", 50)+"...", dataPoints[0].Title)
	assert.Equal(t, "Curto", dataPoints[1].Title)
	assert.Equal(t, "Explicit", dataPoints[2].Title)
	assert.Equal(t, strings.Repeat("b", 50)+"...", dataPoints[3].Title)
}

func TestNormalize_ProvenanceFallbacks(t *testing.T) {
	t.Run("no sources", func(t *testing.T) {
		dataPoints := newTestNormalizer(false).Normalize(&dto.AcquisitionResult{Items: []dto.FeedbackItem{{Text: "x"}}})
		require.Len(t, dataPoints, 1)
		assert.Equal(t, UnattributedSource, dataPoints[0].OriginalURL)
		assert.Equal(t, UnattributedSource, dataPoints[0].Source)
		assert.Equal(t, AnonymousAuthor, dataPoints[0].Author)
	})

	t.Run("first grounding source", func(t *testing.T) {
		result := &dto.AcquisitionResult{
			Items: []dto.FeedbackItem{{Text: "x"}, {Text: "y", Source: "Reddit", URL: "https://reddit.com/r/acme", Author: "u/joe"}},
			Sources: []dto.GroundingSource{
				{URI: "https://www.reclameaqui.com.br/acme", Title: "RA"},
				{URI: "https://other.example", Title: "Other"},
			},
		}
		dataPoints := newTestNormalizer(false).Normalize(result)
		require.Len(t, dataPoints, 2)

		assert.Equal(t, "https://www.reclameaqui.com.br/acme", dataPoints[0].OriginalURL)
		assert.Equal(t, "www.reclameaqui.com.br", dataPoints[0].Source)

		assert.Equal(t, "https://reddit.com/r/acme", dataPoints[1].OriginalURL)
		assert.Equal(t, "Reddit", dataPoints[1].Source)
		assert.Equal(t, "u/joe", dataPoints[1].Author)
	})
}

func TestNormalize_CategoryExpansionCap(t *testing.T) {
	result := &dto.AcquisitionResult{Categories: []dto.FeedbackCategory{
		{Category: "Atendimento", Count: 100, Summary: "Demora no chat", Type: entity.FeedbackComplaint},
		{Category: "Preço", Count: 3, Summary: "", Type: entity.FeedbackPraise},
		{Category: "Negativo", Count: -4, Summary: "never"},
	}}

	dataPoints := newTestNormalizer(false).Normalize(result)
	require.Len(t, dataPoints, 13)

	for _, dp := range dataPoints[:10] {
		assert.Equal(t, "Atendimento", dp.Title)
		assert.Equal(t, []string{"Atendimento"}, []string(dp.Topics))
		assert.Equal(t, "Demora no chat", dp.Content)
		assert.Equal(t, entity.SentimentNegative, dp.Sentiment)
		assert.Equal(t, CategorySource, dp.Source)
		assert.Equal(t, CategoryAuthor, dp.Author)
		assert.Equal(t, UnattributedSource, dp.OriginalURL)
	}
	assert.Equal(t, "Preço", dataPoints[10].Content)
	assert.Equal(t, entity.SentimentPositive, dataPoints[12].Sentiment)
}

func TestExpandCategories_SingleCategoryOfHundred(t *testing.T) {
	items := ExpandCategories([]dto.FeedbackCategory{{Category: "Entrega", Count: 100, Summary: "Atrasos"}})
	assert.Len(t, items, MaxItemsPerCategory)
}

func TestNormalize_Topics(t *testing.T) {
	result := &dto.AcquisitionResult{Items: []dto.FeedbackItem{
		{Text: "x", Topics: []string{" Entrega ", "", "APP", "app"}},
	}}

	withTopics := newTestNormalizer(true).Normalize(result)
	assert.Equal(t, []string{"entrega", "app", "app"}, []string(withTopics[0].Topics))

	withoutTopics := newTestNormalizer(false).Normalize(result)
	assert.Empty(t, withoutTopics[0].Topics)
}

func TestNormalize_UpstreamDates(t *testing.T) {
	result := &dto.AcquisitionResult{Items: []dto.FeedbackItem{
		{Text: "past", Date: "2024-05-20"},
		{Text: "future", Date: "2030-01-01"},
		{Text: "garbage", Date: "ontem"},
	}}

	dataPoints := newTestNormalizer(false).Normalize(result)
	require.Len(t, dataPoints, 3)
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), dataPoints[0].CreatedAt)
	assert.True(t, dataPoints[1].CreatedAt.IsZero())
	assert.True(t, dataPoints[2].CreatedAt.IsZero())
}

func TestNormalize_Idempotent(t *testing.T) {
	result := acmeResult()
	result.Categories = []dto.FeedbackCategory{{Category: "App", Count: 4, Summary: "Travou", Type: entity.FeedbackComplaint}}
	result.Sources = []dto.GroundingSource{{URI: "https://a.example", Title: "A"}}

	n := newTestNormalizer(true)
	assert.Equal(t, n.Normalize(result), n.Normalize(result))
}

func TestNormalize_NilAndEmpty(t *testing.T) {
	n := newTestNormalizer(false)
	assert.Empty(t, n.Normalize(nil))
	assert.Empty(t, n.Normalize(dto.NewEmptyResult(entity.ChannelAISearch)))
}
