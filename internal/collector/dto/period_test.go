package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reputation-scryper/internal/entity"
)

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, PeriodLast7Days, ParsePeriod("last_7_days"))
	assert.Equal(t, PeriodAllTime, ParsePeriod("all_time"))
	assert.Equal(t, PeriodLast30Days, ParsePeriod("yesterday"))
	assert.Equal(t, PeriodLast30Days, ParsePeriod(""))
}

func TestPeriod_LabelAndDays(t *testing.T) {
	assert.Equal(t, 180, PeriodLast6Months.Days())
	assert.Equal(t, 0, PeriodAllTime.Days())
	assert.Equal(t, 30, Period("bogus").Days())
	assert.Equal(t, "the last 7 days", PeriodLast7Days.Label())
}

func TestAcquisitionResult_IsEmpty(t *testing.T) {
	var nilResult *AcquisitionResult
	assert.True(t, nilResult.IsEmpty())

	empty := NewEmptyResult(entity.ChannelAISearch)
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, entity.SentimentNeutral, empty.OverallSentiment)

	withCategory := &AcquisitionResult{Categories: []FeedbackCategory{{Category: "Atendimento", Count: 2}}}
	assert.False(t, withCategory.IsEmpty())
}
