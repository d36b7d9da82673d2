package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRefreshNotices(t *testing.T) {
	assert.Nil(t, FormatRefreshNotices(nil))

	msgs := FormatRefreshNotices([]RefreshNotice{
		{CompanyName: "Acme_Co", TotalSaved: 12, OverallSentiment: "NEGATIVE", Channel: "ai_search"},
		{CompanyName: "Beta", Error: "acquisition failure"},
	})
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Acme\\_Co")
	assert.Contains(t, msgs[0], "*Saved:* 12 via ai_search")
	assert.Contains(t, msgs[0], "Failed: acquisition failure")
}

func TestFormatRefreshNotices_SplitsLongOutput(t *testing.T) {
	var notices []RefreshNotice
	for i := 0; i < 40; i++ {
		notices = append(notices, RefreshNotice{
			CompanyName:      "Company",
			OverallSentiment: "NEUTRAL",
			Channel:          "browser_search",
			Suggestion:       strings.Repeat("x", 200),
		})
	}

	msgs := FormatRefreshNotices(notices)
	require.Greater(t, len(msgs), 1)
	for _, m := range msgs {
		assert.LessOrEqual(t, len(m), maxMessageLen)
	}
	assert.True(t, strings.HasPrefix(msgs[1], "📣 *Reputation refresh (part 2)*"))
}

func TestNewClient_EmptyTokenIsNoop(t *testing.T) {
	n, err := NewClient("", 0)
	require.NoError(t, err)
	assert.NoError(t, n.SendMessage("hello"))
}
