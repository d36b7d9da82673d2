package telegram

import (
	"fmt"
	"strings"
)

// RefreshNotice is the subset of a refresh run worth announcing.
type RefreshNotice struct {
	CompanyName      string
	TotalSaved       int
	OverallSentiment string
	Channel          string
	Suggestion       string
	Error            string
}

const maxMessageLen = 4090

// FormatRefreshNotices renders notices as Markdown messages, splitting so that
// no message exceeds Telegram's size limit.
func FormatRefreshNotices(notices []RefreshNotice) []string {
	if len(notices) == 0 {
		return nil
	}

	var (
		messages []string
		current  strings.Builder
	)
	current.WriteString("📣 *Reputation refresh*\n\n")

	for _, n := range notices {
		entry := formatNotice(n)
		if current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, current.String())
			current.Reset()
			current.WriteString(fmt.Sprintf("📣 *Reputation refresh (part %d)*\n\n", len(messages)+1))
		}
		current.WriteString(entry)
	}
	messages = append(messages, current.String())
	return messages
}

func formatNotice(n RefreshNotice) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏢 *%s*\n", escapeMarkdown(n.CompanyName)))
	if n.Error != "" {
		b.WriteString(fmt.Sprintf("❌ Failed: %s\n\n", escapeMarkdown(n.Error)))
		return b.String()
	}

	icon := "😐"
	switch strings.ToUpper(n.OverallSentiment) {
	case "POSITIVE":
		icon = "😊"
	case "NEGATIVE":
		icon = "😟"
	}
	b.WriteString(fmt.Sprintf("%s *Sentiment:* %s\n", icon, n.OverallSentiment))
	b.WriteString(fmt.Sprintf("🗂 *Saved:* %d via %s\n", n.TotalSaved, n.Channel))
	if n.Suggestion != "" {
		b.WriteString(fmt.Sprintf("💡 %s\n", escapeMarkdown(n.Suggestion)))
	}
	b.WriteString("\n")
	return b.String()
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
