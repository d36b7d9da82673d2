package entity

// ChannelType identifies an acquisition channel.
type ChannelType string

const (
	ChannelAISearch      ChannelType = "ai_search"
	ChannelBrowserSearch ChannelType = "browser_search"
	ChannelNewsFeed      ChannelType = "news_feed"
)

// FeedbackType is the upstream classification of a feedback item.
type FeedbackType string

const (
	FeedbackComplaint FeedbackType = "COMPLAINT"
	FeedbackPraise    FeedbackType = "PRAISE"
)
