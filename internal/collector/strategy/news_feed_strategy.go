package strategy

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"reputation-scryper/internal/collector/config"
	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/entity"
	"reputation-scryper/pkg/logger"
	"reputation-scryper/pkg/utils"
)

// NewsFeedStrategy reads recent news mentions of a company from an RSS search feed.
type NewsFeedStrategy struct {
	cfg    config.NewsFeed
	logger *logger.Logger
	parser *gofeed.Parser
	now    func() time.Time
}

// NewNewsFeedStrategy creates a new instance of NewsFeedStrategy.
func NewNewsFeedStrategy(cfg config.NewsFeed, log *logger.Logger) *NewsFeedStrategy {
	return &NewsFeedStrategy{
		cfg:    cfg,
		logger: log,
		parser: gofeed.NewParser(),
		now:    time.Now,
	}
}

// GetType returns the channel this strategy serves.
func (s *NewsFeedStrategy) GetType() entity.ChannelType {
	return entity.ChannelNewsFeed
}

func (s *NewsFeedStrategy) Acquire(ctx context.Context, companyName string, period dto.Period) (*dto.AcquisitionResult, error) {
	feedURL := s.buildFeedURL(companyName)

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	s.logger.Info("Processing RSS feed", logger.StringField("url", feedURL))
	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			s.logger.Warn("Discarding unreadable RSS feed", logger.ErrorField(err), logger.StringField("company", companyName))
			return dto.NewEmptyResult(s.GetType()), nil
		}
		return nil, newAcquisitionError(s.GetType(), err)
	}

	var cutoff time.Time
	if days := period.Days(); days > 0 {
		cutoff = s.now().AddDate(0, 0, -days)
	}

	result := dto.NewEmptyResult(s.GetType())
	for _, item := range feed.Items {
		if len(result.Items) >= s.cfg.MaxItems {
			break
		}
		feedbackItem, ok := toFeedbackItem(item, cutoff)
		if !ok {
			continue
		}
		result.Items = append(result.Items, feedbackItem)
	}

	s.logger.Info("News feed acquisition completed",
		logger.StringField("company", companyName),
		logger.IntField("feed_items", len(feed.Items)),
		logger.IntField("items", len(result.Items)),
	)

	return result, nil
}

func (s *NewsFeedStrategy) buildFeedURL(companyName string) string {
	feedURL := fmt.Sprintf("%s?q=%s", s.cfg.BaseURL, url.QueryEscape(fmt.Sprintf("%q", companyName)))
	if s.cfg.Locale != "" {
		feedURL += "&" + s.cfg.Locale
	}
	return feedURL
}

// toFeedbackItem converts a feed entry; entries without a title or older than cutoff are skipped.
func toFeedbackItem(item *gofeed.Item, cutoff time.Time) (dto.FeedbackItem, bool) {
	if item == nil {
		return dto.FeedbackItem{}, false
	}
	title := utils.CollapseSpaces(item.Title)
	if title == "" {
		return dto.FeedbackItem{}, false
	}
	if item.PublishedParsed != nil && !cutoff.IsZero() && item.PublishedParsed.Before(cutoff) {
		return dto.FeedbackItem{}, false
	}

	text := title
	if description := plainText(item.Description); description != "" && description != title {
		text = fmt.Sprintf("%s. %s", title, description)
	}

	feedbackItem := dto.FeedbackItem{
		Text:   text,
		Source: utils.Hostname(item.Link),
		URL:    item.Link,
		Title:  title,
	}
	if item.Author != nil {
		feedbackItem.Author = strings.TrimSpace(item.Author.Name)
	}
	if item.PublishedParsed != nil {
		feedbackItem.Date = item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	return feedbackItem, true
}

// plainText strips markup from an HTML fragment.
func plainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return utils.CollapseSpaces(fragment)
	}
	return utils.CollapseSpaces(doc.Text())
}
