package strategy

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/patrickmn/go-cache"

	"reputation-scryper/internal/collector/config"
	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/entity"
	"reputation-scryper/pkg/logger"
	"reputation-scryper/pkg/utils"
)

const (
	resultBlockSelector   = "li.b_algo"
	resultTitleSelector   = "h2"
	resultSnippetSelector = ".b_caption p"
)

// PageRenderer returns the rendered HTML of a page once waitSelector is attached.
type PageRenderer interface {
	RenderHTML(ctx context.Context, pageURL, waitSelector string) (string, error)
}

// searchResult is one organic result block of a search engine results page.
type searchResult struct {
	URL     string
	Title   string
	Snippet string
}

// BrowserSearchStrategy scrapes a search engine results page with a headless browser.
// Scraping is best effort: every failure yields an empty result.
type BrowserSearchStrategy struct {
	renderer      PageRenderer
	cfg           config.Browser
	logger        *logger.Logger
	inmemoryCache *cache.Cache
}

// NewBrowserSearchStrategy creates a new instance of BrowserSearchStrategy.
func NewBrowserSearchStrategy(renderer PageRenderer, cfg config.Browser, log *logger.Logger) *BrowserSearchStrategy {
	return &BrowserSearchStrategy{
		renderer:      renderer,
		cfg:           cfg,
		logger:        log,
		inmemoryCache: cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

// GetType returns the channel this strategy serves.
func (s *BrowserSearchStrategy) GetType() entity.ChannelType {
	return entity.ChannelBrowserSearch
}

func (s *BrowserSearchStrategy) Acquire(ctx context.Context, companyName string, period dto.Period) (*dto.AcquisitionResult, error) {
	searchURL := s.buildSearchURL(companyName)

	if cached, found := s.inmemoryCache.Get(searchURL); found {
		s.logger.Debug("Search results served from cache", logger.StringField("url", searchURL))
		return s.toResult(cached.([]searchResult)), nil
	}

	html, err := s.renderer.RenderHTML(ctx, searchURL, resultBlockSelector)
	if err != nil {
		s.logger.Warn("Browser search failed", logger.ErrorField(err), logger.StringField("company", companyName))
		return dto.NewEmptyResult(s.GetType()), nil
	}

	results, err := extractResults(html, s.cfg.BlockedURLPrefixes)
	if err != nil {
		s.logger.Warn("Failed to extract search results", logger.ErrorField(err), logger.StringField("company", companyName))
		return dto.NewEmptyResult(s.GetType()), nil
	}

	if len(results) > 0 {
		s.inmemoryCache.Set(searchURL, results, cache.DefaultExpiration)
	}

	s.logger.Info("Browser acquisition completed",
		logger.StringField("company", companyName),
		logger.IntField("results", len(results)),
	)

	return s.toResult(results), nil
}

func (s *BrowserSearchStrategy) buildSearchURL(companyName string) string {
	query := strings.ReplaceAll(s.cfg.QueryTemplate, "{company}", companyName)
	return fmt.Sprintf("%s?q=%s", s.cfg.SearchURL, url.QueryEscape(query))
}

func (s *BrowserSearchStrategy) toResult(results []searchResult) *dto.AcquisitionResult {
	result := dto.NewEmptyResult(s.GetType())
	for _, r := range results {
		host := utils.Hostname(r.URL)
		result.Items = append(result.Items, dto.FeedbackItem{
			Text:   fmt.Sprintf("%s. %s", r.Title, r.Snippet),
			Source: host,
			URL:    r.URL,
			Author: host,
			Title:  r.Title,
		})
	}
	return result
}

// extractResults reads link, title and snippet of every result block and drops
// incomplete blocks and ad or redirect links.
func extractResults(html string, blockedPrefixes []string) ([]searchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	results := []searchResult{}
	doc.Find(resultBlockSelector).Each(func(_ int, block *goquery.Selection) {
		link, _ := block.Find("a").First().Attr("href")
		link = strings.TrimSpace(link)
		title := utils.CollapseSpaces(block.Find(resultTitleSelector).First().Text())
		snippet := utils.CollapseSpaces(block.Find(resultSnippetSelector).First().Text())

		if link == "" || title == "" || snippet == "" {
			return
		}
		if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
			return
		}
		if utils.HasAnyPrefix(link, blockedPrefixes) {
			return
		}
		results = append(results, searchResult{URL: link, Title: title, Snippet: snippet})
	})

	return results, nil
}
