package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"
	"gorm.io/gorm"

	"reputation-scryper/internal/collector/config"
	"reputation-scryper/internal/collector/normalizer"
	"reputation-scryper/internal/collector/repository"
	"reputation-scryper/internal/collector/service"
	"reputation-scryper/internal/collector/strategy"
	"reputation-scryper/pkg/logger"
	"reputation-scryper/pkg/telegram"
)

// Pipeline is the wired ingestion stack shared by the API and the worker.
type Pipeline struct {
	Acquisition    strategy.AcquisitionStrategy
	Normalizer     *normalizer.Normalizer
	CompanyRepo    repository.CompanyRepository
	RefreshService service.RefreshService
	RefreshTasks   service.RefreshTaskService

	browser *strategy.Browser
}

// NewPipeline builds every acquisition channel, resolves the configured one and
// wires the refresh services on top of it.
func NewPipeline(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client, notifier telegram.Notifier, log *logger.Logger) (*Pipeline, error) {
	browser := strategy.NewBrowser(cfg.Browser, log)
	strategies := []strategy.AcquisitionStrategy{
		strategy.NewBrowserSearchStrategy(browser, cfg.Browser, log),
		strategy.NewNewsFeedStrategy(cfg.NewsFeed, log),
	}

	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		searchRepo := repository.NewGeminiSearchRepository(cfg, log, genAiClient)
		strategies = append(strategies, strategy.NewAISearchStrategy(searchRepo, log))
	} else {
		log.Warn("Gemini API key not set, ai_search channel unavailable")
	}

	acquisition, err := strategy.Resolve(cfg.Collector.Strategy, cfg.Collector.FallbackStrategy, strategy.NewStrategyMap(strategies...), log)
	if err != nil {
		browser.Close()
		return nil, err
	}

	companyRepo := repository.NewCompanyRepository(db)
	norm := normalizer.New(cfg.Collector.ExtractTopics)
	refreshSvc := service.NewRefreshService(
		cfg,
		companyRepo,
		repository.NewDataPointRepository(db),
		repository.NewReportRepository(db),
		acquisition,
		norm,
		log,
	)
	guard := service.NewRefreshGuard(redisClient, cfg.Collector.RefreshLockTTL, cfg.Collector.RefreshCooldown, log)

	log.Info("Acquisition pipeline ready",
		logger.StringField("strategy", cfg.Collector.Strategy),
		logger.StringField("fallback_strategy", cfg.Collector.FallbackStrategy),
	)

	return &Pipeline{
		Acquisition:    acquisition,
		Normalizer:     norm,
		CompanyRepo:    companyRepo,
		RefreshService: refreshSvc,
		RefreshTasks:   service.NewRefreshTaskService(cfg, redisClient, refreshSvc, guard, notifier, log),
		browser:        browser,
	}, nil
}

// Close shuts down the shared browser if it was started.
func (p *Pipeline) Close() {
	p.browser.Close()
}
