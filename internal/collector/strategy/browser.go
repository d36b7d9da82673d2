package strategy

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"

	"reputation-scryper/internal/collector/config"
	"reputation-scryper/pkg/logger"
)

// Browser is a headless Chrome shared by every browser-search call.
// It is started by the first caller; each call renders in its own isolated
// browser context which is disposed when the call returns.
type Browser struct {
	cfg    config.Browser
	logger *logger.Logger

	mu            sync.Mutex
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
}

// NewBrowser creates a Browser. Chrome is not launched until first use.
func NewBrowser(cfg config.Browser, log *logger.Logger) *Browser {
	return &Browser{
		cfg:    cfg,
		logger: log,
	}
}

// ensure returns the shared browser context, launching Chrome if needed.
// A failed launch leaves the handle empty so the next caller retries.
func (b *Browser) ensure() (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browserCtx != nil {
		return b.browserCtx, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(b.cfg.UserAgent),
	)
	if b.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser process.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	b.logger.Info("Headless browser started")

	b.browserCtx = browserCtx
	b.browserCancel = browserCancel
	b.allocCancel = allocCancel
	return b.browserCtx, nil
}

// RenderHTML navigates to pageURL in a fresh browser context, waits up to the
// configured wait timeout for waitSelector to be attached and returns the page HTML.
func (b *Browser) RenderHTML(ctx context.Context, pageURL, waitSelector string) (string, error) {
	browserCtx, err := b.ensure()
	if err != nil {
		return "", err
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx, chromedp.WithNewBrowserContext())
	defer cancelTab()

	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.cfg.NavigationTimeout)
	defer cancelTimeout()

	var html string
	err = chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			waitCtx, cancel := context.WithTimeout(ctx, b.cfg.WaitTimeout)
			defer cancel()
			return chromedp.WaitReady(waitSelector, chromedp.ByQuery).Do(waitCtx)
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", pageURL, err)
	}

	return html, nil
}

// Close shuts Chrome down. The Browser may be reused; the next call relaunches it.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browserCtx == nil {
		return
	}
	b.browserCancel()
	b.allocCancel()
	b.browserCtx = nil
	b.browserCancel = nil
	b.allocCancel = nil
	b.logger.Info("Headless browser stopped")
}
