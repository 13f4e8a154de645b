// Package browser manages a single shared headless Chrome process used to
// render the cadastral portal's JavaScript-heavy pages.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// settleDelay gives client-side rendering a moment to finish after the body
// is ready.
const settleDelay = 1500 * time.Millisecond

// Browser is a lazily started headless Chrome shared by all requests. Each
// fetch runs in a fresh tab with a cleared cookie jar; the process itself
// survives across requests.
type Browser struct {
	initOnce sync.Once
	initErr  error

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	closed        bool
}

// New creates an unstarted Browser. Chrome launches on the first fetch.
func New() *Browser {
	return &Browser{}
}

// Default is the process-wide shared browser.
var Default = New()

// initialize launches the Chrome process and opens the long-lived parent
// context all per-request tabs derive from.
func (b *Browser) initialize() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {
		// Silent logging
	}))

	// Starting on a blank page forces the process to actually launch now
	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		browserCancel()
		allocCancel()
		b.initErr = fmt.Errorf("failed to launch browser: %w", err)
		return
	}

	b.mu.Lock()
	b.allocCancel = allocCancel
	b.browserCtx = browserCtx
	b.browserCancel = browserCancel
	b.mu.Unlock()
}

// FetchHTML navigates a fresh tab to url and returns the rendered HTML. The
// tab is always torn down before returning, whatever the outcome. Navigation
// and rendering are bounded by timeout.
func (b *Browser) FetchHTML(url string, timeout time.Duration) (string, error) {
	b.initOnce.Do(b.initialize)
	if b.initErr != nil {
		return "", b.initErr
	}

	b.mu.Lock()
	parent := b.browserCtx
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return "", fmt.Errorf("browser has been shut down")
	}

	tabCtx, cancelTab := chromedp.NewContext(parent)
	defer cancelTab()

	runCtx, cancelRun := context.WithTimeout(tabCtx, timeout)
	defer cancelRun()

	var htmlContent string
	err := chromedp.Run(runCtx,
		// Fresh cookie jar so requests do not contaminate each other
		network.ClearBrowserCookies(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL content: %w", err)
	}

	return htmlContent, nil
}

// Shutdown closes the Chrome process. Safe to call when the browser never
// started.
func (b *Browser) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	if b.browserCancel != nil {
		b.browserCancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
}
