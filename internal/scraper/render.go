package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/tv-fixtures/internal/lines"
)

// Renderer captures pages through headless Chrome, for listings that are
// assembled by scripts after load.
type Renderer struct {
	UserAgent string
	Timeout   time.Duration
	// Wait is how long to let scripts settle after the body is ready.
	Wait time.Duration
}

// NewRenderer returns a Renderer. Zero values select the package defaults.
func NewRenderer(userAgent string, timeout, wait time.Duration) *Renderer {
	if userAgent == "" {
		userAgent = UserAgent
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Renderer{UserAgent: userAgent, Timeout: timeout, Wait: wait}
}

// Capture renders url and extracts both the DOM leaves and the browser's own
// innerText.
func (r *Renderer) Capture(ctx context.Context, url string) (*Capture, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(r.UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	ctx, cancel = chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var outer, text string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(r.Wait),
		chromedp.OuterHTML("html", &outer, chromedp.ByQuery),
		chromedp.Evaluate(`document.body.innerText`, &text),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "rendering %s", url)
	}

	capture, err := ExtractLines(strings.NewReader(outer))
	if err != nil {
		return nil, err
	}
	capture.Text = lines.SplitText(text)
	return capture, nil
}
