package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const defaultRenderTimeout = 30 * time.Second

// A4 in inches.
const (
	paperWidth  = 8.27
	paperHeight = 11.69
	margin      = 0.4
)

var ErrEmptyPDF = errors.New("rendered PDF is empty")

// ChromedpRenderer prints HTML to PDF through the Chrome DevTools Protocol.
// With a remote URL it attaches to a running browser; otherwise it launches a
// headless Chrome on first use.
type ChromedpRenderer struct {
	timeout     time.Duration
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewChromedpRenderer(remoteURL string, timeout time.Duration) *ChromedpRenderer {
	if timeout <= 0 {
		timeout = defaultRenderTimeout
	}

	r := &ChromedpRenderer{timeout: timeout}

	if remoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), remoteURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-sandbox", true),
	)
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)

	return r
}

func (r *ChromedpRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()

	// Tie the browser tab to the request deadline.
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	var pdf []byte

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}

			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			if err != nil {
				return err
			}

			pdf = data

			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("rendering PDF timed out after %s: %w", r.timeout, err)
		}

		return nil, fmt.Errorf("rendering PDF: %w", err)
	}

	if len(pdf) == 0 {
		return nil, ErrEmptyPDF
	}

	slog.Debug("pdf rendered", "bytes", len(pdf))

	return pdf, nil
}

func (r *ChromedpRenderer) Close() error {
	r.allocCancel()
	return nil
}
