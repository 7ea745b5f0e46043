// Package preview renders per-slide raster previews by screenshotting
// generated HTML in headless Chrome. The whole package is best-effort: the
// core generation path never depends on it.
package preview

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"

	"slidechat-backend/internal/models"
)

const (
	viewportWidth  = 1280
	viewportHeight = 720
)

// Renderer screenshots slides in a shared headless Chrome instance. Each
// RenderSlide call runs in its own tab, so concurrent calls are safe.
type Renderer struct {
	browserCtx context.Context
	cancels    []context.CancelFunc
	timeout    time.Duration
}

// NewRenderer launches the browser and verifies it is actually runnable;
// callers should degrade to no previews when it fails.
func NewRenderer(timeout time.Duration) (*Renderer, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.WindowSize(viewportWidth, viewportHeight),
		)...,
	)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	r := &Renderer{
		browserCtx: browserCtx,
		cancels:    []context.CancelFunc{browserCancel, allocCancel},
		timeout:    timeout,
	}

	probeCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()
	if err := chromedp.Run(probeCtx); err != nil {
		r.Close()
		return nil, fmt.Errorf("headless Chrome unavailable: %w", err)
	}

	return r, nil
}

func (r *Renderer) Close() {
	for _, cancel := range r.cancels {
		cancel()
	}
}

// RenderSlide returns the slide's preview as a data:image/png;base64 string.
func (r *Renderer) RenderSlide(ctx context.Context, slide models.Slide, index, total int) (string, error) {
	html, err := slideHTML(slide, index, total)
	if err != nil {
		return "", fmt.Errorf("failed to build slide HTML: %w", err)
	}

	tabCtx, tabCancel := chromedp.NewContext(r.browserCtx)
	defer tabCancel()
	tabCtx, timeoutCancel := context.WithTimeout(tabCtx, r.timeout)
	defer timeoutCancel()

	// Honor the caller's cancellation as well as the render timeout.
	go func() {
		select {
		case <-ctx.Done():
			tabCancel()
		case <-tabCtx.Done():
		}
	}()

	var png []byte
	err = chromedp.Run(tabCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate("data:text/html;charset=utf-8,"+url.PathEscape(html)),
		chromedp.FullScreenshot(&png, 90),
	)
	if err != nil {
		return "", fmt.Errorf("screenshot failed for slide %d: %w", index+1, err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
