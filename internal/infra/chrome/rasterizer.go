// Package chrome implements the bill rasterization capability with a
// headless Chrome instance driven over the DevTools protocol.
package chrome

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"

	"bill-export-server/internal/domain"

	"github.com/chromedp/chromedp"
)

// Bills are laid out at a fixed viewport width so the render is deterministic
// regardless of what screen the POS client runs on. The 2x scale keeps the
// raster sharp when it is scaled down to page width.
const (
	renderWidthPx = 800
	renderScale   = 2.0
)

// Rasterizer renders bill HTML to a full-height PNG.
type Rasterizer struct {
	logger domain.Logger
}

// NewRasterizer creates a new Chrome-backed rasterizer
func NewRasterizer(logger domain.Logger) *Rasterizer {
	return &Rasterizer{logger: logger}
}

// Render hosts the HTML in a throwaway browser page and captures a
// full-page screenshot. The page and browser context are torn down on every
// path out of this function, success or failure.
func (r *Rasterizer) Render(ctx context.Context, html string) (*domain.Raster, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	pageCtx, cancelPage := chromedp.NewContext(allocCtx)
	defer cancelPage()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var buf []byte
	err := chromedp.Run(pageCtx,
		chromedp.EmulateViewport(renderWidthPx, 1, chromedp.EmulateScale(renderScale)),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Quality 100 makes FullScreenshot capture PNG.
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering bill: %w", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decoding raster dimensions: %w", err)
	}

	r.logger.Debug("Rasterized bill", "width_px", cfg.Width, "height_px", cfg.Height)
	return &domain.Raster{
		PNG:      buf,
		WidthPx:  cfg.Width,
		HeightPx: cfg.Height,
	}, nil
}
