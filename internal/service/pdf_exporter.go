package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bill-export-server/internal/domain"
	apperrors "bill-export-server/pkg/errors"

	"github.com/google/uuid"
)

// Fixed page geometry for exported bills (A4-equivalent, millimetres).
const (
	PageWidthMM  = 210.0
	PageHeightMM = 295.0
)

// PDFExporter rasterizes a bill and slices the raster into fixed-size PDF
// pages. Rasterization and PDF assembly are injected capabilities so the
// tiling arithmetic stays testable without a browser.
type PDFExporter struct {
	rasterizer  domain.Rasterizer
	newComposer func() domain.PDFComposer
	storage     StorageService
	repo        domain.ExportRepository
	logger      domain.Logger
	exportPath  string
}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter(
	rasterizer domain.Rasterizer,
	newComposer func() domain.PDFComposer,
	storage StorageService,
	repo domain.ExportRepository,
	logger domain.Logger,
	exportPath string,
) *PDFExporter {
	return &PDFExporter{
		rasterizer:  rasterizer,
		newComposer: newComposer,
		storage:     storage,
		repo:        repo,
		logger:      logger,
		exportPath:  exportPath,
	}
}

// Paginate tiles a raster's vertical extent into page windows. The first page
// places the image at offset 0; each following page shifts it up by one page
// height, so the windows cover the full raster with no gaps or overlaps. The
// last page may show blank padding below the content.
func Paginate(raster *domain.Raster) []domain.PageImage {
	if raster == nil || raster.WidthPx <= 0 || raster.HeightPx <= 0 {
		return nil
	}

	scaledHeightMM := float64(raster.HeightPx) * PageWidthMM / float64(raster.WidthPx)

	pages := []domain.PageImage{{OffsetMM: 0, WidthMM: PageWidthMM, HeightMM: scaledHeightMM}}
	remaining := scaledHeightMM - PageHeightMM
	for remaining >= 0 {
		pages = append(pages, domain.PageImage{
			OffsetMM: remaining - scaledHeightMM,
			WidthMM:  PageWidthMM,
			HeightMM: scaledHeightMM,
		})
		remaining -= PageHeightMM
	}
	return pages
}

// Export renders the bill, assembles the paginated PDF, saves it under the
// given filename, and records the artifact. The raster capability tears its
// staging down whether or not the render succeeds, so a failure here never
// leaks browser state or a partial file.
func (e *PDFExporter) Export(ctx context.Context, html, filename string) (*domain.ExportRecord, error) {
	if strings.TrimSpace(html) == "" {
		return nil, domain.ErrEmptyBill
	}

	raster, err := e.rasterizer.Render(ctx, html)
	if err != nil {
		e.logger.Error("Bill rasterization failed", err)
		return nil, apperrors.NewProcessingError(domain.ErrRenderFailed.Error(), err)
	}

	pages := Paginate(raster)
	composer := e.newComposer()
	for _, page := range pages {
		composer.AddImagePage(raster.PNG, page)
	}

	data, err := composer.Output()
	if err != nil {
		e.logger.Error("PDF assembly failed", err)
		return nil, apperrors.NewProcessingError(domain.ErrRenderFailed.Error(), err)
	}

	id := uuid.New().String()
	if filename == "" {
		filename = "bill-" + id + ".pdf"
	}
	filename = filepath.Base(filename)
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		filename += ".pdf"
	}

	localPath := filepath.Join(e.exportPath, filename)
	if err := os.MkdirAll(e.exportPath, 0o755); err != nil {
		return nil, apperrors.NewInternalError("failed to prepare export directory", err)
	}
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		// Leave no partial artifact behind.
		_ = os.Remove(localPath)
		return nil, apperrors.NewInternalError("failed to save bill PDF", err)
	}

	record := &domain.ExportRecord{
		ID:        id,
		Filename:  filename,
		PageCount: len(pages),
		LocalPath: localPath,
		CreatedAt: time.Now().UTC(),
	}

	if e.storage != nil {
		storagePath := "bills/" + filename
		if err := e.storage.Upload(ctx, storagePath, data); err != nil {
			// Storage is a mirror of the local artifact; the export still succeeded.
			e.logger.Warn("Failed to upload bill PDF to storage", "path", storagePath, "error", err)
		} else {
			record.StoragePath = storagePath
		}
	}

	if err := e.repo.Create(record); err != nil {
		return nil, apperrors.NewInternalError("failed to record export", err)
	}

	e.logger.Info("Bill exported",
		"export_id", record.ID,
		"filename", record.Filename,
		"pages", record.PageCount,
		"raster_px", raster.HeightPx,
	)
	return record, nil
}
