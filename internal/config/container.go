package config

import (
	"context"

	"bill-export-server/internal/domain"
	"bill-export-server/internal/infra/chrome"
	"bill-export-server/internal/infra/pdf"
	"bill-export-server/internal/repository"
	"bill-export-server/internal/service"
	"bill-export-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config           domain.Config
	Logger           domain.Logger
	ExportRepository domain.ExportRepository
	BillFormatter    *service.BillFormatter
	Messenger        *service.Messenger
	PDFExporter      *service.PDFExporter
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	formatter := service.NewBillFormatter(appLogger)
	messenger := service.NewMessenger(formatter, config.GetDefaultCountryCode(), appLogger)
	exportRepo := repository.NewMemoryExportRepository()

	var rasterizer domain.Rasterizer
	if config.IsChromeDisabled() {
		appLogger.Warn("Chrome rasterizer disabled; bill export will be unavailable")
		rasterizer = disabledRasterizer{}
	} else {
		rasterizer = chrome.NewRasterizer(appLogger)
	}

	// Storage mirroring is optional; without Supabase credentials exports
	// only land on local disk.
	var storage service.StorageService
	if config.GetSupabaseURL() != "" {
		supabaseStorage, err := service.NewStorageService(
			config.GetSupabaseURL(),
			config.GetSupabaseKey(),
			config.GetStorageBucket(),
			appLogger,
		)
		if err != nil {
			appLogger.Warn("Supabase storage unavailable", "error", err)
		} else {
			storage = supabaseStorage
		}
	}

	exporter := service.NewPDFExporter(
		rasterizer,
		pdf.NewComposer,
		storage,
		exportRepo,
		appLogger,
		config.GetExportPath(),
	)

	return &Container{
		Config:           config,
		Logger:           appLogger,
		ExportRepository: exportRepo,
		BillFormatter:    formatter,
		Messenger:        messenger,
		PDFExporter:      exporter,
	}
}

// disabledRasterizer stands in when headless Chrome is switched off.
type disabledRasterizer struct{}

func (disabledRasterizer) Render(ctx context.Context, html string) (*domain.Raster, error) {
	return nil, domain.ErrRenderFailed
}
