package domain

import (
	"context"
	"time"
)

// Section identifies the region of a bill a line belongs to. The composer
// carries exactly one active section forward while walking the line sequence;
// unclassified lines take their indentation from it.
type Section int

const (
	SectionNone Section = iota
	SectionOrders
	SectionItems
	SectionTotals
	SectionPayment
)

// String returns the section name for logging.
func (s Section) String() string {
	switch s {
	case SectionOrders:
		return "orders"
	case SectionItems:
		return "items"
	case SectionTotals:
		return "totals"
	case SectionPayment:
		return "payment"
	default:
		return "none"
	}
}

// OrderSummary is the order metadata supplied by the POS billing layer.
// BillContent is the rendered HTML bill; everything else is display data
// for the outgoing message templates.
type OrderSummary struct {
	RestaurantName string   `json:"restaurant_name"`
	TableNumber    string   `json:"table_number"`
	OrderNumbers   []string `json:"order_numbers"`
	TotalAmount    float64  `json:"total_amount"`
	BillContent    string   `json:"bill_content,omitempty"`
}

// Raster is a full-height PNG render of a bill at a fixed layout width.
type Raster struct {
	PNG      []byte
	WidthPx  int
	HeightPx int
}

// PageImage addresses one fixed-size page window into a full-height raster.
// OffsetMM is the vertical offset (in millimetres, at page scale) at which
// the source image is placed on the page; it is 0 for the first page and
// negative for every page after it.
type PageImage struct {
	OffsetMM float64 `json:"offset_mm"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

// ExportRecord describes one exported bill PDF.
type ExportRecord struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	PageCount   int       `json:"page_count"`
	LocalPath   string    `json:"local_path,omitempty"`
	StoragePath string    `json:"storage_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Rasterizer renders a bill's HTML into a single full-height raster image.
// Implementations own whatever staging the render needs (an off-screen
// browser page, for instance) and must tear it down before returning,
// whether or not the render succeeded.
type Rasterizer interface {
	Render(ctx context.Context, html string) (*Raster, error)
}

// PDFComposer assembles page images into a PDF document. One composer
// instance builds one document.
type PDFComposer interface {
	// AddImagePage appends a page and places the raster on it at the given
	// offset. The same raster bytes may be placed on every page; only the
	// offset changes.
	AddImagePage(png []byte, page PageImage)
	// Output returns the finished document.
	Output() ([]byte, error)
}

// ExportRepository records exported bills.
type ExportRepository interface {
	Create(record *ExportRecord) error
	GetByID(id string) (*ExportRecord, error)
	List() ([]*ExportRecord, error)
}
