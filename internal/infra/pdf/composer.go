// Package pdf implements the PDF assembly capability with gofpdf.
package pdf

import (
	"bytes"

	"bill-export-server/internal/domain"

	"github.com/jung-kurt/gofpdf"
)

// Exported bill pages are a fixed A4-equivalent size in millimetres.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 295.0
)

const imageName = "bill"

// Composer builds one paginated bill PDF. It implements domain.PDFComposer.
type Composer struct {
	pdf        *gofpdf.Fpdf
	registered bool
}

// NewComposer creates a new PDF composer
func NewComposer() domain.PDFComposer {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageWidthMM, Ht: pageHeightMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &Composer{pdf: pdf}
}

// AddImagePage appends a page and places the raster at the page's offset.
// The raster is registered once and referenced by every page.
func (c *Composer) AddImagePage(png []byte, page domain.PageImage) {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	if !c.registered {
		c.pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(png))
		c.registered = true
	}
	c.pdf.AddPage()
	c.pdf.ImageOptions(imageName, 0, page.OffsetMM, page.WidthMM, page.HeightMM, false, opts, 0, "")
}

// Output returns the assembled document.
func (c *Composer) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
