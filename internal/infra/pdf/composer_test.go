package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"bill-export-server/internal/domain"
)

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestComposer_BuildsMultiPageDocument(t *testing.T) {
	c := NewComposer()
	raster := testPNG(t)

	pages := []domain.PageImage{
		{OffsetMM: 0, WidthMM: 210, HeightMM: 600},
		{OffsetMM: -295, WidthMM: 210, HeightMM: 600},
		{OffsetMM: -590, WidthMM: 210, HeightMM: 600},
	}
	for _, page := range pages {
		c.AddImagePage(raster, page)
	}

	data, err := c.Output()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatalf("expected PDF header, got %q", string(data[:8]))
	}
	// Three pages means three page objects in the document.
	if got := strings.Count(string(data), "/Type /Page\n"); got < 3 {
		t.Fatalf("expected at least 3 page objects, got %d", got)
	}
}

func TestComposer_EmptyDocumentStillOutputs(t *testing.T) {
	c := NewComposer()

	data, err := c.Output()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty document")
	}
}
