package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"bill-export-server/internal/domain"
	apperrors "bill-export-server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing

type testLogger struct{}

func newTestLogger() domain.Logger { return &testLogger{} }

func (l *testLogger) Info(msg string, fields ...interface{})             {}
func (l *testLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *testLogger) Debug(msg string, fields ...interface{})            {}
func (l *testLogger) Warn(msg string, fields ...interface{})             {}

var _ domain.Logger = (*testLogger)(nil)

type fakeRasterizer struct {
	raster *domain.Raster
	err    error
	calls  int
}

func (f *fakeRasterizer) Render(ctx context.Context, html string) (*domain.Raster, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.raster, nil
}

type fakeComposer struct {
	pages []domain.PageImage
	err   error
}

func (f *fakeComposer) AddImagePage(png []byte, page domain.PageImage) {
	f.pages = append(f.pages, page)
}

func (f *fakeComposer) Output() ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

type mockExportRepo struct {
	records map[string]*domain.ExportRecord
}

func newMockExportRepo() *mockExportRepo {
	return &mockExportRepo{records: make(map[string]*domain.ExportRecord)}
}

func (m *mockExportRepo) Create(record *domain.ExportRecord) error {
	m.records[record.ID] = record
	return nil
}

func (m *mockExportRepo) GetByID(id string) (*domain.ExportRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, domain.ErrExportNotFound
}

func (m *mockExportRepo) List() ([]*domain.ExportRecord, error) {
	var out []*domain.ExportRecord
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

type fakeStorage struct {
	uploads map[string][]byte
	err     error
}

func (f *fakeStorage) Upload(ctx context.Context, path string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[path] = data
	return nil
}

// rasterFor builds a raster whose scaled height is heightMM at page width.
// Width 420 px maps to a 0.5 mm/px scale, keeping pixel counts integral.
func rasterFor(heightMM float64) *domain.Raster {
	return &domain.Raster{
		PNG:      []byte("png"),
		WidthPx:  420,
		HeightPx: int(heightMM * 2),
	}
}

func TestPaginate_SinglePage(t *testing.T) {
	pages := Paginate(rasterFor(100))

	require.Len(t, pages, 1)
	assert.Equal(t, 0.0, pages[0].OffsetMM)
	assert.Equal(t, PageWidthMM, pages[0].WidthMM)
	assert.InDelta(t, 100, pages[0].HeightMM, 1e-9)
}

func TestPaginate_TwoAndAHalfPages(t *testing.T) {
	height := 2.5 * PageHeightMM
	pages := Paginate(rasterFor(height))

	require.Len(t, pages, 3)

	// Consecutive pages shift the image up by exactly one page height:
	// the windows tile the raster with no gaps and no overlaps.
	for i := 1; i < len(pages); i++ {
		assert.InDelta(t, PageHeightMM, pages[i-1].OffsetMM-pages[i].OffsetMM, 1e-9, "page %d", i)
	}

	// The content windows (ignoring blank padding on the last page) sum to
	// the full scaled raster height.
	var shown float64
	for _, p := range pages {
		top := math.Max(0, -p.OffsetMM)
		bottom := math.Min(p.HeightMM, -p.OffsetMM+PageHeightMM)
		shown += bottom - top
	}
	assert.InDelta(t, height, shown, 1e-9)
}

func TestPaginate_NilAndEmptyRaster(t *testing.T) {
	assert.Nil(t, Paginate(nil))
	assert.Nil(t, Paginate(&domain.Raster{WidthPx: 0, HeightPx: 100}))
}

func TestPDFExporter_Export(t *testing.T) {
	dir := t.TempDir()
	rasterizer := &fakeRasterizer{raster: rasterFor(400)}
	composer := &fakeComposer{}
	repo := newMockExportRepo()
	storage := &fakeStorage{}

	exporter := NewPDFExporter(
		rasterizer,
		func() domain.PDFComposer { return composer },
		storage,
		repo,
		newTestLogger(),
		dir,
	)

	record, err := exporter.Export(context.Background(), "<p>BILL RECEIPT</p>", "table-5")
	require.NoError(t, err)

	assert.Equal(t, "table-5.pdf", record.Filename)
	assert.Equal(t, 2, record.PageCount)
	assert.Len(t, composer.pages, 2)
	assert.Equal(t, "bills/table-5.pdf", record.StoragePath)
	assert.Contains(t, storage.uploads, "bills/table-5.pdf")

	data, err := os.ReadFile(filepath.Join(dir, "table-5.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), data)

	stored, err := repo.GetByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Filename, stored.Filename)
}

func TestPDFExporter_RasterizationFailure(t *testing.T) {
	dir := t.TempDir()
	rasterizer := &fakeRasterizer{err: errors.New("browser crashed")}
	repo := newMockExportRepo()

	exporter := NewPDFExporter(
		rasterizer,
		func() domain.PDFComposer { return &fakeComposer{} },
		nil,
		repo,
		newTestLogger(),
		dir,
	)

	_, err := exporter.Export(context.Background(), "<p>bill</p>", "out")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProcessing))
	assert.Contains(t, err.Error(), "failed to generate bill PDF")

	// Nothing was written and nothing was recorded.
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
	assert.Empty(t, repo.records)
}

func TestPDFExporter_StorageFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	exporter := NewPDFExporter(
		&fakeRasterizer{raster: rasterFor(100)},
		func() domain.PDFComposer { return &fakeComposer{} },
		&fakeStorage{err: errors.New("bucket unavailable")},
		newMockExportRepo(),
		newTestLogger(),
		dir,
	)

	record, err := exporter.Export(context.Background(), "<p>bill</p>", "out")
	require.NoError(t, err)
	assert.Empty(t, record.StoragePath)
	assert.NotEmpty(t, record.LocalPath)
}

func TestPDFExporter_EmptyBill(t *testing.T) {
	exporter := NewPDFExporter(
		&fakeRasterizer{},
		func() domain.PDFComposer { return &fakeComposer{} },
		nil,
		newMockExportRepo(),
		newTestLogger(),
		t.TempDir(),
	)

	_, err := exporter.Export(context.Background(), "  ", "out")
	assert.Equal(t, domain.ErrEmptyBill, err)
}

func TestPDFExporter_DefaultFilename(t *testing.T) {
	exporter := NewPDFExporter(
		&fakeRasterizer{raster: rasterFor(100)},
		func() domain.PDFComposer { return &fakeComposer{} },
		nil,
		newMockExportRepo(),
		newTestLogger(),
		t.TempDir(),
	)

	record, err := exporter.Export(context.Background(), "<p>bill</p>", "")
	require.NoError(t, err)
	assert.Equal(t, "bill-"+record.ID+".pdf", record.Filename)
}
