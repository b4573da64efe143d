// Package repository provides persistence for export records.
package repository

import (
	"sort"
	"sync"

	"bill-export-server/internal/domain"
)

// MemoryExportRepository keeps export records in memory. Exports are
// short-lived operational metadata; the PDF artifact itself lives on disk
// and in the storage bucket.
type MemoryExportRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.ExportRecord
}

// NewMemoryExportRepository creates a new in-memory export repository
func NewMemoryExportRepository() *MemoryExportRepository {
	return &MemoryExportRepository{
		records: make(map[string]*domain.ExportRecord),
	}
}

// Create stores a new export record
func (r *MemoryExportRepository) Create(record *domain.ExportRecord) error {
	if record.ID == "" {
		return &domain.ValidationError{Field: "id", Message: "export ID is required"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

// GetByID returns the export record with the given ID
func (r *MemoryExportRepository) GetByID(id string) (*domain.ExportRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, domain.ErrExportNotFound
	}
	return record, nil
}

// List returns all export records, newest first
func (r *MemoryExportRepository) List() ([]*domain.ExportRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*domain.ExportRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
