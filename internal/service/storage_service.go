package service

import (
	"bytes"
	"context"
	"fmt"

	"bill-export-server/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// StorageService mirrors exported bill PDFs to an object store.
type StorageService interface {
	Upload(ctx context.Context, path string, data []byte) error
}

// SupabaseStorage uploads bill PDFs to a Supabase storage bucket.
type SupabaseStorage struct {
	client *supabase.Client
	bucket string
	logger domain.Logger
}

// NewStorageService creates a Supabase-backed storage service. Returns an
// error when the project URL or key is missing.
func NewStorageService(baseURL, apiKey, bucket string, logger domain.Logger) (*SupabaseStorage, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(baseURL, apiKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	return &SupabaseStorage{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Upload stores the PDF bytes at the given path inside the bucket.
func (s *SupabaseStorage) Upload(ctx context.Context, path string, data []byte) error {
	_, err := s.client.Storage.UploadFile(s.bucket, path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}

	s.logger.Debug("Uploaded bill PDF to storage", "bucket", s.bucket, "path", path)
	return nil
}
