package service

import (
	"strings"

	"bill-export-server/internal/domain"
)

// BillFormatter converts a rendered HTML bill into the plain-text rendering
// used by text-only channels.
type BillFormatter struct {
	sanitizer *Sanitizer
	composer  *Composer
	logger    domain.Logger
}

// NewBillFormatter creates a new bill formatter
func NewBillFormatter(logger domain.Logger) *BillFormatter {
	return &BillFormatter{
		sanitizer: NewSanitizer(),
		composer:  NewComposer(),
		logger:    logger,
	}
}

// FormatForMessaging strips the bill's markup and re-renders it as decorated
// plain text.
func (f *BillFormatter) FormatForMessaging(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", domain.ErrEmptyBill
	}

	lines := f.sanitizer.Sanitize(html)
	text := f.composer.Compose(lines)

	f.logger.Debug("Formatted bill for messaging", "input_lines", len(lines), "output_bytes", len(text))
	return text, nil
}
