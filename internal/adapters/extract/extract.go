// Package extract turns uploaded PDF, DOCX and plain text documents into
// text the analysis can work on.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/baditaflorin/go_ngram_similarity/internal/ports"
)

// Supported content types.
const (
	MIMEPDF   = "application/pdf"
	MIMEDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText  = "text/plain"
	mimeOctet = "application/octet-stream"
)

var (
	// ErrUnsupportedType is returned for content types other than PDF, DOCX
	// and plain text.
	ErrUnsupportedType = errors.New("unsupported file type (only PDF, DOCX and TXT)")
	// ErrUnreadable is returned when a supported document cannot be decoded.
	ErrUnreadable = errors.New("document could not be read")
)

// Extractor implements ports.TextExtractor.
type Extractor struct {
	logger ports.Logger
}

var _ ports.TextExtractor = (*Extractor)(nil)

// NewExtractor creates a new extractor.
func NewExtractor(logger ports.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the text of upload. The declared content type wins; an
// empty or generic one is replaced by the type sniffed from the data.
func (e *Extractor) Extract(ctx context.Context, upload ports.Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	contentType := ContentType(upload.ContentType, upload.Data)
	e.logger.Debug("Extracting document text",
		"filename", upload.Filename,
		"content_type", contentType,
		"size", len(upload.Data))

	var (
		text string
		err  error
	)
	switch contentType {
	case MIMEPDF:
		text, err = parsePDF(upload.Data)
	case MIMEDOCX:
		text, err = parseDOCX(upload.Data)
	case MIMEText:
		text, err = decodeText(upload.Data)
	default:
		return "", fmt.Errorf("%s: %w", contentType, ErrUnsupportedType)
	}
	if err != nil {
		e.logger.Warn("Document extraction failed",
			"filename", upload.Filename,
			"content_type", contentType,
			"error", err)
		return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, upload.Filename, err)
	}
	return text, nil
}

// ContentType returns the bare media type of declared, falling back to the
// type detected from data when declared is empty or application/octet-stream.
func ContentType(declared string, data []byte) string {
	value := mediaType(declared)
	if value == "" || value == mimeOctet {
		value = mediaType(mimetype.Detect(data).String())
	}
	return value
}

func mediaType(raw string) string {
	value, _, _ := strings.Cut(raw, ";")
	return strings.ToLower(strings.TrimSpace(value))
}
