package ports

import "context"

// Upload is one submitted document before text extraction.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// TextExtractor turns uploaded document bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, upload Upload) (string, error)
}
