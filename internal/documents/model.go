package documents

import (
	"io"
	"time"
)

// Document represents one uploaded file and its derived metadata.
type Document struct {
	ID               string
	OwnerID          string
	Title            string
	Category         string
	FileURL          string
	ExtractedText    string
	ExpiryDate       *time.Time
	OriginalFilename string
	SizeBytes        int64
	MimeType         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Blob is the uploaded file as seen by the ingestion workflow. The HTTP
// boundary builds exactly one Blob per request so business logic never
// branches on how the payload arrived.
type Blob struct {
	FileName string
	MimeType string
	Size     int64
	Content  io.Reader
}

// IsImage reports whether the blob is OCR-eligible.
func (b Blob) IsImage() bool {
	return isImageMime(b.MimeType)
}
