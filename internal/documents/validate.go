package documents

import (
	"fmt"
	"path"
	"strings"
)

// MaxUploadSize bounds the accepted file payload.
const MaxUploadSize = 10 << 20 // 10MB

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg":         {},
	"image/jpg":          {},
	"image/png":          {},
	"image/gif":          {},
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// ValidateUpload checks the declared file name, MIME type, and size against
// the upload allow-lists. Both the extension and the MIME type must pass.
// Runs before any storage or OCR work.
func ValidateUpload(fileName, mimeType string, size int64) error {
	ext := strings.ToLower(path.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: file type %q is not allowed", ErrInvalidInput, ext)
	}
	if _, ok := allowedMimeTypes[strings.ToLower(strings.TrimSpace(mimeType))]; !ok {
		return fmt.Errorf("%w: mime type %q is not allowed", ErrInvalidInput, mimeType)
	}
	if size <= 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if size > MaxUploadSize {
		return fmt.Errorf("%w: file size exceeds the %d byte limit", ErrInvalidInput, MaxUploadSize)
	}
	return nil
}

func isImageMime(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(mimeType), "image/")
}
