package object

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"vault-backend/internal/shared/util"
)

// Stored describes a blob persisted in object storage.
type Stored struct {
	Key      string
	URL      string
	MimeType string
	Size     int64
}

// Store defines the contract for saving, retrieving, and deleting binary objects.
// Save places the blob under the given folder and returns a retrievable URL.
type Store interface {
	Save(ctx context.Context, folder string, fileName string, r io.Reader) (Stored, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}

// NewObjectName derives a collision-free storage name from an uploaded file name.
// The extension and any remaining dots are dropped so the name survives the
// URL-to-key round trip used by delete and download.
func NewObjectName(fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	base := strings.TrimSuffix(sanitized, path.Ext(sanitized))
	base = strings.ReplaceAll(base, ".", "_")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%s", randomID(), base), nil
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
