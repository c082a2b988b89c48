package util

import (
	"errors"
	"strings"
)

// ErrBadFileName rejects names that are empty or smell like path traversal.
var ErrBadFileName = errors.New("invalid file name")

var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName normalizes an uploaded file name before it becomes part
// of a storage key: separators are flattened, traversal sequences rejected.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrBadFileName
	}
	s := pathSeparators.Replace(strings.TrimSpace(name))
	if s == "" {
		return "", ErrBadFileName
	}
	return s, nil
}
