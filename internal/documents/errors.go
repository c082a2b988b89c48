package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrNotOwner indicates the caller does not own the document.
	ErrNotOwner = errors.New("not authorized")

	// ErrMissingFile indicates an upload without a file payload.
	ErrMissingFile = errors.New("no file uploaded")

	// ErrNotImage indicates an OCR request against a non-image document.
	ErrNotImage = errors.New("ocr is only available for image files")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
