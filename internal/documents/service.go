package documents

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"vault-backend/internal/categorize"
	"vault-backend/internal/ocr"
	"vault-backend/internal/shared/storage/object"
	"vault-backend/internal/shared/telemetry"
)

// uploadFolder prefixes every stored object so vault blobs are grouped
// inside the bucket or base directory.
const uploadFolder = "vault"

// Service contains document business logic.
type Service struct {
	Repo  Repo
	Store object.Store
	OCR   ocr.Engine
}

// NewService constructs a Service.
func NewService(repo Repo, store object.Store, engine ocr.Engine) *Service {
	return &Service{Repo: repo, Store: store, OCR: engine}
}

// UploadInput carries the caller-supplied metadata alongside the blob.
type UploadInput struct {
	Title      string
	Category   string
	ExpiryDate *time.Time
}

// UploadResult reports what the ingestion workflow did with the blob.
type UploadResult struct {
	Doc             Document
	OCRProcessed    bool
	AutoCategorized bool
}

// ReprocessResult reports the outcome of a forced OCR re-run.
type ReprocessResult struct {
	Doc           Document
	ExtractedText string
	NewCategory   string
}

// Upload validates the blob, persists it to object storage, runs OCR for
// images, resolves the category, and records the metadata. An OCR failure
// is logged and tolerated; the document is still created without text.
func (s *Service) Upload(ctx context.Context, ownerID string, blob Blob, input UploadInput) (UploadResult, error) {
	if blob.Content == nil || strings.TrimSpace(blob.FileName) == "" {
		return UploadResult{}, ErrMissingFile
	}
	if err := ValidateUpload(blob.FileName, blob.MimeType, blob.Size); err != nil {
		return UploadResult{}, err
	}

	stored, err := s.Store.Save(ctx, uploadFolder, blob.FileName, blob.Content)
	if err != nil {
		return UploadResult{}, fmt.Errorf("store file: %w", err)
	}

	extractedText := ""
	ocrProcessed := false
	if blob.IsImage() {
		text, err := s.OCR.ExtractText(ctx, stored.URL)
		if err != nil {
			telemetry.Warn("ocr extraction failed", map[string]any{
				"fileUrl": stored.URL,
				"err":     err.Error(),
			})
		} else if strings.TrimSpace(text) != "" {
			extractedText = text
			ocrProcessed = true
		}
	}

	category, autoCategorized := ResolveCategory(input.Category, extractedText)

	doc := Document{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		Title:            resolveTitle(input.Title, blob.FileName),
		Category:         category,
		FileURL:          stored.URL,
		ExtractedText:    extractedText,
		ExpiryDate:       input.ExpiryDate,
		OriginalFilename: blob.FileName,
		SizeBytes:        blob.Size,
		MimeType:         blob.MimeType,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return UploadResult{}, fmt.Errorf("persist document: %w", err)
	}
	return UploadResult{Doc: doc, OCRProcessed: ocrProcessed, AutoCategorized: autoCategorized}, nil
}

// Reprocess re-runs OCR on an image document and recategorizes it from the
// fresh text, overwriting whatever category it had before. Unlike upload,
// an OCR failure here fails the request.
func (s *Service) Reprocess(ctx context.Context, ownerID, documentID string) (ReprocessResult, error) {
	doc, err := s.getOwned(ctx, ownerID, documentID)
	if err != nil {
		return ReprocessResult{}, err
	}
	if !isImageMime(doc.MimeType) {
		return ReprocessResult{}, ErrNotImage
	}

	text, err := s.OCR.ExtractText(ctx, doc.FileURL)
	if err != nil {
		return ReprocessResult{}, fmt.Errorf("extract text: %w", err)
	}
	category := categorize.Categorize(text)

	now := time.Now().UTC()
	if err := s.Repo.UpdateExtraction(ctx, doc.ID, text, category, now); err != nil {
		return ReprocessResult{}, fmt.Errorf("persist extraction: %w", err)
	}
	doc.ExtractedText = text
	doc.Category = category
	doc.UpdatedAt = now
	return ReprocessResult{Doc: doc, ExtractedText: text, NewCategory: category}, nil
}

// List returns the owner's documents, newest first. Category "all" (or
// empty) means no category filter; a search term matches title or
// extracted text case-insensitively.
func (s *Service) List(ctx context.Context, ownerID, category, search string) ([]Document, error) {
	filter := ListFilter{Search: strings.TrimSpace(search)}
	category = strings.TrimSpace(category)
	if category != "" && !strings.EqualFold(category, "all") {
		filter.Category = category
	}
	return s.Repo.ListByOwner(ctx, ownerID, filter)
}

// Get loads a single document owned by the caller.
func (s *Service) Get(ctx context.Context, ownerID, documentID string) (Document, error) {
	return s.getOwned(ctx, ownerID, documentID)
}

// UpdateInput carries the caller-editable metadata fields. Nil means
// "leave unchanged".
type UpdateInput struct {
	Title    *string
	Category *string
}

// Update edits document metadata. Only title and category are editable.
func (s *Service) Update(ctx context.Context, ownerID, documentID string, input UpdateInput) (Document, error) {
	doc, err := s.getOwned(ctx, ownerID, documentID)
	if err != nil {
		return Document{}, err
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return Document{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		doc.Title = *input.Title
	}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return Document{}, fmt.Errorf("%w: category cannot be empty", ErrInvalidInput)
		}
		doc.Category = *input.Category
	}
	doc.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("persist document: %w", err)
	}
	return doc, nil
}

// Delete removes the metadata record and then the stored blob. A blob
// deletion failure is logged but does not fail the request; the record
// is already gone.
func (s *Service) Delete(ctx context.Context, ownerID, documentID string) error {
	doc, err := s.getOwned(ctx, ownerID, documentID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if key := storageKeyFromURL(doc.FileURL); key != "" {
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Warn("blob delete failed", map[string]any{
				"documentId": doc.ID,
				"storageKey": key,
				"err":        err.Error(),
			})
		}
	}
	return nil
}

// Download opens the stored blob for streaming back to the owner.
// The caller must close the reader.
func (s *Service) Download(ctx context.Context, ownerID, documentID string) (Document, io.ReadCloser, error) {
	doc, err := s.getOwned(ctx, ownerID, documentID)
	if err != nil {
		return Document{}, nil, err
	}
	key := storageKeyFromURL(doc.FileURL)
	if key == "" {
		return Document{}, nil, fmt.Errorf("no storage key for document %s", doc.ID)
	}
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return Document{}, nil, fmt.Errorf("open blob: %w", err)
	}
	return doc, rc, nil
}

func (s *Service) getOwned(ctx context.Context, ownerID, documentID string) (Document, error) {
	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil {
		return Document{}, err
	}
	if doc.OwnerID != ownerID {
		return Document{}, ErrNotOwner
	}
	return doc, nil
}

// ResolveCategory decides the final category for a new document. A
// caller-supplied category always wins; otherwise the category is inferred
// from the extracted text when there is any, falling back to the default.
// The second return reports whether the inference actually ran and
// produced something other than the default.
func ResolveCategory(requested, extractedText string) (string, bool) {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		return requested, false
	}
	if strings.TrimSpace(extractedText) == "" {
		return categorize.DefaultCategory, false
	}
	inferred := categorize.Categorize(extractedText)
	return inferred, inferred != categorize.DefaultCategory
}

func resolveTitle(title, fileName string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	if f := strings.TrimSpace(fileName); f != "" {
		return f
	}
	return "Untitled Document"
}

// storageKeyFromURL recovers the storage key from a retrievable URL: the
// last path segment minus any extension, under the upload folder. Object
// names contain no dots, so stripping the extension is a no-op for keys
// we minted and a safety net for anything else.
func storageKeyFromURL(fileURL string) string {
	fileURL = strings.TrimSpace(fileURL)
	if fileURL == "" {
		return ""
	}
	segment := fileURL
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if i := strings.IndexAny(segment, "?#"); i >= 0 {
		segment = segment[:i]
	}
	segment = strings.TrimSuffix(segment, path.Ext(segment))
	if segment == "" {
		return ""
	}
	return uploadFolder + "/" + segment
}
