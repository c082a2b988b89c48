package documents

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vault-backend/internal/shared/server/middleware"
	"vault-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the document routes. All of them require an
// authenticated caller.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.GET("/:id/download", h.download)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.remove)
	// DELETE is deliberate here: reprocess discards the previous extraction
	// before writing the new one, and existing clients depend on the verb.
	rg.DELETE("/:id/reprocess", h.reprocess)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.Error(c, http.StatusBadRequest, "validation_error",
				fmt.Sprintf("file size exceeds the %d byte limit", MaxUploadSize), nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "no file uploaded", nil)
		return
	}

	expiry, err := parseExpiry(c.PostForm("expiryDate"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid expiryDate", err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
		return
	}
	defer file.Close()

	blob := Blob{
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Content:  file,
	}
	input := UploadInput{
		Title:      c.PostForm("title"),
		Category:   c.PostForm("category"),
		ExpiryDate: expiry,
	}

	result, err := h.Svc.Upload(c.Request.Context(), userID, blob, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFile):
			respond.Error(c, http.StatusBadRequest, "validation_error", "no file uploaded", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload document", err.Error())
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"message": "Document uploaded successfully",
		"doc": UploadedDocumentResponse{
			DocumentResponse: toResponse(result.Doc),
			OCRProcessed:     result.OCRProcessed,
			AutoCategorized:  result.AutoCategorized,
		},
	})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	docs, err := h.Svc.List(c.Request.Context(), userID, c.Query("category"), c.Query("search"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(docs))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	doc, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to load document")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(doc))
}

type updateRequest struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	doc, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), UpdateInput{
		Title:    req.Title,
		Category: req.Category,
	})
	if err != nil {
		h.fail(c, err, "failed to update document")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(doc))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.fail(c, err, "failed to delete document")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

func (h *Handler) reprocess(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	result, err := h.Svc.Reprocess(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotImage) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "ocr is only available for image files", nil)
			return
		}
		h.fail(c, err, "failed to reprocess document")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"message":       "Document reprocessed successfully",
		"doc":           toResponse(result.Doc),
		"extractedText": result.ExtractedText,
		"newCategory":   result.NewCategory,
	})
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	doc, rc, err := h.Svc.Download(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to download document")
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename))
	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.MimeType, rc, nil)
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, ErrNotOwner):
		respond.Error(c, http.StatusForbidden, "not_authorized", "not authorized to access this document", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, err.Error())
	}
}

// parseExpiry accepts RFC 3339 or a bare calendar date.
func parseExpiry(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("expected RFC 3339 or YYYY-MM-DD, got %q", raw)
	}
	return &t, nil
}
