package documents

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, engine *fakeOCR) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(engine)
	handler := NewHandler(svc)

	r := gin.New()
	group := r.Group("/api/document")
	group.Use(func(c *gin.Context) {
		c.Set("userId", "owner-1")
		c.Next()
	})
	handler.RegisterRoutes(group)
	return r, svc
}

func multipartUpload(t *testing.T, fields map[string]string, fileName, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileName != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, &fakeOCR{text: "invoice for services"})

	body, contentType := multipartUpload(t, map[string]string{"title": "My bill"}, "scan.png", "image/png", "png-bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/document/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Doc     struct {
			ID              string `json:"id"`
			Title           string `json:"title"`
			Category        string `json:"category"`
			FileURL         string `json:"fileUrl"`
			OCRProcessed    bool   `json:"ocrProcessed"`
			AutoCategorized bool   `json:"autoCategorized"`
		} `json:"doc"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "Document uploaded successfully" {
		t.Fatalf("message = %q", resp.Message)
	}
	if resp.Doc.Title != "My bill" || resp.Doc.Category != "Invoice" {
		t.Fatalf("doc = %+v", resp.Doc)
	}
	if !resp.Doc.OCRProcessed || !resp.Doc.AutoCategorized {
		t.Fatalf("flags = %+v", resp.Doc)
	}
	if resp.Doc.FileURL == "" {
		t.Fatal("missing fileUrl")
	}
}

func TestUploadEndpointRejectsMissingFile(t *testing.T) {
	router, _ := newTestRouter(t, &fakeOCR{})

	body, contentType := multipartUpload(t, map[string]string{"title": "no file"}, "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/document/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "validation_error") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestUploadEndpointRejectsBadExtension(t *testing.T) {
	router, _ := newTestRouter(t, &fakeOCR{})

	body, contentType := multipartUpload(t, nil, "notes.txt", "text/plain", "hello")
	req := httptest.NewRequest(http.MethodPost, "/api/document/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestUploadEndpointReportsOversizeBody(t *testing.T) {
	router, _ := newTestRouter(t, &fakeOCR{})

	huge := strings.Repeat("a", MaxUploadSize+1)
	body, contentType := multipartUpload(t, nil, "scan.png", "image/png", huge)
	req := httptest.NewRequest(http.MethodPost, "/api/document/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "file size exceeds") {
		t.Fatalf("expected a size message, body = %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "no file uploaded") {
		t.Fatal("oversize body must not be reported as a missing file")
	}
}

func TestUploadEndpointRejectsBadExpiry(t *testing.T) {
	router, _ := newTestRouter(t, &fakeOCR{})

	body, contentType := multipartUpload(t, map[string]string{"expiryDate": "someday"}, "scan.png", "image/png", "x")
	req := httptest.NewRequest(http.MethodPost, "/api/document/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestGetEndpointOwnership(t *testing.T) {
	router, svc := newTestRouter(t, &fakeOCR{})

	other, err := svc.Upload(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "owner-2", pdfBlob("x"), UploadInput{})
	if err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/document/"+other.Doc.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_authorized") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestGetEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter(t, &fakeOCR{})

	req := httptest.NewRequest(http.MethodGet, "/api/document/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateEndpoint(t *testing.T) {
	router, svc := newTestRouter(t, &fakeOCR{})

	seeded, err := svc.Upload(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "owner-1", pdfBlob("x"), UploadInput{Title: "Old"})
	if err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	payload := `{"title":"Renamed","category":"Taxes"}`
	req := httptest.NewRequest(http.MethodPut, "/api/document/"+seeded.Doc.ID, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var doc DocumentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Title != "Renamed" || doc.Category != "Taxes" {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestDeleteEndpoint(t *testing.T) {
	router, svc := newTestRouter(t, &fakeOCR{})

	seeded, err := svc.Upload(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "owner-1", pdfBlob("x"), UploadInput{})
	if err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/document/"+seeded.Doc.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/document/"+seeded.Doc.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status after delete = %d, want 404", rec.Code)
	}
}

func TestReprocessEndpointUsesDeleteVerb(t *testing.T) {
	engine := &fakeOCR{text: "original"}
	router, svc := newTestRouter(t, engine)

	seeded, err := svc.Upload(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "owner-1", imageBlob("x"), UploadInput{})
	if err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	engine.text = "licence renewal form"
	req := httptest.NewRequest(http.MethodDelete, "/api/document/"+seeded.Doc.ID+"/reprocess", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		NewCategory   string `json:"newCategory"`
		ExtractedText string `json:"extractedText"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.NewCategory != "Licence" {
		t.Fatalf("newCategory = %q", resp.NewCategory)
	}
	if resp.ExtractedText != "licence renewal form" {
		t.Fatalf("extractedText = %q", resp.ExtractedText)
	}
}

func TestReprocessEndpointRejectsNonImage(t *testing.T) {
	router, svc := newTestRouter(t, &fakeOCR{})

	seeded, err := svc.Upload(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "owner-1", pdfBlob("x"), UploadInput{})
	if err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/document/"+seeded.Doc.ID+"/reprocess", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestDownloadEndpoint(t *testing.T) {
	router, svc := newTestRouter(t, &fakeOCR{})

	seeded, err := svc.Upload(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "owner-1", pdfBlob("binary pdf body"), UploadInput{})
	if err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/document/"+seeded.Doc.ID+"/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "binary pdf body" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "report.pdf") {
		t.Fatalf("content-disposition = %q", got)
	}
}

func TestListEndpoint(t *testing.T) {
	router, svc := newTestRouter(t, &fakeOCR{})
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	if _, err := svc.Upload(ctx, "owner-1", pdfBlob("a"), UploadInput{Title: "Lease", Category: "Housing"}); err != nil {
		t.Fatalf("seed upload: %v", err)
	}
	if _, err := svc.Upload(ctx, "owner-1", pdfBlob("b"), UploadInput{Title: "Warranty"}); err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/document?category=Housing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var docs []DocumentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "Lease" {
		t.Fatalf("docs = %+v", docs)
	}
}
