package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	Title            string     `json:"title"`
	Category         string     `json:"category"`
	FileURL          string     `json:"fileUrl"`
	ExtractedText    string     `json:"extractedText"`
	ExpiryDate       *time.Time `json:"expiryDate"`
	OriginalFileName string     `json:"originalFileName"`
	FileSize         int64      `json:"fileSize"`
	MimeType         string     `json:"mimeType"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// UploadedDocumentResponse augments the document with ingestion outcome flags.
type UploadedDocumentResponse struct {
	DocumentResponse
	OCRProcessed    bool `json:"ocrProcessed"`
	AutoCategorized bool `json:"autoCategorized"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:               doc.ID,
		UserID:           doc.OwnerID,
		Title:            doc.Title,
		Category:         doc.Category,
		FileURL:          doc.FileURL,
		ExtractedText:    doc.ExtractedText,
		ExpiryDate:       doc.ExpiryDate,
		OriginalFileName: doc.OriginalFilename,
		FileSize:         doc.SizeBytes,
		MimeType:         doc.MimeType,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}

func toResponses(docs []Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	return out
}
