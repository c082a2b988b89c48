package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, owner_id, title, category, file_url, extracted_text, expiry_date, original_filename, size_bytes, mime_type, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, owner_id, title, category, file_url, extracted_text, expiry_date, original_filename, size_bytes, mime_type, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.OwnerID,
		doc.Title,
		doc.Category,
		doc.FileURL,
		doc.ExtractedText,
		nullableTime(doc.ExpiryDate),
		doc.OriginalFilename,
		doc.SizeBytes,
		doc.MimeType,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM documents
WHERE id = $1
LIMIT 1`, documentColumns)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// ListByOwner returns the owner's documents, newest first. Category and
// search filters are appended only when set.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, filter ListFilter) ([]Document, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `
SELECT %s
FROM documents
WHERE owner_id = $1`, documentColumns)
	args := []any{ownerID}
	if filter.Category != "" {
		args = append(args, filter.Category)
		fmt.Fprintf(&sb, " AND category = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		fmt.Fprintf(&sb, " AND (title ILIKE $%d OR extracted_text ILIKE $%d)", len(args), len(args))
	}
	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, doc Document) error {
	const query = `
UPDATE documents
SET title = $2, category = $3, updated_at = now()
WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, doc.ID, doc.Title, doc.Category)
	return err
}

func (r *PGRepo) UpdateExtraction(ctx context.Context, id, extractedText, category string, updatedAt time.Time) error {
	const query = `
UPDATE documents
SET extracted_text = $2, category = $3, updated_at = $4
WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, extractedText, category, updatedAt)
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row *sql.Row) (Document, error) {
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var expiry sql.NullTime
	err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Title,
		&doc.Category,
		&doc.FileURL,
		&doc.ExtractedText,
		&expiry,
		&doc.OriginalFilename,
		&doc.SizeBytes,
		&doc.MimeType,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return Document{}, err
	}
	if expiry.Valid {
		t := expiry.Time
		doc.ExpiryDate = &t
	}
	return doc, nil
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}

var _ Repo = (*PGRepo)(nil)
