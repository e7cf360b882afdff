package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Blob struct {
	ID          string
	Description string
	Public      bool
	Filename    string
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateBlob stores a new blob. Visibility is fixed here and never
// changes afterwards.
func CreateBlob(description, filename, content string, public bool) (*Blob, error) {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err := DB.Exec(
		"INSERT INTO blobs (id, description, public, filename, content) VALUES (?, ?, ?, ?, ?)",
		id, description, public, filename, content,
	)
	if err != nil {
		return nil, fmt.Errorf("insert blob: %w", err)
	}
	return GetBlob(id)
}

// UpdateBlobContent replaces the stored file in place, leaving the
// visibility untouched.
func UpdateBlobContent(id, description, filename, content string) (*Blob, error) {
	res, err := DB.Exec(
		"UPDATE blobs SET description = ?, filename = ?, content = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		description, filename, content, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update blob: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, sql.ErrNoRows
	}
	return GetBlob(id)
}

func GetBlob(id string) (*Blob, error) {
	var b Blob
	err := DB.QueryRow(
		"SELECT id, description, public, filename, content, created_at, updated_at FROM blobs WHERE id = ?", id,
	).Scan(&b.ID, &b.Description, &b.Public, &b.Filename, &b.Content, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
