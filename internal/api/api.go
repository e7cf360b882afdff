// Package api exposes the self-hosted versioned-blob endpoint. The
// wire shape mirrors the GitHub Gist API so the client sync adapter
// works against either service unchanged.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/kidandcat/kanban/internal/config"
	"github.com/kidandcat/kanban/internal/db"
)

func RegisterRoutes(mux *http.ServeMux, cfg config.Config) {
	mux.HandleFunc("POST /api/gists", requireToken(cfg, handleCreateBlob))
	mux.HandleFunc("PATCH /api/gists/{id}", requireToken(cfg, handleUpdateBlob))
	mux.HandleFunc("GET /api/gists/{id}", requireToken(cfg, handleGetBlob))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// requireToken checks the bearer token against the configured sync
// token. Both "token x" and "Bearer x" schemes are accepted.
func requireToken(cfg config.Config, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(header, "token "), "Bearer "))
		if cfg.SyncToken == "" || token != cfg.SyncToken {
			writeError(w, http.StatusUnauthorized, "Bad credentials")
			return
		}
		next(w, r)
	}
}

type filePayload struct {
	Content string `json:"content"`
}

type blobRequest struct {
	Description string                 `json:"description"`
	Public      bool                   `json:"public"`
	Files       map[string]filePayload `json:"files"`
}

// firstFile returns the single file the snapshot contract carries.
func (b blobRequest) firstFile() (name string, content string, ok bool) {
	for name, f := range b.Files {
		return name, f.Content, true
	}
	return "", "", false
}

func blobResponse(b *db.Blob) map[string]any {
	return map[string]any{
		"id":          b.ID,
		"description": b.Description,
		"public":      b.Public,
		"files": map[string]any{
			b.Filename: map[string]any{"content": b.Content},
		},
		"created_at": b.CreatedAt,
		"updated_at": b.UpdatedAt,
	}
}

func handleCreateBlob(w http.ResponseWriter, r *http.Request) {
	var req blobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid JSON")
		return
	}
	name, content, ok := req.firstFile()
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "files required")
		return
	}

	b, err := db.CreateBlob(req.Description, name, content, req.Public)
	if err != nil {
		log.WithError(err).Error("create blob")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, blobResponse(b))
}

func handleUpdateBlob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req blobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid JSON")
		return
	}
	name, content, ok := req.firstFile()
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "files required")
		return
	}

	// Visibility is a create-only attribute; a public flag on update
	// is ignored.
	b, err := db.UpdateBlobContent(id, req.Description, name, content)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	if err != nil {
		log.WithError(err).Error("update blob")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, blobResponse(b))
}

func handleGetBlob(w http.ResponseWriter, r *http.Request) {
	b, err := db.GetBlob(r.PathValue("id"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	if err != nil {
		log.WithError(err).Error("get blob")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, blobResponse(b))
}
