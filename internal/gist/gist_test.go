package gist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/kidandcat/kanban/internal/model"
)

func testSnapshot(title string) model.Snapshot {
	return model.Snapshot{
		Projects: []model.Project{{ID: "p-1", Key: "PRO", Name: "Project"}},
		Users:    []model.User{},
		Issues: []model.Issue{{
			ID: "i-1", ProjectID: "p-1", Key: "PRO-100", Title: title,
			Status: model.StatusTodo, Priority: model.PriorityMedium,
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Comments:  []model.Comment{},
		}},
	}
}

// fakeBlobServer implements just enough of the Gist wire contract.
type fakeBlobServer struct {
	content     map[string]string
	patchBodies []map[string]json.RawMessage
	lastAuth    string
}

func (f *fakeBlobServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /gists", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		var body map[string]json.RawMessage
		json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["public"]; !ok {
			t.Error("create must carry the public flag")
		}
		var files map[string]struct {
			Content string `json:"content"`
		}
		json.Unmarshal(body["files"], &files)
		f.content["blob-1"] = files[Filename].Content
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": "blob-1"})
	})

	mux.HandleFunc("PATCH /gists/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		id := r.PathValue("id")
		if _, ok := f.content[id]; !ok {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		var body map[string]json.RawMessage
		json.NewDecoder(r.Body).Decode(&body)
		f.patchBodies = append(f.patchBodies, body)
		var files map[string]struct {
			Content string `json:"content"`
		}
		json.Unmarshal(body["files"], &files)
		f.content[id] = files[Filename].Content
		json.NewEncoder(w).Encode(map[string]any{"id": id})
	})

	mux.HandleFunc("GET /gists/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		content, ok := f.content[r.PathValue("id")]
		if !ok {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":    r.PathValue("id"),
			"files": map[string]any{Filename: map[string]any{"content": content}},
		})
	})

	return mux
}

func TestClient_SaveThenUpdateThenLoad(t *testing.T) {
	fake := &fakeBlobServer{content: map[string]string{}}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	// First save creates a new blob.
	id, err := c.Save(ctx, "tok", testSnapshot("v1"), "", false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("expected a new blob id")
	}
	if fake.lastAuth != "token tok" {
		t.Errorf("auth header = %q", fake.lastAuth)
	}

	// Second save updates in place; the visibility flag is ignored and
	// the id is stable.
	id2, err := c.Save(ctx, "tok", testSnapshot("v2"), id, true)
	if err != nil {
		t.Fatalf("Save update: %v", err)
	}
	if id2 != id {
		t.Errorf("update returned %q, want %q", id2, id)
	}
	if len(fake.patchBodies) != 1 {
		t.Fatal("expected exactly one PATCH")
	}
	if _, ok := fake.patchBodies[0]["public"]; ok {
		t.Error("PATCH must not carry the public flag")
	}

	// Load returns what the update stored.
	got, err := c.Load(ctx, "tok", id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, testSnapshot("v2")) {
		t.Errorf("loaded snapshot mismatch: %+v", got)
	}
}

func TestClient_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Load(context.Background(), "bad", "blob-1")

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remoteErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", remoteErr.Status)
	}

	if _, err := c.Save(context.Background(), "bad", testSnapshot("x"), "", false); !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError on save, got %v", err)
	}
}

func TestClient_MissingFileIsFormatError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "blob-1",
			"files": map[string]any{"unrelated.txt": map[string]any{"content": "hi"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Load(context.Background(), "tok", "blob-1")
	if !errors.Is(err, model.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("")
	if c.BaseURL != "https://api.github.com" {
		t.Errorf("base url = %q", c.BaseURL)
	}
}
