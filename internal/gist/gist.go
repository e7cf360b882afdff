// Package gist synchronizes the full snapshot against a Gist-style
// versioned blob API: one JSON document stored as a single fixed-name
// file, addressed by an opaque blob id and a bearer token. Works
// against api.github.com or this repo's self-hosted /api endpoint.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kidandcat/kanban/internal/model"
)

const (
	// Filename is the fixed name of the snapshot file inside a blob.
	Filename    = "kanban-board-data.json"
	description = "Kanban - Project Data Sync"

	defaultBaseURL = "https://api.github.com"
)

// RemoteError is a non-success transport response.
type RemoteError struct {
	Status     int
	StatusText string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote API error: %d %s", e.Status, e.StatusText)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type blobFile struct {
	Content string `json:"content"`
}

type blobPayload struct {
	Description string              `json:"description"`
	Public      *bool               `json:"public,omitempty"`
	Files       map[string]blobFile `json:"files"`
}

type blobResponse struct {
	ID    string              `json:"id"`
	Files map[string]blobFile `json:"files"`
}

// Save stores the snapshot remotely. With no existingID it creates a
// new blob (public is a create-only attribute) and returns the new id;
// otherwise it updates the blob content in place and returns the same
// id. A failed save leaves local state untouched.
func (c *Client) Save(ctx context.Context, token string, snap model.Snapshot, existingID string, public bool) (string, error) {
	content, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	payload := blobPayload{
		Description: description,
		Files:       map[string]blobFile{Filename: {Content: string(content)}},
	}
	url := c.BaseURL + "/gists"
	method := http.MethodPost
	if existingID != "" {
		// Visibility cannot change after creation, so PATCH never
		// carries the public flag.
		url += "/" + existingID
		method = http.MethodPatch
	} else {
		payload.Public = &public
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.setHeaders(req, token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("save blob: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RemoteError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
	}

	var result blobResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return result.ID, nil
}

// Load fetches the blob and parses the fixed-name file as a snapshot.
func (c *Client) Load(ctx context.Context, token, id string) (model.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/gists/"+id, nil)
	if err != nil {
		return model.Snapshot{}, err
	}
	c.setHeaders(req, token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load blob: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Snapshot{}, &RemoteError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
	}

	var result blobResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode response: %w", err)
	}
	file, ok := result.Files[Filename]
	if !ok || file.Content == "" {
		return model.Snapshot{}, fmt.Errorf("%w: %s not found in blob", model.ErrFormat, Filename)
	}
	return model.ParseSnapshot([]byte(file.Content))
}

func (c *Client) setHeaders(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "token "+token)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}
