// Package storage persists the entity store and UI settings to a
// browser-storage style key-value substrate, and handles the backup
// file format. go-app's LocalStorage satisfies KV directly.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kidandcat/kanban/internal/model"
)

// KV is the subset of go-app's BrowserStorage the adapter needs.
// Values are JSON-encoded by the substrate.
type KV interface {
	Set(k string, v any) error
	Get(k string, v any) error
	Del(k string)
}

const (
	keyProjects = "kanban_projects"
	keyUsers    = "kanban_users"
	keyIssues   = "kanban_issues"
	keyTheme    = "kanban_theme"
	keyToken    = "kanban_sync_token"
	keyBlobID   = "kanban_blob_id"
	keyEndpoint = "kanban_sync_endpoint"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Adapter struct {
	kv KV
}

func New(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// State is everything hydrated at startup. An empty Endpoint means the
// default remote service.
type State struct {
	Snapshot model.Snapshot
	Theme    string
	Token    string
	BlobID   string
	Endpoint string
}

// LoadState reads every durable key, falling back silently to the
// built-in defaults on an absent or unreadable value. Read failures
// are never surfaced.
func (a *Adapter) LoadState() State {
	def := model.DefaultSnapshot()
	st := State{Theme: ThemeLight}

	var projects []model.Project
	if err := a.kv.Get(keyProjects, &projects); err != nil || projects == nil {
		projects = def.Projects
	}
	var users []model.User
	if err := a.kv.Get(keyUsers, &users); err != nil || users == nil {
		users = def.Users
	}
	var issues []model.Issue
	if err := a.kv.Get(keyIssues, &issues); err != nil || issues == nil {
		issues = def.Issues
	}
	st.Snapshot = model.Snapshot{Projects: projects, Users: users, Issues: issues}

	var theme string
	if err := a.kv.Get(keyTheme, &theme); err == nil && theme == ThemeDark {
		st.Theme = ThemeDark
	}
	a.kv.Get(keyToken, &st.Token)
	a.kv.Get(keyBlobID, &st.BlobID)
	a.kv.Get(keyEndpoint, &st.Endpoint)
	return st
}

func (a *Adapter) SaveProjects(projects []model.Project) error {
	return a.kv.Set(keyProjects, projects)
}

func (a *Adapter) SaveUsers(users []model.User) error {
	return a.kv.Set(keyUsers, users)
}

func (a *Adapter) SaveIssues(issues []model.Issue) error {
	return a.kv.Set(keyIssues, issues)
}

func (a *Adapter) SaveTheme(theme string) error {
	return a.kv.Set(keyTheme, theme)
}

func (a *Adapter) SaveToken(token string) error {
	return a.kv.Set(keyToken, token)
}

func (a *Adapter) SaveBlobID(id string) error {
	return a.kv.Set(keyBlobID, id)
}

func (a *Adapter) SaveEndpoint(endpoint string) error {
	return a.kv.Set(keyEndpoint, endpoint)
}

// Export serializes a snapshot for download and returns it with the
// dated backup filename.
func Export(snap model.Snapshot) ([]byte, string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("export: %w", err)
	}
	name := fmt.Sprintf("kanban-backup-%s.json", time.Now().Format("2006-01-02"))
	return data, name, nil
}

// Import validates a backup document. The caller performs the atomic
// swap; on error nothing has changed.
func Import(data []byte) (model.Snapshot, error) {
	return model.ParseSnapshot(data)
}
