package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestProjectKeyFrom(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Website", "WEB"},
		{"ab", "AB"},
		{"core platform", "COR"},
		{"Ñandú", "ÑAN"},
		{"日本語プロジェクト", "日本語"},
	}
	for _, c := range cases {
		if got := ProjectKeyFrom(c.name); got != c.want {
			t.Errorf("ProjectKeyFrom(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestNewIssueKey_PrefixedByProjectKey(t *testing.T) {
	for range 20 {
		key := NewIssueKey("PROJ")
		if !strings.HasPrefix(key, "PROJ-") {
			t.Fatalf("key %q does not carry the project prefix", key)
		}
		if len(key) <= len("PROJ-") {
			t.Fatalf("key %q has no numeric suffix", key)
		}
	}
}

func TestNewID_OpaqueAndDistinct(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		id := NewID("i")
		if !strings.HasPrefix(id, "i-") {
			t.Fatalf("id %q missing prefix", id)
		}
		if seen[id] {
			t.Fatalf("id %q generated twice", id)
		}
		seen[id] = true
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusInProgress.Label(); got != "IN PROGRESS" {
		t.Errorf("Label() = %q, want %q", got, "IN PROGRESS")
	}
}

func TestParseSnapshot(t *testing.T) {
	valid := Snapshot{
		Projects: []Project{{ID: "p-1", Key: "PRO", Name: "Project"}},
		Users:    []User{{ID: "u-1", Name: "Ana"}},
		Issues: []Issue{{
			ID: "i-1", ProjectID: "p-1", Key: "PRO-100", Title: "First",
			Status: StatusTodo, Priority: PriorityMedium,
			CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			Comments:  []Comment{},
		}},
	}

	t.Run("round trip", func(t *testing.T) {
		data, err := json.Marshal(valid)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ParseSnapshot(data)
		if err != nil {
			t.Fatalf("ParseSnapshot: %v", err)
		}
		if len(got.Projects) != 1 || got.Projects[0].Key != "PRO" {
			t.Errorf("projects not preserved: %+v", got.Projects)
		}
		if got.Issues[0].Status != StatusTodo || got.Issues[0].Priority != PriorityMedium {
			t.Errorf("issue enums not preserved: %+v", got.Issues[0])
		}
	})

	t.Run("missing top level key", func(t *testing.T) {
		_, err := ParseSnapshot([]byte(`{"projects": [], "users": []}`))
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	})

	t.Run("not JSON", func(t *testing.T) {
		_, err := ParseSnapshot([]byte(`nope`))
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := ParseSnapshot([]byte(`{"projects":[],"users":[],"issues":[{"id":"i-1","key":"X-1","status":"BLOCKED","priority":"LOW"}]}`))
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	})

	t.Run("unknown priority rejected", func(t *testing.T) {
		_, err := ParseSnapshot([]byte(`{"projects":[],"users":[],"issues":[{"id":"i-1","key":"X-1","status":"TODO","priority":"URGENT"}]}`))
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	})

	t.Run("empty collections accepted", func(t *testing.T) {
		got, err := ParseSnapshot([]byte(`{"projects":[],"users":[],"issues":[]}`))
		if err != nil {
			t.Fatalf("ParseSnapshot: %v", err)
		}
		if got.Projects == nil || got.Users == nil || got.Issues == nil {
			t.Error("empty collections should decode non-nil")
		}
	})
}

func TestDefaultSnapshot_IsValid(t *testing.T) {
	def := DefaultSnapshot()
	if len(def.Projects) == 0 || len(def.Users) == 0 || len(def.Issues) == 0 {
		t.Fatal("default dataset must populate all three collections")
	}
	projects := map[string]bool{}
	for _, p := range def.Projects {
		projects[p.ID] = true
	}
	for _, i := range def.Issues {
		if !projects[i.ProjectID] {
			t.Errorf("issue %s references unknown project %s", i.Key, i.ProjectID)
		}
		if !i.Status.Valid() || !i.Priority.Valid() {
			t.Errorf("issue %s has invalid enums", i.Key)
		}
		if i.Comments == nil {
			t.Errorf("issue %s has nil comments", i.Key)
		}
	}
}
