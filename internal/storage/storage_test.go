package storage

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/kidandcat/kanban/internal/model"
)

// memKV mimics go-app's BrowserStorage: values are JSON-encoded, and
// Get on a missing key leaves the target untouched.
type memKV struct {
	m map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{m: map[string][]byte{}}
}

func (kv *memKV) Set(k string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	kv.m[k] = b
	return nil
}

func (kv *memKV) Get(k string, v any) error {
	b, ok := kv.m[k]
	if !ok {
		return nil
	}
	return json.Unmarshal(b, v)
}

func (kv *memKV) Del(k string) {
	delete(kv.m, k)
}

func TestLoadState_DefaultsWhenEmpty(t *testing.T) {
	a := New(newMemKV())
	st := a.LoadState()

	def := model.DefaultSnapshot()
	if len(st.Snapshot.Projects) != len(def.Projects) {
		t.Error("projects should fall back to the built-in dataset")
	}
	if st.Theme != ThemeLight {
		t.Errorf("theme = %q, want light", st.Theme)
	}
	if st.Token != "" || st.BlobID != "" {
		t.Error("credentials should default to empty")
	}
}

func TestLoadState_MalformedValueFallsBackSilently(t *testing.T) {
	kv := newMemKV()
	kv.m["kanban_projects"] = []byte(`{{{not json`)
	kv.m["kanban_issues"] = []byte(`"a string, not an array"`)

	st := New(kv).LoadState()
	def := model.DefaultSnapshot()
	if len(st.Snapshot.Projects) != len(def.Projects) {
		t.Error("malformed projects should fall back to defaults")
	}
	if len(st.Snapshot.Issues) != len(def.Issues) {
		t.Error("malformed issues should fall back to defaults")
	}
}

func TestWriteThroughRoundTrip(t *testing.T) {
	kv := newMemKV()
	a := New(kv)

	projects := []model.Project{{ID: "p-1", Key: "PRO", Name: "Project"}}
	users := []model.User{{ID: "u-1", Name: "Ana"}}
	issues := []model.Issue{{
		ID: "i-1", ProjectID: "p-1", Key: "PRO-100", Title: "First",
		Status: model.StatusTodo, Priority: model.PriorityHigh,
		CreatedAt: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		Comments:  []model.Comment{},
	}}

	if err := a.SaveProjects(projects); err != nil {
		t.Fatal(err)
	}
	if err := a.SaveUsers(users); err != nil {
		t.Fatal(err)
	}
	if err := a.SaveIssues(issues); err != nil {
		t.Fatal(err)
	}
	if err := a.SaveTheme(ThemeDark); err != nil {
		t.Fatal(err)
	}
	if err := a.SaveToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := a.SaveBlobID("blob-1"); err != nil {
		t.Fatal(err)
	}
	if err := a.SaveEndpoint("https://kanban.example/api"); err != nil {
		t.Fatal(err)
	}

	st := a.LoadState()
	if !reflect.DeepEqual(st.Snapshot.Projects, projects) {
		t.Errorf("projects round trip: %+v", st.Snapshot.Projects)
	}
	if !reflect.DeepEqual(st.Snapshot.Users, users) {
		t.Errorf("users round trip: %+v", st.Snapshot.Users)
	}
	if !reflect.DeepEqual(st.Snapshot.Issues, issues) {
		t.Errorf("issues round trip: %+v", st.Snapshot.Issues)
	}
	if st.Theme != ThemeDark || st.Token != "tok" || st.BlobID != "blob-1" {
		t.Errorf("settings round trip: %+v", st)
	}
	if st.Endpoint != "https://kanban.example/api" {
		t.Errorf("endpoint round trip: %q", st.Endpoint)
	}
}

// brokenKV fails every write, like a full or disabled browser store.
type brokenKV struct{}

func (brokenKV) Set(k string, v any) error { return errors.New("storage unavailable") }
func (brokenKV) Get(k string, v any) error { return nil }
func (brokenKV) Del(k string)              {}

func TestSave_SurfacesSubstrateErrors(t *testing.T) {
	a := New(brokenKV{})
	if err := a.SaveToken("tok"); err == nil {
		t.Error("SaveToken should surface the substrate error")
	}
	if err := a.SaveBlobID("blob-1"); err == nil {
		t.Error("SaveBlobID should surface the substrate error")
	}
	if err := a.SaveEndpoint("https://kanban.example/api"); err == nil {
		t.Error("SaveEndpoint should surface the substrate error")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	snap := model.Snapshot{
		Projects: []model.Project{{ID: "p-1", Key: "PRO", Name: "Project", Icon: "📁"}},
		Users:    []model.User{{ID: "u-1", Name: "Ana", Avatar: model.AvatarURL("Ana")}},
		Issues: []model.Issue{{
			ID: "i-1", ProjectID: "p-1", Key: "PRO-100", Title: "First",
			Status: model.StatusReview, Priority: model.PriorityCritical,
			AssigneeID: "u-1",
			CreatedAt:  time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
			Comments:   []model.Comment{},
		}},
	}

	data, name, err := Export(snap)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if ok, _ := regexp.MatchString(`^kanban-backup-\d{4}-\d{2}-\d{2}\.json$`, name); !ok {
		t.Errorf("filename %q does not match the backup pattern", name)
	}

	got, err := Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
}

func TestImport_RejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"missing issues":  `{"projects":[],"users":[]}`,
		"not json":        `hello`,
		"unknown status":  `{"projects":[],"users":[],"issues":[{"id":"i","key":"K-1","status":"WAT","priority":"LOW"}]}`,
		"wrong top level": `[1,2,3]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Import([]byte(doc)); !errors.Is(err, model.ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}
