package model

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusDone       Status = "DONE"
)

// Statuses returns the board columns in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}
}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Label returns the human-readable column name, e.g. "IN PROGRESS".
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Project struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Comment struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type Issue struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	AssigneeID  string    `json:"assigneeId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Comments    []Comment `json:"comments"`
}

// NewID returns an opaque random id. Uniqueness comes from randomness,
// never from a sequence; callers must not assume any ordering.
func NewID(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}

// NewIssueKey builds an issue key like "PROJ-342" from the parent
// project key. The suffix is pseudo-random; collisions are tolerated.
func NewIssueKey(projectKey string) string {
	return fmt.Sprintf("%s-%d", projectKey, rand.IntN(1000)+100)
}

// ProjectKeyFrom derives the short uppercase project code from its
// name at creation time. The key never changes afterwards. Truncation
// counts characters, not bytes, so multibyte names keep whole runes.
func ProjectKeyFrom(name string) string {
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// AvatarURL returns a generated avatar image for a member name.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

// Snapshot is the full {projects, users, issues} document used for
// export, import and remote sync.
type Snapshot struct {
	Projects []Project `json:"projects"`
	Users    []User    `json:"users"`
	Issues   []Issue   `json:"issues"`
}

// ParseSnapshot decodes and validates a snapshot document. All three
// top-level keys must be present, and every issue must carry a known
// status and priority.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if s.Projects == nil || s.Users == nil || s.Issues == nil {
		return Snapshot{}, fmt.Errorf("%w: missing projects, users or issues key", ErrFormat)
	}
	for _, issue := range s.Issues {
		if !issue.Status.Valid() {
			return Snapshot{}, fmt.Errorf("%w: issue %s has unknown status %q", ErrFormat, issue.Key, issue.Status)
		}
		if !issue.Priority.Valid() {
			return Snapshot{}, fmt.Errorf("%w: issue %s has unknown priority %q", ErrFormat, issue.Key, issue.Priority)
		}
	}
	return s, nil
}
