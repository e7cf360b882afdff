// Package board derives the filtered board view from the entity store
// and performs all issue, project and user mutations.
package board

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kidandcat/kanban/internal/model"
	"github.com/kidandcat/kanban/internal/store"
)

// ErrInvalidInput is returned when a required field is blank.
var ErrInvalidInput = errors.New("invalid input")

// SelectActiveProject returns the project matching activeID, or the
// first project when the id no longer exists, or ok=false when the
// collection is empty. Callers re-run this whenever the project
// collection changes, since the active id may have been deleted.
func SelectActiveProject(projects []model.Project, activeID string) (model.Project, bool) {
	for _, p := range projects {
		if p.ID == activeID {
			return p, true
		}
	}
	if len(projects) > 0 {
		return projects[0], true
	}
	return model.Project{}, false
}

// FilterIssues returns the issues of one project, narrowed by a
// case-insensitive substring match on title or key when query is
// non-empty. Pure function; never mutates its inputs.
func FilterIssues(issues []model.Issue, projectID, query string) []model.Issue {
	query = strings.ToLower(query)
	var out []model.Issue
	for _, i := range issues {
		if i.ProjectID != projectID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(i.Title), query) &&
			!strings.Contains(strings.ToLower(i.Key), query) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// GroupByStatus partitions issues into the four status columns,
// preserving storage order within each column. All four buckets are
// always present.
func GroupByStatus(issues []model.Issue) map[model.Status][]model.Issue {
	groups := make(map[model.Status][]model.Issue, 4)
	for _, s := range model.Statuses() {
		groups[s] = []model.Issue{}
	}
	for _, i := range issues {
		groups[i.Status] = append(groups[i.Status], i)
	}
	return groups
}

// Saver persists a collection after a successful mutation. The
// persistence adapter implements it; tests use an in-memory fake.
type Saver interface {
	SaveProjects([]model.Project) error
	SaveUsers([]model.User) error
	SaveIssues([]model.Issue) error
}

// Controller applies mutations to the store and writes the touched
// collection through to durable storage.
type Controller struct {
	store *store.Store
	saver Saver

	// now is swappable for tests.
	now func() time.Time
}

func NewController(s *store.Store, saver Saver) *Controller {
	return &Controller{store: s, saver: saver, now: time.Now}
}

func (c *Controller) Store() *store.Store {
	return c.store
}

// IssueInput carries the user-provided fields for a new issue.
type IssueInput struct {
	Title       string
	Description string
	Status      model.Status
	Priority    model.Priority
	AssigneeID  string
}

// CreateIssue creates an issue in the given project. The title must be
// non-blank; status defaults to TODO and priority to MEDIUM.
func (c *Controller) CreateIssue(project model.Project, input IssueInput) (model.Issue, error) {
	if strings.TrimSpace(input.Title) == "" {
		return model.Issue{}, fmt.Errorf("%w: issue title is required", ErrInvalidInput)
	}
	status := input.Status
	if status == "" {
		status = model.StatusTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	issue := model.Issue{
		ID:          model.NewID("i"),
		ProjectID:   project.ID,
		Key:         model.NewIssueKey(project.Key),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  input.AssigneeID,
		CreatedAt:   c.now(),
		Comments:    []model.Comment{},
	}
	c.store.AddIssue(issue)
	return issue, c.saver.SaveIssues(c.store.Issues())
}

// UpdateIssue merges a partial patch into an existing issue.
func (c *Controller) UpdateIssue(id string, patch store.IssuePatch) (model.Issue, error) {
	issue, err := c.store.UpdateIssue(id, patch)
	if err != nil {
		return model.Issue{}, err
	}
	return issue, c.saver.SaveIssues(c.store.Issues())
}

// MoveIssue sets the issue status; invoked when a drag session drops
// on a column.
func (c *Controller) MoveIssue(id string, status model.Status) (model.Issue, error) {
	return c.UpdateIssue(id, store.IssuePatch{Status: &status})
}

// CreateProject adds a project with a key derived from its name. The
// returned project is meant to become the caller's active project.
func (c *Controller) CreateProject(name string) (model.Project, error) {
	if strings.TrimSpace(name) == "" {
		return model.Project{}, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	project := model.Project{
		ID:   model.NewID("p"),
		Key:  model.ProjectKeyFrom(name),
		Name: name,
		Icon: "📁",
	}
	c.store.AddProject(project)
	return project, c.saver.SaveProjects(c.store.Projects())
}

// RemoveProject deletes a project. Its issues are intentionally kept;
// they become unreachable from any board view. Confirmation is the
// caller's responsibility.
func (c *Controller) RemoveProject(id string) error {
	if err := c.store.RemoveProject(id); err != nil {
		return err
	}
	return c.saver.SaveProjects(c.store.Projects())
}

func (c *Controller) CreateUser(name string) (model.User, error) {
	if strings.TrimSpace(name) == "" {
		return model.User{}, fmt.Errorf("%w: member name is required", ErrInvalidInput)
	}
	user := model.User{
		ID:     model.NewID("u"),
		Name:   name,
		Avatar: model.AvatarURL(name),
	}
	c.store.AddUser(user)
	return user, c.saver.SaveUsers(c.store.Users())
}

// RemoveUser deletes a user without touching issues; dangling assignee
// ids resolve to unassigned at lookup time.
func (c *Controller) RemoveUser(id string) error {
	if err := c.store.RemoveUser(id); err != nil {
		return err
	}
	return c.saver.SaveUsers(c.store.Users())
}

// ReplaceAll swaps the whole store for the snapshot contents and
// persists all three collections. Used by import and remote load.
func (c *Controller) ReplaceAll(snap model.Snapshot) error {
	c.store.ReplaceAll(snap.Projects, snap.Users, snap.Issues)
	if err := c.saver.SaveProjects(c.store.Projects()); err != nil {
		return err
	}
	if err := c.saver.SaveUsers(c.store.Users()); err != nil {
		return err
	}
	return c.saver.SaveIssues(c.store.Issues())
}

// Reset restores the built-in default dataset.
func (c *Controller) Reset() error {
	return c.ReplaceAll(model.DefaultSnapshot())
}

// Snapshot returns the current export document.
func (c *Controller) Snapshot() model.Snapshot {
	return c.store.Snapshot()
}
