// Package store holds the in-memory authoritative collections of
// projects, users and issues. Collections preserve insertion order,
// and every mutation is a single atomic transform; there is exactly
// one local actor, so no locking.
package store

import (
	"errors"
	"fmt"

	"github.com/kidandcat/kanban/internal/model"
)

// ErrNotFound is returned when an operation targets a missing id.
var ErrNotFound = errors.New("not found")

type Store struct {
	projects []model.Project
	users    []model.User
	issues   []model.Issue
}

func New() *Store {
	return &Store{}
}

// ReplaceAll swaps all three collections in one step. Used by import,
// reset and remote load.
func (s *Store) ReplaceAll(projects []model.Project, users []model.User, issues []model.Issue) {
	s.projects = append([]model.Project(nil), projects...)
	s.users = append([]model.User(nil), users...)
	s.issues = append([]model.Issue(nil), issues...)
}

// Projects returns the projects in insertion order.
func (s *Store) Projects() []model.Project {
	return append([]model.Project(nil), s.projects...)
}

func (s *Store) Users() []model.User {
	return append([]model.User(nil), s.users...)
}

func (s *Store) Issues() []model.Issue {
	return append([]model.Issue(nil), s.issues...)
}

func (s *Store) Project(id string) (model.Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

func (s *Store) User(id string) (model.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Store) Issue(id string) (model.Issue, bool) {
	for _, i := range s.issues {
		if i.ID == id {
			return i, true
		}
	}
	return model.Issue{}, false
}

func (s *Store) AddProject(p model.Project) {
	s.projects = append(s.projects, p)
}

func (s *Store) AddUser(u model.User) {
	s.users = append(s.users, u)
}

func (s *Store) AddIssue(i model.Issue) {
	s.issues = append(s.issues, i)
}

// RemoveProject hard-deletes a project. Issues that reference it are
// left in place; they become unreachable from any board view.
func (s *Store) RemoveProject(id string) error {
	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// RemoveUser hard-deletes a user. Issues keep their dangling
// assigneeId; lookups resolve it to unassigned.
func (s *Store) RemoveUser(id string) error {
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", id, ErrNotFound)
}

func (s *Store) RemoveIssue(id string) error {
	for i, is := range s.issues {
		if is.ID == id {
			s.issues = append(s.issues[:i], s.issues[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("issue %s: %w", id, ErrNotFound)
}

// IssuePatch is a partial issue update. Nil fields keep the current
// value.
type IssuePatch struct {
	Title       *string
	Description *string
	Status      *model.Status
	Priority    *model.Priority
	AssigneeID  *string
}

// UpdateIssue merges a patch into an existing issue.
func (s *Store) UpdateIssue(id string, patch IssuePatch) (model.Issue, error) {
	for i := range s.issues {
		if s.issues[i].ID != id {
			continue
		}
		if patch.Title != nil {
			s.issues[i].Title = *patch.Title
		}
		if patch.Description != nil {
			s.issues[i].Description = *patch.Description
		}
		if patch.Status != nil {
			s.issues[i].Status = *patch.Status
		}
		if patch.Priority != nil {
			s.issues[i].Priority = *patch.Priority
		}
		if patch.AssigneeID != nil {
			s.issues[i].AssigneeID = *patch.AssigneeID
		}
		return s.issues[i], nil
	}
	return model.Issue{}, fmt.Errorf("issue %s: %w", id, ErrNotFound)
}

// ProjectPatch is a partial project update. The key is immutable and
// cannot be patched.
type ProjectPatch struct {
	Name        *string
	Description *string
	Icon        *string
}

func (s *Store) UpdateProject(id string, patch ProjectPatch) (model.Project, error) {
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.projects[i].Name = *patch.Name
		}
		if patch.Description != nil {
			s.projects[i].Description = *patch.Description
		}
		if patch.Icon != nil {
			s.projects[i].Icon = *patch.Icon
		}
		return s.projects[i], nil
	}
	return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// Snapshot returns the full export document for the current state.
func (s *Store) Snapshot() model.Snapshot {
	snap := model.Snapshot{
		Projects: s.Projects(),
		Users:    s.Users(),
		Issues:   s.Issues(),
	}
	if snap.Projects == nil {
		snap.Projects = []model.Project{}
	}
	if snap.Users == nil {
		snap.Users = []model.User{}
	}
	if snap.Issues == nil {
		snap.Issues = []model.Issue{}
	}
	return snap
}
