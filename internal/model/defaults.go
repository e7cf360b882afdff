package model

import "time"

// DefaultSnapshot returns the built-in dataset used when no persisted
// state exists, and by the reset action. Each call returns fresh
// slices so callers can mutate the result freely.
func DefaultSnapshot() Snapshot {
	now := time.Now()
	return Snapshot{
		Projects: []Project{
			{ID: "p-core", Key: "COR", Name: "Core Platform", Description: "Platform services and infrastructure", Icon: "🛠️"},
			{ID: "p-web", Key: "WEB", Name: "Website", Description: "Public website and docs", Icon: "🌐"},
		},
		Users: []User{
			{ID: "u-ana", Name: "Ana Torres", Avatar: AvatarURL("Ana Torres")},
			{ID: "u-leo", Name: "Leo Martín", Avatar: AvatarURL("Leo Martín")},
			{ID: "u-sam", Name: "Sam Ruiz", Avatar: AvatarURL("Sam Ruiz")},
		},
		Issues: []Issue{
			{
				ID: "i-1", ProjectID: "p-core", Key: "COR-101",
				Title:       "Set up CI pipeline",
				Description: "Build and test on every push.",
				Status:      StatusTodo, Priority: PriorityHigh,
				AssigneeID: "u-ana", CreatedAt: now, Comments: []Comment{},
			},
			{
				ID: "i-2", ProjectID: "p-core", Key: "COR-102",
				Title:       "Fix session expiry race",
				Description: "Sessions sometimes expire one request early.",
				Status:      StatusInProgress, Priority: PriorityCritical,
				AssigneeID: "u-leo", CreatedAt: now, Comments: []Comment{},
			},
			{
				ID: "i-3", ProjectID: "p-core", Key: "COR-103",
				Title:      "Upgrade storage driver",
				Status:     StatusReview, Priority: PriorityMedium,
				AssigneeID: "u-sam", CreatedAt: now, Comments: []Comment{},
			},
			{
				ID: "i-4", ProjectID: "p-core", Key: "COR-104",
				Title:     "Document deploy process",
				Status:    StatusDone, Priority: PriorityLow,
				CreatedAt: now, Comments: []Comment{},
			},
			{
				ID: "i-5", ProjectID: "p-web", Key: "WEB-201",
				Title:       "Landing page redesign",
				Description: "New hero section and pricing table.",
				Status:      StatusTodo, Priority: PriorityMedium,
				AssigneeID: "u-ana", CreatedAt: now, Comments: []Comment{},
			},
			{
				ID: "i-6", ProjectID: "p-web", Key: "WEB-202",
				Title:     "Broken links on docs pages",
				Status:    StatusInProgress, Priority: PriorityHigh,
				CreatedAt: now, Comments: []Comment{},
			},
		},
	}
}
