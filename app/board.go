package main

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/kanban/internal/board"
	"github.com/kidandcat/kanban/internal/model"
	"github.com/kidandcat/kanban/internal/storage"
	"github.com/kidandcat/kanban/internal/store"
)

type BoardView struct {
	app.Compo

	store      *store.Store
	controller *board.Controller
	storage    *storage.Adapter
	drag       board.DragSession

	releaseKeydown func()

	loaded          bool
	dark            bool
	activeProjectID string
	searchQuery     string

	// Sync credentials
	syncToken    string
	syncBlobID   string
	syncEndpoint string

	// Issue modal
	showIssueModal bool
	editingIssueID string
	formTitle      string
	formDesc       string
	formStatus     model.Status
	formPriority   model.Priority
	formAssignee   string

	// Sync modal
	showSyncModal    bool
	formSyncToken    string
	formSyncBlob     string
	formSyncEndpoint string
	formSecret       bool
	syncBusy      bool
	syncMessage   string
	syncError     string

	// Inline adds
	addingProject  bool
	newProjectName string
	addingUser     bool
	newUserName    string
}

func (b *BoardView) OnMount(ctx app.Context) {
	b.storage = storage.New(ctx.LocalStorage())
	b.store = store.New()
	b.controller = board.NewController(b.store, b.storage)

	st := b.storage.LoadState()
	b.store.ReplaceAll(st.Snapshot.Projects, st.Snapshot.Users, st.Snapshot.Issues)
	b.dark = st.Theme == storage.ThemeDark
	b.syncToken = st.Token
	b.syncBlobID = st.BlobID
	b.syncEndpoint = st.Endpoint
	if projects := b.store.Projects(); len(projects) > 0 {
		b.activeProjectID = projects[0].ID
	}
	b.loaded = true

	b.releaseKeydown = app.Window().AddEventListener("keydown", func(ctx app.Context, e app.Event) {
		if e.Get("key").String() == "Escape" {
			b.closeOverlays()
		}
	})
}

func (b *BoardView) OnDismount() {
	if b.releaseKeydown != nil {
		b.releaseKeydown()
	}
}

// closeOverlays dismisses any open modal or inline add input and
// reports whether anything was open.
func (b *BoardView) closeOverlays() bool {
	open := b.showIssueModal || b.showSyncModal || b.addingProject || b.addingUser
	b.showIssueModal = false
	b.showSyncModal = false
	b.addingProject = false
	b.newProjectName = ""
	b.addingUser = false
	b.newUserName = ""
	return open
}

// activeProject re-runs selection on every render so a deleted active
// project falls back to the first remaining one.
func (b *BoardView) activeProject() (model.Project, bool) {
	p, ok := board.SelectActiveProject(b.store.Projects(), b.activeProjectID)
	if ok {
		b.activeProjectID = p.ID
	}
	return p, ok
}

func (b *BoardView) confirm(msg string) bool {
	return app.Window().Call("confirm", msg).Bool()
}

func (b *BoardView) toggleTheme(ctx app.Context, e app.Event) {
	b.dark = !b.dark
	theme := storage.ThemeLight
	if b.dark {
		theme = storage.ThemeDark
	}
	if err := b.storage.SaveTheme(theme); err != nil {
		app.Log("error saving theme:", err)
	}
}

// Projects

func (b *BoardView) addProject(ctx app.Context) {
	p, err := b.controller.CreateProject(b.newProjectName)
	if err != nil {
		b.addingProject = false
		b.newProjectName = ""
		return
	}
	b.activeProjectID = p.ID
	b.addingProject = false
	b.newProjectName = ""
}

func (b *BoardView) removeProject(ctx app.Context, e app.Event, id string) {
	e.Call("stopPropagation")
	if !b.confirm("Are you sure you want to delete this project?") {
		return
	}
	if err := b.controller.RemoveProject(id); err != nil {
		app.Log("error removing project:", err)
	}
}

// Users

func (b *BoardView) addUser(ctx app.Context) {
	if _, err := b.controller.CreateUser(b.newUserName); err != nil {
		b.addingUser = false
		b.newUserName = ""
		return
	}
	b.addingUser = false
	b.newUserName = ""
}

func (b *BoardView) removeUser(ctx app.Context, e app.Event, id string) {
	e.Call("stopPropagation")
	if !b.confirm("Are you sure you want to remove this user?") {
		return
	}
	if err := b.controller.RemoveUser(id); err != nil {
		app.Log("error removing user:", err)
	}
}

// Drag and drop

func (b *BoardView) onDragStart(ctx app.Context, e app.Event, id string) {
	b.drag.Start(id)
	e.Get("dataTransfer").Set("effectAllowed", "move")
}

func (b *BoardView) onDragEnd(ctx app.Context, e app.Event) {
	b.drag.End()
}

func (b *BoardView) onDragOver(ctx app.Context, e app.Event) {
	e.PreventDefault()
	e.Get("dataTransfer").Set("dropEffect", "move")
}

func (b *BoardView) onDrop(ctx app.Context, e app.Event, status model.Status) {
	e.PreventDefault()
	if _, _, err := b.drag.Drop(b.controller, status); err != nil {
		app.Log("error moving issue:", err)
	}
}

// Reset

func (b *BoardView) resetAll(ctx app.Context, e app.Event) {
	if !b.confirm("Are you sure you want to wipe all data and reset to defaults?") {
		return
	}
	if err := b.controller.Reset(); err != nil {
		app.Log("error resetting data:", err)
	}
	b.activeProjectID = ""
}

// Render

func (b *BoardView) Render() app.UI {
	if !b.loaded {
		return app.Div().Class("loading-overlay").Body(
			app.Div().Class("loading-spinner"),
		)
	}

	rootClass := "layout theme-light"
	if b.dark {
		rootClass = "layout theme-dark"
	}

	active, hasProject := b.activeProject()

	return app.Div().Class(rootClass).Body(
		b.renderSidebar(),
		app.Main().Class("content").Body(
			b.renderHeader(active, hasProject),
			app.If(hasProject, func() app.UI {
				return b.renderBoard(active)
			}).Else(func() app.UI {
				return app.Div().Class("empty-state").Body(
					app.H2().Text("No projects found"),
					app.P().Text("Add a project to get started."),
				)
			}),
		),
		app.If(b.showIssueModal, func() app.UI {
			return b.renderIssueModal(active)
		}),
		app.If(b.showSyncModal, func() app.UI {
			return b.renderSyncModal()
		}),
	)
}

func (b *BoardView) renderHeader(active model.Project, hasProject bool) app.UI {
	title := "Select Project"
	if hasProject {
		title = active.Name
	}
	return app.Header().Class("topbar").Body(
		app.Div().Class("topbar-title").Body(
			app.H1().Text(title),
			app.Span().Class("topbar-crumb").Text("Board"),
		),
		app.Div().Class("topbar-actions").Body(
			app.Input().
				Class("search").
				Type("text").
				Placeholder("Search issues...").
				Value(b.searchQuery).
				OnInput(func(ctx app.Context, e app.Event) {
					b.searchQuery = ctx.JSSrc().Get("value").String()
				}),
			app.Button().
				Class("icon-btn").
				Title("Toggle theme").
				Text(themeIcon(b.dark)).
				OnClick(b.toggleTheme),
			app.Button().
				Class("primary-btn").
				Disabled(!hasProject).
				Text("+ Create Issue").
				OnClick(func(ctx app.Context, e app.Event) {
					b.openCreateIssue()
				}),
		),
	)
}

func themeIcon(dark bool) string {
	if dark {
		return "☀"
	}
	return "🌙"
}

func (b *BoardView) renderBoard(active model.Project) app.UI {
	filtered := board.FilterIssues(b.store.Issues(), active.ID, b.searchQuery)
	groups := board.GroupByStatus(filtered)
	statuses := model.Statuses()

	return app.Div().Class("board").Body(
		app.Range(statuses).Slice(func(i int) app.UI {
			return b.renderColumn(statuses[i], groups[statuses[i]])
		}),
	)
}

func (b *BoardView) renderColumn(status model.Status, issues []model.Issue) app.UI {
	return app.Div().
		Class("column").
		OnDragOver(b.onDragOver).
		OnDrop(func(ctx app.Context, e app.Event) {
			b.onDrop(ctx, e, status)
		}).
		Body(
			app.Div().Class("column-header").Body(
				app.H3().Text(status.Label()),
				app.Span().Class("column-count").Text(fmt.Sprintf("%d", len(issues))),
			),
			app.Div().Class("column-body").Body(
				app.If(len(issues) == 0, func() app.UI {
					return app.Div().Class("column-empty").Text("No issues")
				}).Else(func() app.UI {
					return app.Range(issues).Slice(func(i int) app.UI {
						return b.renderCard(issues[i])
					})
				}),
			),
		)
}

func (b *BoardView) renderCard(issue model.Issue) app.UI {
	cardClass := "card"
	if id, ok := b.drag.Dragging(); ok && id == issue.ID {
		cardClass += " dragging"
	}

	return app.Div().
		Class(cardClass).
		Draggable(true).
		OnDragStart(func(ctx app.Context, e app.Event) {
			b.onDragStart(ctx, e, issue.ID)
		}).
		OnDragEnd(b.onDragEnd).
		OnClick(func(ctx app.Context, e app.Event) {
			b.openEditIssue(issue)
		}).
		Body(
			app.Span().Class("card-key").Text(issue.Key),
			app.H4().Class("card-title").Text(issue.Title),
			app.If(issue.Description != "", func() app.UI {
				return app.P().Class("card-desc").Text(issue.Description)
			}),
			app.Div().Class("card-footer").Body(
				app.Span().Class("priority priority-"+string(issue.Priority)).Text(string(issue.Priority)),
				b.renderAvatar(issue.AssigneeID),
			),
		)
}

// renderAvatar resolves the assignee; a dangling id renders as
// unassigned.
func (b *BoardView) renderAvatar(userID string) app.UI {
	user, ok := b.store.User(userID)
	if !ok {
		return app.Div().Class("avatar avatar-empty")
	}
	return app.Img().
		Class("avatar").
		Src(user.Avatar).
		Alt(user.Name).
		Title(user.Name)
}
