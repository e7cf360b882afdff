package main

import (
	"context"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/kanban/internal/board"
	"github.com/kidandcat/kanban/internal/gist"
	"github.com/kidandcat/kanban/internal/model"
	"github.com/kidandcat/kanban/internal/store"
)

// Issue modal

func (b *BoardView) openCreateIssue() {
	b.editingIssueID = ""
	b.formTitle = ""
	b.formDesc = ""
	b.formStatus = model.StatusTodo
	b.formPriority = model.PriorityMedium
	b.formAssignee = ""
	b.showIssueModal = true
}

func (b *BoardView) openEditIssue(issue model.Issue) {
	b.editingIssueID = issue.ID
	b.formTitle = issue.Title
	b.formDesc = issue.Description
	b.formStatus = issue.Status
	b.formPriority = issue.Priority
	b.formAssignee = issue.AssigneeID
	b.showIssueModal = true
}

func (b *BoardView) saveIssue(ctx app.Context, active model.Project) {
	if b.editingIssueID != "" {
		patch := store.IssuePatch{
			Title:       &b.formTitle,
			Description: &b.formDesc,
			Status:      &b.formStatus,
			Priority:    &b.formPriority,
			AssigneeID:  &b.formAssignee,
		}
		if _, err := b.controller.UpdateIssue(b.editingIssueID, patch); err != nil {
			app.Log("error updating issue:", err)
			return
		}
	} else {
		input := board.IssueInput{
			Title:       b.formTitle,
			Description: b.formDesc,
			Status:      b.formStatus,
			Priority:    b.formPriority,
			AssigneeID:  b.formAssignee,
		}
		if _, err := b.controller.CreateIssue(active, input); err != nil {
			app.Log("error creating issue:", err)
			return
		}
	}
	b.showIssueModal = false
}

func (b *BoardView) renderIssueModal(active model.Project) app.UI {
	heading := "Create Issue"
	if b.editingIssueID != "" {
		heading = "Edit Issue"
	}
	users := b.store.Users()
	statuses := model.Statuses()
	priorities := model.Priorities()

	return app.Div().Class("modal-overlay").Body(
		app.Div().Class("modal").Body(
			app.Div().Class("modal-header").Body(
				app.H2().Text(heading),
				app.Button().Class("modal-close").Text("×").
					OnClick(func(ctx app.Context, e app.Event) {
						b.showIssueModal = false
					}),
			),
			app.Label().Text("Title"),
			app.Input().
				Class("field").
				Type("text").
				AutoFocus(true).
				Value(b.formTitle).
				OnInput(func(ctx app.Context, e app.Event) {
					b.formTitle = ctx.JSSrc().Get("value").String()
				}),
			app.Label().Text("Description"),
			app.Textarea().
				Class("field").
				Rows(4).
				Text(b.formDesc).
				OnInput(func(ctx app.Context, e app.Event) {
					b.formDesc = ctx.JSSrc().Get("value").String()
				}),
			app.Div().Class("field-row").Body(
				app.Div().Body(
					app.Label().Text("Status"),
					app.Select().
						Class("field").
						OnChange(func(ctx app.Context, e app.Event) {
							b.formStatus = model.Status(ctx.JSSrc().Get("value").String())
						}).
						Body(
							app.Range(statuses).Slice(func(i int) app.UI {
								return app.Option().
									Value(string(statuses[i])).
									Selected(statuses[i] == b.formStatus).
									Text(statuses[i].Label())
							}),
						),
				),
				app.Div().Body(
					app.Label().Text("Priority"),
					app.Select().
						Class("field").
						OnChange(func(ctx app.Context, e app.Event) {
							b.formPriority = model.Priority(ctx.JSSrc().Get("value").String())
						}).
						Body(
							app.Range(priorities).Slice(func(i int) app.UI {
								return app.Option().
									Value(string(priorities[i])).
									Selected(priorities[i] == b.formPriority).
									Text(string(priorities[i]))
							}),
						),
				),
				app.Div().Body(
					app.Label().Text("Assignee"),
					app.Select().
						Class("field").
						OnChange(func(ctx app.Context, e app.Event) {
							b.formAssignee = ctx.JSSrc().Get("value").String()
						}).
						Body(
							app.Option().Value("").Selected(b.formAssignee == "").Text("Unassigned"),
							app.Range(users).Slice(func(i int) app.UI {
								return app.Option().
									Value(users[i].ID).
									Selected(users[i].ID == b.formAssignee).
									Text(users[i].Name)
							}),
						),
				),
			),
			app.Div().Class("modal-footer").Body(
				app.Button().Class("secondary-btn").Text("Cancel").
					OnClick(func(ctx app.Context, e app.Event) {
						b.showIssueModal = false
					}),
				app.Button().
					Class("primary-btn").
					Disabled(b.formTitle == "").
					Text("Save").
					OnClick(func(ctx app.Context, e app.Event) {
						b.saveIssue(ctx, active)
					}),
			),
		),
	)
}

// Sync modal

func (b *BoardView) openSyncModal() {
	b.formSyncToken = b.syncToken
	b.formSyncBlob = b.syncBlobID
	b.formSyncEndpoint = b.syncEndpoint
	b.formSecret = true
	b.syncMessage = ""
	b.syncError = ""
	b.showSyncModal = true
}

// syncClient builds the remote client for the endpoint currently in
// the form. An empty endpoint targets the default remote service.
func (b *BoardView) syncClient() *gist.Client {
	return gist.NewClient(b.formSyncEndpoint)
}

func (b *BoardView) saveSyncSettings(token, blobID, endpoint string) {
	b.syncToken = token
	b.syncBlobID = blobID
	b.syncEndpoint = endpoint
	if err := b.storage.SaveToken(token); err != nil {
		app.Log("error saving sync token:", err)
	}
	if err := b.storage.SaveBlobID(blobID); err != nil {
		app.Log("error saving blob id:", err)
	}
	if err := b.storage.SaveEndpoint(endpoint); err != nil {
		app.Log("error saving sync endpoint:", err)
	}
}

func (b *BoardView) saveRemote(ctx app.Context) {
	token := b.formSyncToken
	blobID := b.formSyncBlob
	endpoint := b.formSyncEndpoint
	public := !b.formSecret
	client := b.syncClient()
	snap := b.controller.Snapshot()

	if token == "" {
		b.syncError = "Access token is required to save."
		return
	}
	b.syncBusy = true
	b.syncMessage = ""
	b.syncError = ""

	ctx.Async(func() {
		id, err := client.Save(context.Background(), token, snap, blobID, public)
		ctx.Dispatch(func(ctx app.Context) {
			b.syncBusy = false
			if err != nil {
				b.syncError = err.Error()
				return
			}
			b.formSyncBlob = id
			b.saveSyncSettings(token, id, endpoint)
			b.syncMessage = "Successfully saved snapshot."
		})
	})
}

func (b *BoardView) loadRemote(ctx app.Context) {
	token := b.formSyncToken
	blobID := b.formSyncBlob
	endpoint := b.formSyncEndpoint
	client := b.syncClient()

	if token == "" || blobID == "" {
		b.syncError = "Token and blob id are required."
		return
	}
	if !b.confirm("This will replace all current data. Continue?") {
		return
	}
	b.syncBusy = true
	b.syncMessage = ""
	b.syncError = ""

	ctx.Async(func() {
		snap, err := client.Load(context.Background(), token, blobID)
		ctx.Dispatch(func(ctx app.Context) {
			b.syncBusy = false
			if err != nil {
				// A failed load leaves the local store untouched.
				b.syncError = err.Error()
				return
			}
			b.saveSyncSettings(token, blobID, endpoint)
			b.applySnapshot(snap)
			b.syncMessage = "Successfully loaded data."
		})
	})
}

func (b *BoardView) renderSyncModal() app.UI {
	return app.Div().Class("modal-overlay").Body(
		app.Div().Class("modal").Body(
			app.Div().Class("modal-header").Body(
				app.H2().Text("Remote Sync"),
				app.Button().Class("modal-close").Text("×").
					OnClick(func(ctx app.Context, e app.Event) {
						b.showSyncModal = false
					}),
			),
			app.Label().Text("Access Token"),
			app.Input().
				Class("field").
				Type("password").
				Value(b.formSyncToken).
				OnInput(func(ctx app.Context, e app.Event) {
					b.formSyncToken = ctx.JSSrc().Get("value").String()
				}),
			app.Label().Text("Blob ID (empty to create a new one)"),
			app.Input().
				Class("field").
				Type("text").
				Value(b.formSyncBlob).
				OnInput(func(ctx app.Context, e app.Event) {
					b.formSyncBlob = ctx.JSSrc().Get("value").String()
				}),
			app.Label().Text("Server URL (empty for GitHub)"),
			app.Input().
				Class("field").
				Type("text").
				Placeholder("https://your-server/api").
				Value(b.formSyncEndpoint).
				OnInput(func(ctx app.Context, e app.Event) {
					b.formSyncEndpoint = ctx.JSSrc().Get("value").String()
				}),
			app.Label().Class("checkbox-label").Body(
				app.Input().
					Type("checkbox").
					Checked(b.formSecret).
					OnChange(func(ctx app.Context, e app.Event) {
						b.formSecret = ctx.JSSrc().Get("checked").Bool()
					}),
				app.Span().Text("Secret (visibility is fixed at creation)"),
			),
			app.If(b.syncError != "", func() app.UI {
				return app.P().Class("sync-error").Text(b.syncError)
			}),
			app.If(b.syncMessage != "", func() app.UI {
				return app.P().Class("sync-ok").Text(b.syncMessage)
			}),
			app.Div().Class("modal-footer").Body(
				app.Button().
					Class("secondary-btn").
					Disabled(b.syncBusy).
					Text("Load").
					OnClick(func(ctx app.Context, e app.Event) {
						b.loadRemote(ctx)
					}),
				app.Button().
					Class("primary-btn").
					Disabled(b.syncBusy).
					Text("Save").
					OnClick(func(ctx app.Context, e app.Event) {
						b.saveRemote(ctx)
					}),
			),
		),
	)
}
