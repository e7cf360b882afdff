package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/kanban/internal/model"
	"github.com/kidandcat/kanban/internal/storage"
)

func (b *BoardView) renderSidebar() app.UI {
	return app.Aside().Class("sidebar").Body(
		app.Div().Class("sidebar-brand").Body(
			app.Div().Class("brand-mark").Text("K"),
			app.Span().Class("brand-name").Text("Kanban"),
		),
		app.Nav().Class("sidebar-nav").Body(
			b.renderProjectSection(),
			b.renderTeamSection(),
		),
		b.renderToolsRow(),
	)
}

func (b *BoardView) renderProjectSection() app.UI {
	projects := b.store.Projects()
	return app.Div().Class("sidebar-section").Body(
		app.Div().Class("section-header").Body(
			app.H3().Text("Projects"),
			app.Button().
				Class("section-add").
				Title("Add project").
				Text("+").
				OnClick(func(ctx app.Context, e app.Event) {
					b.addingProject = true
				}),
		),
		app.If(b.addingProject, func() app.UI {
			return app.Input().
				Class("inline-input").
				Type("text").
				Placeholder("Project name...").
				AutoFocus(true).
				Value(b.newProjectName).
				OnInput(func(ctx app.Context, e app.Event) {
					b.newProjectName = ctx.JSSrc().Get("value").String()
				}).
				OnKeyDown(func(ctx app.Context, e app.Event) {
					switch e.Get("key").String() {
					case "Enter":
						b.addProject(ctx)
					case "Escape":
						b.addingProject = false
						b.newProjectName = ""
					}
				}).
				OnBlur(func(ctx app.Context, e app.Event) {
					if b.newProjectName == "" {
						b.addingProject = false
					}
				})
		}),
		app.Ul().Class("sidebar-list").Body(
			app.Range(projects).Slice(func(i int) app.UI {
				p := projects[i]
				itemClass := "sidebar-item"
				if p.ID == b.activeProjectID {
					itemClass += " active"
				}
				return app.Li().Class(itemClass).Body(
					app.Button().
						Class("item-main").
						OnClick(func(ctx app.Context, e app.Event) {
							b.activeProjectID = p.ID
						}).
						Body(
							app.Span().Class("item-icon").Text(p.Icon),
							app.Span().Class("item-label").Text(p.Name),
						),
					app.Button().
						Class("item-remove").
						Title("Delete project").
						Text("×").
						OnClick(func(ctx app.Context, e app.Event) {
							b.removeProject(ctx, e, p.ID)
						}),
				)
			}),
		),
	)
}

func (b *BoardView) renderTeamSection() app.UI {
	users := b.store.Users()
	return app.Div().Class("sidebar-section").Body(
		app.Div().Class("section-header").Body(
			app.H3().Text("Team"),
			app.Button().
				Class("section-add").
				Title("Add member").
				Text("+").
				OnClick(func(ctx app.Context, e app.Event) {
					b.addingUser = true
				}),
		),
		app.If(b.addingUser, func() app.UI {
			return app.Input().
				Class("inline-input").
				Type("text").
				Placeholder("Member name...").
				AutoFocus(true).
				Value(b.newUserName).
				OnInput(func(ctx app.Context, e app.Event) {
					b.newUserName = ctx.JSSrc().Get("value").String()
				}).
				OnKeyDown(func(ctx app.Context, e app.Event) {
					switch e.Get("key").String() {
					case "Enter":
						b.addUser(ctx)
					case "Escape":
						b.addingUser = false
						b.newUserName = ""
					}
				}).
				OnBlur(func(ctx app.Context, e app.Event) {
					if b.newUserName == "" {
						b.addingUser = false
					}
				})
		}),
		app.Ul().Class("sidebar-list").Body(
			app.Range(users).Slice(func(i int) app.UI {
				u := users[i]
				return app.Li().Class("sidebar-item").Body(
					app.Div().Class("item-main").Body(
						app.Img().Class("item-avatar").Src(u.Avatar).Title(u.Name),
						app.Span().Class("item-label").Text(u.Name),
					),
					app.Button().
						Class("item-remove").
						Title("Remove member").
						Text("×").
						OnClick(func(ctx app.Context, e app.Event) {
							b.removeUser(ctx, e, u.ID)
						}),
				)
			}),
		),
	)
}

func (b *BoardView) renderToolsRow() app.UI {
	return app.Div().Class("sidebar-tools").Body(
		app.Button().
			Class("tool-btn").
			Title("Export JSON").
			Text("⇩").
			OnClick(b.exportJSON),
		app.Button().
			Class("tool-btn").
			Title("Import JSON").
			Text("⇧").
			OnClick(func(ctx app.Context, e app.Event) {
				app.Window().GetElementByID("import-file").Call("click")
			}),
		app.Input().
			ID("import-file").
			Type("file").
			Accept("application/json").
			Style("display", "none").
			OnChange(b.onImportFile),
		app.Button().
			Class("tool-btn").
			Title("Sync").
			Text("⇆").
			OnClick(func(ctx app.Context, e app.Event) {
				b.openSyncModal()
			}),
		app.Button().
			Class("tool-btn danger").
			Title("Reset all").
			Text("↺").
			OnClick(b.resetAll),
	)
}

// exportJSON offers the snapshot as a dated backup download.
func (b *BoardView) exportJSON(ctx app.Context, e app.Event) {
	data, name, err := storage.Export(b.controller.Snapshot())
	if err != nil {
		app.Log("error exporting data:", err)
		return
	}

	blob := app.Window().Get("Blob").New([]any{string(data)}, map[string]any{"type": "application/json"})
	url := app.Window().Get("URL").Call("createObjectURL", blob)
	doc := app.Window().Get("document")
	a := doc.Call("createElement", "a")
	a.Set("href", url)
	a.Set("download", name)
	doc.Get("body").Call("appendChild", a)
	a.Call("click")
	doc.Get("body").Call("removeChild", a)
	app.Window().Get("URL").Call("revokeObjectURL", url)
}

func (b *BoardView) onImportFile(ctx app.Context, e app.Event) {
	files := e.Get("target").Get("files")
	if files.Get("length").Int() == 0 {
		return
	}
	files.Index(0).Call("text").Then(func(v app.Value) {
		snap, err := storage.Import([]byte(v.String()))
		if err != nil {
			app.Window().Call("alert", "Invalid backup file format.")
			return
		}
		if !b.confirm("This will replace all current data. Continue?") {
			return
		}
		ctx.Dispatch(func(ctx app.Context) {
			b.applySnapshot(snap)
			app.Window().Call("alert", "Data imported successfully!")
		})
	})
}

// applySnapshot swaps the whole store atomically and re-selects the
// active project.
func (b *BoardView) applySnapshot(snap model.Snapshot) {
	if err := b.controller.ReplaceAll(snap); err != nil {
		app.Log("error replacing data:", err)
		return
	}
	b.activeProjectID = ""
	if projects := b.store.Projects(); len(projects) > 0 {
		b.activeProjectID = projects[0].ID
	}
}
