package board

import "github.com/kidandcat/kanban/internal/model"

// DragSession tracks the single issue being dragged, if any. It is a
// two-state machine: idle, or dragging one issue id. Starting a new
// drag while one is active overwrites the tracked id.
type DragSession struct {
	issueID string
}

// Start begins a drag for the given issue.
func (d *DragSession) Start(id string) {
	d.issueID = id
}

// End clears the session unconditionally, whether the drop landed or
// the drag was cancelled.
func (d *DragSession) End() {
	d.issueID = ""
}

// Dragging reports the tracked issue id while a drag is in flight.
func (d *DragSession) Dragging() (string, bool) {
	return d.issueID, d.issueID != ""
}

// Drop commits the tracked issue to the given status column and ends
// the session. Dropping with no active drag is a no-op.
func (d *DragSession) Drop(c *Controller, status model.Status) (model.Issue, bool, error) {
	id, ok := d.Dragging()
	if !ok {
		return model.Issue{}, false, nil
	}
	d.End()
	issue, err := c.MoveIssue(id, status)
	if err != nil {
		return model.Issue{}, false, err
	}
	return issue, true, nil
}
