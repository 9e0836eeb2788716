// internal/app/scheduling/drag.go
package scheduling

// Rect is a screen-space rectangle, used for the grid's bounding box.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// DragState is the ephemeral state of an in-progress drag session.
type DragState struct {
	ProjectID string

	// Pointer offset within the dragged card, captured on pointer down.
	OffsetX, OffsetY float64

	// Live cursor position.
	CursorX, CursorY float64

	// Whether the cursor is currently over the grid rectangle.
	OverGrid bool

	// Live-snapped candidate slot for preview highlighting. Only
	// meaningful while OverGrid is true.
	PreviewStart int
}

// DragController bridges continuous pointer coordinates to discrete grid
// operations. States are Idle (no session) and Dragging (one session);
// exactly one session may be active at a time, and a pointer-down while
// already dragging is ignored.
type DragController struct {
	grid   *Grid
	bounds Rect
	st     *DragState
}

// NewDragController creates a controller over the grid with the grid's
// screen rectangle.
func NewDragController(grid *Grid, bounds Rect) *DragController {
	return &DragController{grid: grid, bounds: bounds}
}

// SetBounds updates the grid rectangle (e.g. after a window resize).
func (c *DragController) SetBounds(r Rect) { c.bounds = r }

// Dragging reports whether a drag session is active.
func (c *DragController) Dragging() bool { return c.st != nil }

// State returns a copy of the live drag state, if any.
func (c *DragController) State() (DragState, bool) {
	if c.st == nil {
		return DragState{}, false
	}
	return *c.st, true
}

// PointerDown begins a drag session for the project, capturing the
// pointer offset within the card.
func (c *DragController) PointerDown(projectID string, offsetX, offsetY float64) {
	if c.st != nil {
		return
	}
	c.st = &DragState{ProjectID: projectID, OffsetX: offsetX, OffsetY: offsetY}
}

// PointerMove updates the live cursor position, the grid-containment
// flag, and the snapped preview slot. It never mutates the placement
// map, and recomputing from the same cursor position yields the same
// preview.
func (c *DragController) PointerMove(x, y float64) {
	if c.st == nil {
		return
	}
	c.st.CursorX = x
	c.st.CursorY = y
	c.st.OverGrid = c.bounds.Contains(x, y)
	if c.st.OverGrid {
		c.st.PreviewStart = c.snapAt(c.st, y)
	}
}

// PointerUp ends the session. A release inside the grid attempts a
// placement (a collision is returned and prior placements are kept); a
// release outside removes the project from the grid. The session ends
// either way.
func (c *DragController) PointerUp(x, y float64) error {
	if c.st == nil {
		return nil
	}
	st := c.st
	c.st = nil

	if !c.bounds.Contains(x, y) {
		c.grid.Unplace(st.ProjectID)
		return nil
	}
	return c.grid.Place(st.ProjectID, c.snapAt(st, y))
}

// snapAt maps a cursor Y to the slot under the dragged card's top edge,
// accounting for where inside the card the user grabbed it.
func (c *DragController) snapAt(st *DragState, cursorY float64) int {
	cardTop := cursorY - st.OffsetY
	return c.grid.MinutesForY(cardTop-c.bounds.Y, c.bounds.H)
}
