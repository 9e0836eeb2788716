package scheduling

import (
	"errors"
	"testing"
)

// A 500px-tall grid at origin (0, 0): hourHeight = 50px.
func newTestController(g *Grid) *DragController {
	return NewDragController(g, Rect{X: 0, Y: 0, W: 300, H: 500})
}

func TestDrag_CommitInsideGrid(t *testing.T) {
	g := NewGrid()
	c := newTestController(g)

	c.PointerDown("a", 10, 10)
	c.PointerMove(50, 130)
	if err := c.PointerUp(50, 130); err != nil {
		t.Fatalf("PointerUp: %v", err)
	}

	// Card top = 130 - 10 = 120px -> 144 raw minutes -> snapped 120.
	if s, ok := g.Placement("a"); !ok || s != 120 {
		t.Errorf("placement = (%d, %v), want (120, true)", s, ok)
	}
	if c.Dragging() {
		t.Error("session still active after release")
	}
}

func TestDrag_ReleaseOutsideRemovesPlacement(t *testing.T) {
	g := NewGrid()
	mustPlace(t, g, "a", 120)
	c := newTestController(g)

	c.PointerDown("a", 0, 0)
	c.PointerMove(400, 250) // right of the grid
	if err := c.PointerUp(400, 250); err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
	if _, ok := g.Placement("a"); ok {
		t.Error("placement survived a drop outside the grid")
	}
}

func TestDrag_CollisionSurfacedAndPriorKept(t *testing.T) {
	g := NewGrid()
	mustPlace(t, g, "a", 120)
	mustPlace(t, g, "b", 360)
	c := newTestController(g)

	// Drag b onto a's slot.
	c.PointerDown("b", 0, 0)
	err := c.PointerUp(50, 120)
	if !errors.Is(err, ErrSlotOccupied) {
		t.Fatalf("PointerUp onto occupied slot = %v, want ErrSlotOccupied", err)
	}
	if s, ok := g.Placement("b"); !ok || s != 360 {
		t.Errorf("b placement = (%d, %v), want (360, true)", s, ok)
	}
	if c.Dragging() {
		t.Error("session survives a rejected placement")
	}
}

func TestDrag_RedropOwnSlotSucceeds(t *testing.T) {
	g := NewGrid()
	mustPlace(t, g, "a", 120)
	c := newTestController(g)

	c.PointerDown("a", 0, 0)
	if err := c.PointerUp(50, 120); err != nil {
		t.Errorf("re-drop on own slot = %v, want success", err)
	}
	if s, _ := g.Placement("a"); s != 120 {
		t.Errorf("placement moved to %d, want 120", s)
	}
}

func TestDrag_PreviewIsIdempotent(t *testing.T) {
	g := NewGrid()
	c := newTestController(g)

	c.PointerDown("a", 5, 20)
	c.PointerMove(100, 240)
	first, _ := c.State()
	c.PointerMove(100, 240)
	second, _ := c.State()

	if first != second {
		t.Errorf("recomputed drag state differs: %+v vs %+v", first, second)
	}
	if !first.OverGrid {
		t.Error("cursor inside bounds not flagged OverGrid")
	}
	if len(g.Placements()) != 0 {
		t.Error("pointer move mutated the placement map")
	}
}

func TestDrag_PointerDownWhileDraggingIgnored(t *testing.T) {
	g := NewGrid()
	c := newTestController(g)

	c.PointerDown("a", 0, 0)
	c.PointerDown("b", 0, 0)
	st, _ := c.State()
	if st.ProjectID != "a" {
		t.Errorf("active session is %q, want the original project", st.ProjectID)
	}
}

func TestDrag_OffsetShiftsSnap(t *testing.T) {
	g := NewGrid()
	c := newTestController(g)

	// Grabbed 60px into the card: cursor at y=180 puts the card top at
	// 120px, which snaps to 120 minutes.
	c.PointerDown("a", 0, 60)
	if err := c.PointerUp(50, 180); err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
	if s, _ := g.Placement("a"); s != 120 {
		t.Errorf("placement = %d, want 120", s)
	}
}
