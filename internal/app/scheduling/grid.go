// internal/app/scheduling/grid.go

// Package scheduling implements the site-visit planning core: the
// candidate/group model, the time-slot grid with its no-overlap
// invariant, and the drag interaction state machine. It is pure
// in-memory state with no HTTP or storage dependencies; the sitevisits
// feature owns an instance and serializes access to it.
package scheduling

import (
	"errors"
	"fmt"
	"math"
)

// Grid geometry. The planning day runs 7:00 to 16:00 (540 minutes),
// placements snap to the top of an hour, and every visit occupies 120
// minutes. The pixel axis is divided into ten hour rows to match the
// planner's rendered layout, so hourHeight = gridHeight / 10.
const (
	DayStartHour = 7
	DayMinutes   = 540
	SlotMinutes  = 60
	VisitMinutes = 120

	// MaxStartMinutes is the latest start that still fits a full visit.
	MaxStartMinutes = DayMinutes - VisitMinutes

	hourRows = 10
)

// ErrSlotOccupied is returned by Place when the candidate interval
// overlaps another project's placement. The map is left unchanged;
// callers surface this to the user rather than swallowing it.
var ErrSlotOccupied = errors.New("time slot is already occupied")

// PlacementEvent describes a change to the placement map.
// Placed is false when the project was removed from the grid.
type PlacementEvent struct {
	ProjectID    string
	StartMinutes int
	Placed       bool
}

// Grid owns the placement map for the active group's projects and
// enforces the no-overlap invariant. It is not safe for concurrent use;
// the owning layer serializes access.
type Grid struct {
	placements map[string]int
	onChange   func(PlacementEvent)
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{placements: make(map[string]int)}
}

// OnChange registers a listener invoked after every successful Place or
// Unplace. Pass nil to remove it.
func (g *Grid) OnChange(fn func(PlacementEvent)) {
	g.onChange = fn
}

// MinutesForY linearly maps a vertical pixel coordinate onto the minute
// axis, rounds to the nearest hour slot, and clamps into
// [0, MaxStartMinutes]. It never reports "outside"; whether the pointer
// is over the grid at all is the caller's bounding-box test.
func (g *Grid) MinutesForY(y, gridHeight float64) int {
	if gridHeight <= 0 {
		return 0
	}
	hourHeight := gridHeight / hourRows
	raw := y / hourHeight * float64(SlotMinutes)
	snapped := int(math.Round(raw/float64(SlotMinutes))) * SlotMinutes
	if snapped < 0 {
		return 0
	}
	if snapped > MaxStartMinutes {
		return MaxStartMinutes
	}
	return snapped
}

// IsOccupied reports whether [start, start+VisitMinutes) intersects any
// other project's placed interval. The excluded project is skipped so a
// project can always re-drop onto its own slot.
func (g *Grid) IsOccupied(start int, excludeProjectID string) bool {
	for id, s := range g.placements {
		if id == excludeProjectID {
			continue
		}
		if start < s+VisitMinutes && s < start+VisitMinutes {
			return true
		}
	}
	return false
}

// Place upserts the project's placement at start. On collision it
// returns ErrSlotOccupied and leaves the map untouched, including any
// prior placement of the same project.
func (g *Grid) Place(projectID string, start int) error {
	if g.IsOccupied(start, projectID) {
		return ErrSlotOccupied
	}
	g.placements[projectID] = start
	g.emit(PlacementEvent{ProjectID: projectID, StartMinutes: start, Placed: true})
	return nil
}

// Unplace removes the project from the grid. Removing an absent project
// is a no-op.
func (g *Grid) Unplace(projectID string) {
	if _, ok := g.placements[projectID]; !ok {
		return
	}
	delete(g.placements, projectID)
	g.emit(PlacementEvent{ProjectID: projectID, Placed: false})
}

// Placement returns the project's start minutes, if placed.
func (g *Grid) Placement(projectID string) (int, bool) {
	s, ok := g.placements[projectID]
	return s, ok
}

// Placements returns a copy of the placement map.
func (g *Grid) Placements() map[string]int {
	out := make(map[string]int, len(g.placements))
	for id, s := range g.placements {
		out[id] = s
	}
	return out
}

// Clear empties the placement map without emitting events. Used when the
// active group is reset.
func (g *Grid) Clear() {
	g.placements = make(map[string]int)
}

func (g *Grid) emit(ev PlacementEvent) {
	if g.onChange != nil {
		g.onChange(ev)
	}
}

// FormatRange converts a start offset to wall-clock labels for the
// start and end of the visit, e.g. FormatRange(120) = ("9:00am", "11:00am").
func FormatRange(start int) (string, string) {
	return formatClock(DayStartHour*60 + start),
		formatClock(DayStartHour*60 + start + VisitMinutes)
}

func formatClock(totalMinutes int) string {
	hour24 := totalMinutes / 60 % 24
	min := totalMinutes % 60
	suffix := "am"
	if hour24 >= 12 {
		suffix = "pm"
	}
	hour12 := hour24 % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d%s", hour12, min, suffix)
}
