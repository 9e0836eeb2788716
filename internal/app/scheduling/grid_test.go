package scheduling

import (
	"errors"
	"math/rand"
	"testing"
)

func TestMinutesForY_SnapAndClamp(t *testing.T) {
	g := NewGrid()

	// 500px grid: hourHeight = 50px, y=120 -> 144 raw minutes -> 120.
	if got := g.MinutesForY(120, 500); got != 120 {
		t.Errorf("MinutesForY(120, 500) = %d, want 120", got)
	}

	// Always a multiple of 60 within [0, MaxStartMinutes].
	for y := -200.0; y <= 700; y += 7 {
		got := g.MinutesForY(y, 500)
		if got%SlotMinutes != 0 {
			t.Fatalf("MinutesForY(%v, 500) = %d, not a slot multiple", y, got)
		}
		if got < 0 || got > MaxStartMinutes {
			t.Fatalf("MinutesForY(%v, 500) = %d, outside [0, %d]", y, got, MaxStartMinutes)
		}
	}

	if got := g.MinutesForY(100, 0); got != 0 {
		t.Errorf("MinutesForY with zero height = %d, want 0", got)
	}
}

func TestPlace_RejectsOverlap(t *testing.T) {
	g := NewGrid()
	if err := g.Place("a", 120); err != nil {
		t.Fatalf("Place(a, 120): %v", err)
	}

	// Overlapping starts in either direction.
	for _, start := range []int{60, 120, 180} {
		if err := g.Place("b", start); !errors.Is(err, ErrSlotOccupied) {
			t.Errorf("Place(b, %d) = %v, want ErrSlotOccupied", start, err)
		}
	}
	if _, ok := g.Placement("b"); ok {
		t.Error("rejected placement must not appear in the map")
	}

	// Adjacent half-open intervals do not collide.
	if err := g.Place("b", 240); err != nil {
		t.Errorf("Place(b, 240) = %v, want success", err)
	}
	if err := g.Place("c", 0); err != nil {
		t.Errorf("Place(c, 0) = %v, want success", err)
	}
}

func TestPlace_RejectionKeepsPriorPlacement(t *testing.T) {
	g := NewGrid()
	mustPlace(t, g, "a", 0)
	mustPlace(t, g, "b", 240)

	// Moving b onto a collides; b's prior slot must survive.
	if err := g.Place("b", 60); !errors.Is(err, ErrSlotOccupied) {
		t.Fatalf("Place(b, 60) = %v, want ErrSlotOccupied", err)
	}
	if s, ok := g.Placement("b"); !ok || s != 240 {
		t.Errorf("b placement = (%d, %v), want (240, true)", s, ok)
	}
}

func TestPlace_RedropOwnSlot(t *testing.T) {
	g := NewGrid()
	mustPlace(t, g, "a", 180)
	if err := g.Place("a", 180); err != nil {
		t.Errorf("re-dropping a project on its own slot = %v, want success", err)
	}
}

func TestUnplace(t *testing.T) {
	g := NewGrid()
	mustPlace(t, g, "a", 60)
	g.Unplace("a")
	if _, ok := g.Placement("a"); ok {
		t.Error("project still placed after Unplace")
	}
	g.Unplace("a") // absent: no-op
}

func TestPlacements_NeverOverlap_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 100; trial++ {
		g := NewGrid()
		for i := 0; i < 20; i++ {
			id := string(rune('a' + i%26))
			start := rng.Intn(MaxStartMinutes/SlotMinutes+1) * SlotMinutes
			_ = g.Place(id, start) // collisions rejected per the contract
		}

		placed := g.Placements()
		for a, sa := range placed {
			for b, sb := range placed {
				if a == b {
					continue
				}
				if sa < sb+VisitMinutes && sb < sa+VisitMinutes {
					t.Fatalf("trial %d: %s@%d overlaps %s@%d", trial, a, sa, b, sb)
				}
			}
		}
	}
}

func TestOnChange_Events(t *testing.T) {
	g := NewGrid()
	var events []PlacementEvent
	g.OnChange(func(ev PlacementEvent) { events = append(events, ev) })

	mustPlace(t, g, "a", 0)
	_ = g.Place("b", 60) // rejected: no event
	g.Unplace("a")

	want := []PlacementEvent{
		{ProjectID: "a", StartMinutes: 0, Placed: true},
		{ProjectID: "a", Placed: false},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestFormatRange(t *testing.T) {
	cases := []struct {
		start      int
		wantStart  string
		wantFinish string
	}{
		{0, "7:00am", "9:00am"},
		{120, "9:00am", "11:00am"},
		{300, "12:00pm", "2:00pm"},
		{420, "2:00pm", "4:00pm"},
	}
	for _, c := range cases {
		gotStart, gotFinish := FormatRange(c.start)
		if gotStart != c.wantStart || gotFinish != c.wantFinish {
			t.Errorf("FormatRange(%d) = (%q, %q), want (%q, %q)",
				c.start, gotStart, gotFinish, c.wantStart, c.wantFinish)
		}
	}
}

func mustPlace(t *testing.T, g *Grid, id string, start int) {
	t.Helper()
	if err := g.Place(id, start); err != nil {
		t.Fatalf("Place(%s, %d): %v", id, start, err)
	}
}
