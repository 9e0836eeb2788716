package scheduling

import (
	"errors"
	"testing"

	"github.com/dalemusser/flattrack/internal/domain/models"
)

func TestListCandidates_FiltersByVisitStatus(t *testing.T) {
	p := NewPlanner()
	projects := []models.Project{
		{Name: "one", SiteVisitStatus: models.SiteVisitNotComplete},
		{Name: "two", SiteVisitStatus: models.SiteVisitBooked},
		{Name: "three"}, // empty status defaults to Not Complete
		{Name: "four", SiteVisitStatus: models.SiteVisitComplete},
	}

	got := p.ListCandidates(projects)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].Name != "one" || got[1].Name != "three" {
		t.Errorf("candidates = [%s, %s], want [one, three]", got[0].Name, got[1].Name)
	}

	// Repeated calls on the same input are stable.
	again := p.ListCandidates(projects)
	for i := range got {
		if got[i].Name != again[i].Name {
			t.Errorf("candidate order changed between calls at index %d", i)
		}
	}
}

func TestCommitGroup(t *testing.T) {
	p := NewPlanner()

	p.BeginTagging()
	if p.State() != StateTagging {
		t.Fatalf("state = %v, want tagging", p.State())
	}

	// Empty selection is rejected.
	if _, err := p.CommitGroup(); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("CommitGroup with empty selection = %v, want ErrEmptySelection", err)
	}

	p.ToggleSelection("p1")
	p.ToggleSelection("p2")
	p.ToggleSelection("p2") // toggled off
	p.ToggleSelection("p3")

	g, err := p.CommitGroup()
	if err != nil {
		t.Fatalf("CommitGroup: %v", err)
	}
	if g.Name != "Group 1" {
		t.Errorf("group name = %q, want \"Group 1\"", g.Name)
	}
	if g.Color != Palette[0] {
		t.Errorf("group color = %q, want first palette entry", g.Color)
	}
	if g.ID == "" {
		t.Error("group id is empty")
	}
	ids := g.MemberIDs()
	if len(ids) != 2 || ids[0] != "p1" || ids[1] != "p3" {
		t.Errorf("members = %v, want [p1 p3]", ids)
	}
	if p.State() != StateGroupActive {
		t.Errorf("state = %v, want group_active", p.State())
	}
}

func TestCommitGroup_SingleInstanceInvariant(t *testing.T) {
	p := NewPlanner()
	p.BeginTagging()
	p.ToggleSelection("p1")
	first, err := p.CommitGroup()
	if err != nil {
		t.Fatalf("CommitGroup: %v", err)
	}

	// A second commit must fail and leave the first group untouched,
	// even if tagging was somehow re-entered.
	if _, err := p.CommitGroup(); !errors.Is(err, ErrGroupLimit) {
		t.Errorf("second CommitGroup = %v, want ErrGroupLimit", err)
	}
	if p.Group() != first {
		t.Error("existing group changed by rejected commit")
	}
	if !first.Contains("p1") {
		t.Error("existing membership changed by rejected commit")
	}
}

func TestBeginTagging_BlockedWhileGroupActive(t *testing.T) {
	p := NewPlanner()
	p.BeginTagging()
	p.ToggleSelection("p1")
	if _, err := p.CommitGroup(); err != nil {
		t.Fatalf("CommitGroup: %v", err)
	}

	p.BeginTagging() // silent no-op at the one-group limit
	if p.State() != StateGroupActive {
		t.Errorf("state = %v, want group_active after blocked BeginTagging", p.State())
	}
}

func TestToggleSelection_IgnoresGroupedProjects(t *testing.T) {
	p := NewPlanner()
	p.BeginTagging()
	p.ToggleSelection("p1")
	if _, err := p.CommitGroup(); err != nil {
		t.Fatalf("CommitGroup: %v", err)
	}
	p.ResetGroup()

	// p1 was released by the reset, so it is selectable again.
	p.BeginTagging()
	p.ToggleSelection("p1")
	if !p.Selected("p1") {
		t.Error("project not selectable after group reset")
	}
}

func TestCancel(t *testing.T) {
	p := NewPlanner()
	p.BeginTagging()
	p.ToggleSelection("p1")
	p.Cancel()
	if p.State() != StateNoGroup {
		t.Errorf("state = %v, want no_group after cancel", p.State())
	}
	if p.SelectionCount() != 0 {
		t.Errorf("selection count = %d, want 0 after cancel", p.SelectionCount())
	}
}

func TestResetGroup_SequentialNaming(t *testing.T) {
	p := NewPlanner()

	p.BeginTagging()
	p.ToggleSelection("p1")
	g1, _ := p.CommitGroup()
	p.ResetGroup()

	p.BeginTagging()
	p.ToggleSelection("p2")
	g2, err := p.CommitGroup()
	if err != nil {
		t.Fatalf("CommitGroup after reset: %v", err)
	}
	if g1.Name != "Group 1" || g2.Name != "Group 2" {
		t.Errorf("group names = %q, %q, want Group 1, Group 2", g1.Name, g2.Name)
	}
	if g2.Color != Palette[1] {
		t.Errorf("second group color = %q, want second palette entry", g2.Color)
	}
}
