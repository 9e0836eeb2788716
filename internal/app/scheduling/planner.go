// internal/app/scheduling/planner.go
package scheduling

import (
	"errors"
	"strconv"

	"github.com/dalemusser/flattrack/internal/domain/models"
	"github.com/google/uuid"
)

// Planner state machine.
type State int

const (
	StateNoGroup State = iota
	StateTagging
	StateGroupActive
)

func (s State) String() string {
	switch s {
	case StateTagging:
		return "tagging"
	case StateGroupActive:
		return "group_active"
	default:
		return "no_group"
	}
}

var (
	// ErrEmptySelection is returned by CommitGroup when no projects are
	// selected.
	ErrEmptySelection = errors.New("no projects selected")

	// ErrGroupLimit is returned by CommitGroup while a group already
	// exists. The model defends the one-group invariant independently of
	// the UI disabling the action.
	ErrGroupLimit = errors.New("a group already exists")
)

// Palette is the fixed group color palette, assigned by creation order.
var Palette = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#4699c9", // teal
}

// Group is a named, colored, fixed-membership set of projects selected
// together for one scheduling session. Membership is immutable after
// CommitGroup.
type Group struct {
	ID    string
	Name  string
	Color string

	members map[string]struct{}
	order   []string
}

// Contains reports whether the project belongs to the group.
func (g *Group) Contains(projectID string) bool {
	_, ok := g.members[projectID]
	return ok
}

// MemberIDs returns the member project ids in selection order.
func (g *Group) MemberIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Planner maintains the candidate pool, the pending selection, and the
// single active group. Not safe for concurrent use.
type Planner struct {
	state         State
	group         *Group
	selection     map[string]struct{}
	selectionSeq  []string
	groupsCreated int
}

// NewPlanner returns a planner in the NoGroup state.
func NewPlanner() *Planner {
	return &Planner{selection: make(map[string]struct{})}
}

// State returns the current planner state.
func (p *Planner) State() State { return p.state }

// Group returns the active group, or nil.
func (p *Planner) Group() *Group { return p.group }

// ListCandidates filters projects to those whose site-visit status reads
// "Not Complete" (the empty field defaults there). Input order is
// preserved so repeated calls on the same slice are stable.
func (p *Planner) ListCandidates(projects []models.Project) []models.Project {
	var out []models.Project
	for _, proj := range projects {
		if proj.VisitStatus() == models.SiteVisitNotComplete {
			out = append(out, proj)
		}
	}
	return out
}

// BeginTagging enters selection mode with a fresh selection set. It is a
// silent no-op while a group exists.
func (p *Planner) BeginTagging() {
	if p.state == StateGroupActive {
		return
	}
	p.selection = make(map[string]struct{})
	p.selectionSeq = nil
	p.state = StateTagging
}

// ToggleSelection adds or removes a project from the pending selection.
// No-op outside tagging mode, and no-op for projects already captured in
// the active group.
func (p *Planner) ToggleSelection(projectID string) {
	if p.state != StateTagging {
		return
	}
	if p.group != nil && p.group.Contains(projectID) {
		return
	}
	if _, ok := p.selection[projectID]; ok {
		delete(p.selection, projectID)
		for i, id := range p.selectionSeq {
			if id == projectID {
				p.selectionSeq = append(p.selectionSeq[:i], p.selectionSeq[i+1:]...)
				break
			}
		}
		return
	}
	p.selection[projectID] = struct{}{}
	p.selectionSeq = append(p.selectionSeq, projectID)
}

// Selected reports whether the project is in the pending selection.
func (p *Planner) Selected(projectID string) bool {
	_, ok := p.selection[projectID]
	return ok
}

// SelectionCount returns the size of the pending selection.
func (p *Planner) SelectionCount() int { return len(p.selection) }

// CommitGroup promotes the pending selection into the active group with
// the next sequential name ("Group N") and a palette color assigned by
// creation order. The existing group is never disturbed on failure.
func (p *Planner) CommitGroup() (*Group, error) {
	if p.group != nil {
		return nil, ErrGroupLimit
	}
	if len(p.selection) == 0 {
		return nil, ErrEmptySelection
	}

	members := make(map[string]struct{}, len(p.selection))
	for id := range p.selection {
		members[id] = struct{}{}
	}
	order := make([]string, len(p.selectionSeq))
	copy(order, p.selectionSeq)

	g := &Group{
		ID:      uuid.NewString(),
		Name:    groupName(p.groupsCreated + 1),
		Color:   Palette[p.groupsCreated%len(Palette)],
		members: members,
		order:   order,
	}
	p.group = g
	p.groupsCreated++
	p.selection = make(map[string]struct{})
	p.selectionSeq = nil
	p.state = StateGroupActive
	return g, nil
}

// Cancel abandons tagging mode without creating a group.
func (p *Planner) Cancel() {
	if p.state != StateTagging {
		return
	}
	p.selection = make(map[string]struct{})
	p.selectionSeq = nil
	p.state = StateNoGroup
}

// ResetGroup discards the active group and returns to NoGroup so a new
// planning session can start. The reference workflow had no exit from
// the active-group state; this transition is a deliberate addition.
func (p *Planner) ResetGroup() {
	p.group = nil
	p.selection = make(map[string]struct{})
	p.selectionSeq = nil
	p.state = StateNoGroup
}

func groupName(n int) string {
	return "Group " + strconv.Itoa(n)
}
