package projectstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/flattrack/internal/domain/models"
	"github.com/dalemusser/flattrack/internal/testutil"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateAndGetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	created, err := store.Create(ctx, models.Project{
		Name:       "Smith Granny Flat",
		ClientName: "John Smith",
		Street:     "4 Waratah Ave",
		Suburb:     "Penrith",
		CostCents:  14500000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("Create did not assign an ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("Create did not set timestamps")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Smith Granny Flat" || got.Suburb != "Penrith" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestCreateSanitizesNotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	created, err := store.Create(ctx, models.Project{
		Name:  "Notes Project",
		Notes: `<p>fine</p><script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Notes != "<p>fine</p>" {
		t.Errorf("notes not sanitized: %q", created.Notes)
	}
}

func TestListFiltersBySiteVisitStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	fx.CreateProject(ctx, "no status") // absent field counts as Not Complete
	fx.CreateProject(ctx, "explicit", func(p *models.Project) {
		p.SiteVisitStatus = models.SiteVisitNotComplete
	})
	fx.CreateProject(ctx, "booked", func(p *models.Project) {
		p.SiteVisitStatus = models.SiteVisitBooked
	})

	pending, err := store.List(ctx, ListFilter{SiteVisitStatus: models.SiteVisitNotComplete})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending count: got %d, want 2", len(pending))
	}

	booked, err := store.List(ctx, ListFilter{SiteVisitStatus: models.SiteVisitBooked})
	if err != nil {
		t.Fatalf("List booked: %v", err)
	}
	if len(booked) != 1 || booked[0].Name != "booked" {
		t.Fatalf("booked list wrong: %+v", booked)
	}
}

func TestListFiltersByOnHold(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	fx.CreateProject(ctx, "active")
	fx.CreateProject(ctx, "held", func(p *models.Project) { p.OnHold = true })

	hold := true
	held, err := store.List(ctx, ListFilter{OnHold: &hold})
	if err != nil {
		t.Fatalf("List held: %v", err)
	}
	if len(held) != 1 || held[0].Name != "held" {
		t.Fatalf("held list wrong: %+v", held)
	}

	hold = false
	active, err := store.List(ctx, ListFilter{OnHold: &hold})
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if len(active) != 1 || active[0].Name != "active" {
		t.Fatalf("active list wrong: %+v", active)
	}
}

func TestReplacePreservesCreatedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	created, err := store.Create(ctx, models.Project{Name: "Before"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := store.Replace(ctx, created.ID, models.Project{
		Name:   "After",
		Suburb: "Blacktown",
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("Name: got %q, want After", updated.Name)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("Replace changed CreatedAt")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Suburb != "Blacktown" {
		t.Errorf("stored suburb: got %q", got.Suburb)
	}
}

func TestReplace_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	_, err := store.Replace(ctx, primitive.NewObjectID(), models.Project{Name: "ghost"})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	created, err := store.Create(ctx, models.Project{Name: "doomed"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted count: got %d, want 1", n)
	}

	if _, err := store.GetByID(ctx, created.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments after delete, got %v", err)
	}
}

func TestUpdateSiteVisitSchedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	p1 := fx.CreateProject(ctx, "first")
	p2 := fx.CreateProject(ctx, "second")

	matched, err := store.UpdateSiteVisitSchedule(ctx, []ScheduledVisit{
		{ProjectID: p1.ID, Date: "2026-09-14", Period: models.PeriodAM},
		{ProjectID: p2.ID, Date: "2026-09-14", Period: models.PeriodPM},
	})
	if err != nil {
		t.Fatalf("UpdateSiteVisitSchedule: %v", err)
	}
	if matched != 2 {
		t.Fatalf("matched: got %d, want 2", matched)
	}

	got, err := store.GetByID(ctx, p1.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SiteVisitStatus != models.SiteVisitBooked {
		t.Errorf("status: got %q, want Booked", got.SiteVisitStatus)
	}
	if got.SiteVisitScheduledDate != "2026-09-14" || got.SiteVisitScheduledPeriod != models.PeriodAM {
		t.Errorf("schedule: got %q %q", got.SiteVisitScheduledDate, got.SiteVisitScheduledPeriod)
	}

	got2, err := store.GetByID(ctx, p2.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got2.SiteVisitScheduledPeriod != models.PeriodPM {
		t.Errorf("period: got %q, want PM", got2.SiteVisitScheduledPeriod)
	}
}

func TestUpdateSiteVisitSchedule_DefaultsPeriodToAM(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	p := fx.CreateProject(ctx, "defaulted")

	if _, err := store.UpdateSiteVisitSchedule(ctx, []ScheduledVisit{
		{ProjectID: p.ID, Date: "2026-09-15"},
	}); err != nil {
		t.Fatalf("UpdateSiteVisitSchedule: %v", err)
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SiteVisitScheduledPeriod != models.PeriodAM {
		t.Errorf("period: got %q, want AM", got.SiteVisitScheduledPeriod)
	}
}

func TestMarkSiteVisitEmailSent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	p := fx.CreateProject(ctx, "mailed", func(p *models.Project) {
		p.SiteVisitStatus = models.SiteVisitBooked
	})

	if err := store.MarkSiteVisitEmailSent(ctx, p.ID); err != nil {
		t.Fatalf("MarkSiteVisitEmailSent: %v", err)
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SiteVisitStatus != models.SiteVisitEmailSent {
		t.Errorf("status: got %q, want Email Sent", got.SiteVisitStatus)
	}
}

func TestCreateMany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	n, err := store.CreateMany(ctx, []models.Project{
		{Name: "Import A", Suburb: "Ryde"},
		{Name: "Import B", Suburb: "Epping"},
	})
	if err != nil {
		t.Fatalf("CreateMany: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted: got %d, want 2", n)
	}

	all, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("list count: got %d, want 2", len(all))
	}
	for _, p := range all {
		if p.ID.IsZero() || p.CreatedAt.IsZero() {
			t.Errorf("imported project missing ID or timestamps: %+v", p)
		}
	}
}

func TestGetByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	p1 := fx.CreateProject(ctx, "one")
	fx.CreateProject(ctx, "two")
	p3 := fx.CreateProject(ctx, "three")

	got, err := store.GetByIDs(ctx, []primitive.ObjectID{p1.ID, p3.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("count: got %d, want 2", len(got))
	}

	empty, err := store.GetByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetByIDs empty: %v", err)
	}
	if empty != nil {
		t.Fatalf("expected nil for empty id list, got %+v", empty)
	}
}
