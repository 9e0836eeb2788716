package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/flattrack/internal/app/store/users"
	"github.com/dalemusser/flattrack/internal/app/system/indexes"
	"github.com/dalemusser/flattrack/internal/domain/models"
	"github.com/dalemusser/flattrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_Admin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	created, err := store.Create(ctx, models.User{
		FullName: "Admin User",
		Email:    "Admin@Example.com",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.EmailCI != "admin@example.com" {
		t.Errorf("EmailCI: got %q, want folded email", created.EmailCI)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if created.Status != "active" {
		t.Errorf("expected status 'active', got %q", created.Status)
	}
}

func TestStore_Create_RejectsBadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	_, err := store.Create(ctx, models.User{
		FullName: "Bad Role",
		Email:    "bad@example.com",
		Role:     "manager",
	})
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := userstore.New(db)

	if _, err := store.Create(ctx, models.User{
		FullName: "First",
		Email:    "dup@example.com",
		Role:     "office",
	}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same address with different casing must hit the unique index.
	_, err := store.Create(ctx, models.User{
		FullName: "Second",
		Email:    "DUP@example.com",
		Role:     "office",
	})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	created, err := store.Create(ctx, models.User{
		FullName: "Casey",
		Email:    "Casey@Example.com",
		Role:     "salesperson",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "cAsEy@exAmple.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got wrong user: %v", got.ID)
	}

	if _, err := store.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_List_ByRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	mustCreate := func(name, email, role string) {
		t.Helper()
		if _, err := store.Create(ctx, models.User{FullName: name, Email: email, Role: role}); err != nil {
			t.Fatalf("Create %s: %v", email, err)
		}
	}
	mustCreate("Zara", "zara@example.com", "salesperson")
	mustCreate("Alex", "alex@example.com", "salesperson")
	mustCreate("Olive", "olive@example.com", "office")

	sales, err := store.List(ctx, "salesperson")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("salesperson count: got %d, want 2", len(sales))
	}
	if sales[0].FullName != "Alex" || sales[1].FullName != "Zara" {
		t.Errorf("expected name order Alex, Zara; got %q, %q", sales[0].FullName, sales[1].FullName)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all count: got %d, want 3", len(all))
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	created, err := store.Create(ctx, models.User{
		FullName: "Before",
		Email:    "update@example.com",
		Role:     "office",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	name := "After"
	role := "salesperson"
	updated, err := store.Update(ctx, created.ID, userstore.Update{
		FullName: &name,
		Role:     &role,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.FullName != "After" || updated.Role != "salesperson" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Email != "update@example.com" {
		t.Errorf("untouched field changed: %q", updated.Email)
	}

	badRole := "intern"
	if _, err := store.Update(ctx, created.ID, userstore.Update{Role: &badRole}); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	created, err := store.Create(ctx, models.User{
		FullName: "Doomed",
		Email:    "doomed@example.com",
		Role:     "office",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted count: got %d, want 1", n)
	}

	if _, err := store.GetByID(ctx, created.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments after delete, got %v", err)
	}
}
