package bootstrap

import (
	"testing"

	"github.com/dalemusser/flattrack/internal/domain/models"
	"github.com/dalemusser/flattrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestEnsureAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	deps := DBDeps{FlatTrackMongoDatabase: db}

	if err := ensureAdmin(ctx, deps, "admin@test.com", "first-run-secret", zap.NewNop()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email_ci": "admin@test.com"}).Decode(&user); err != nil {
		t.Fatalf("find created admin: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("role = %q, want admin", user.Role)
	}
	if user.Status != "active" {
		t.Errorf("status = %q, want active", user.Status)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("first-run-secret")); err != nil {
		t.Error("stored hash does not match the configured password")
	}
}

func TestEnsureAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	existing := fx.CreateUser(ctx, "office@test.com", "office")

	deps := DBDeps{FlatTrackMongoDatabase: db}
	if err := ensureAdmin(ctx, deps, "office@test.com", "unused", zap.NewNop()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("role = %q, want admin", user.Role)
	}
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	fx.CreateUser(ctx, "admin@test.com", "admin")

	deps := DBDeps{FlatTrackMongoDatabase: db}
	if err := ensureAdmin(ctx, deps, "admin@test.com", "unused", zap.NewNop()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{"email_ci": "admin@test.com"})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 1 {
		t.Errorf("user count = %d, want 1", n)
	}
}
