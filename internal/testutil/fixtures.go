package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/flattrack/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProject inserts a test project with sensible defaults. Pass a
// mutate func to tweak fields before insertion.
func (f *Fixtures) CreateProject(ctx context.Context, name string, mutate ...func(*models.Project)) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:         primitive.NewObjectID(),
		Name:       name,
		ClientName: "Test Client",
		Street:     "12 Example St",
		Suburb:     "Testville",
		CostCents:  12500000,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, m := range mutate {
		m(&p)
	}
	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("create project fixture: %v", err)
	}
	return p
}

// CreateUser inserts a test user with the given email and role.
func (f *Fixtures) CreateUser(ctx context.Context, email, role string, mutate ...func(*models.User)) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  "Test User",
		Email:     email,
		EmailCI:   strings.ToLower(email),
		Role:      role,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, m := range mutate {
		m(&u)
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create user fixture: %v", err)
	}
	return u
}

// CreatePosition inserts a test position with the given name.
func (f *Fixtures) CreatePosition(ctx context.Context, name string) models.Position {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Position{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("positions").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("create position fixture: %v", err)
	}
	return p
}

// CreateEmailTemplate inserts a test email template.
func (f *Fixtures) CreateEmailTemplate(ctx context.Context, name, subject, body string) models.EmailTemplate {
	f.t.Helper()

	now := time.Now().UTC()
	tpl := models.EmailTemplate{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Subject:   subject,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("email_templates").InsertOne(ctx, tpl); err != nil {
		f.t.Fatalf("create email template fixture: %v", err)
	}
	return tpl
}
