package emailtemplates_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/flattrack/internal/app/features/emailtemplates"
	"github.com/dalemusser/flattrack/internal/domain/models"
	"github.com/dalemusser/flattrack/internal/testutil"
	"go.uber.org/zap"
)

func TestServeGetByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := emailtemplates.NewHandler(db, zap.NewNop())

	fx.CreateEmailTemplate(ctx, models.SiteVisitBookingTemplate,
		"Your site visit", "Hi {ClientName}")

	req := testutil.WithChiURLParam(
		testutil.NewAuthenticatedRequest("GET", "/api/email-templates/by-name/SITE VISIT BOOKING", testutil.OfficeUser()),
		"name", models.SiteVisitBookingTemplate)
	rec := testutil.NewRecorder()

	h.ServeGetByName(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Your site visit")
}

func TestServeGetByName_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := emailtemplates.NewHandler(db, zap.NewNop())

	req := testutil.WithChiURLParam(
		testutil.NewAuthenticatedRequest("GET", "/api/email-templates/by-name/NOPE", testutil.OfficeUser()),
		"name", "NOPE")
	rec := testutil.NewRecorder()

	h.ServeGetByName(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestCreateSanitizesBody(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := emailtemplates.NewHandler(db, zap.NewNop())

	body := `{"name":"WELCOME","subject":"hi","body":"<b>ok</b><script>bad()</script>"}`
	req := testutil.WithUser(testutil.NewJSONRequest("POST", "/api/email-templates", body), testutil.AdminUser())
	rec := testutil.NewRecorder()

	h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusCreated)

	var created models.EmailTemplate
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if created.Body != "<b>ok</b>" {
		t.Errorf("body not sanitized: %q", created.Body)
	}
}

func TestUpdateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := emailtemplates.NewHandler(db, zap.NewNop())

	tpl := fx.CreateEmailTemplate(ctx, "DRAFT", "old", "old body")

	body := `{"name":"DRAFT","subject":"new subject","body":"new body"}`
	req := testutil.WithChiURLParam(
		testutil.WithUser(testutil.NewJSONRequest("PUT", "/api/email-templates/"+tpl.ID.Hex(), body), testutil.AdminUser()),
		"id", tpl.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "new subject")

	req = testutil.NewAuthenticatedRequest("GET", "/api/email-templates", testutil.OfficeUser())
	rec = testutil.NewRecorder()
	h.ServeList(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "DRAFT")
}
