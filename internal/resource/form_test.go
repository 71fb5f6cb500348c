package resource

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"peopleops.org/internal/api"
	"peopleops.org/internal/apitest"
	"peopleops.org/internal/config"
	"peopleops.org/internal/session"
)

var vendorEndpoint = Endpoint{
	Name:          "vendors",
	Path:          "/api/vendor",
	EnvelopeKey:   "vendors",
	CanDeactivate: true,
}

type vendorRec struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Status  string `json:"status,omitempty"`
}

func (v vendorRec) RecordID() string { return v.ID }

func vendorDefaults() map[string]any {
	return map[string]any{"name": "", "email": "", "phone": "", "company": ""}
}

func formFixture(t *testing.T) (*apitest.Server, *ListController[vendorRec], *FormController[vendorRec]) {
	t.Helper()
	fake := apitest.NewServer()
	fake.AddAccount("alice", "alice@example.org", "secret", "Manager", "Alice")
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.BaseURL = srv.URL
	cfg.RatePerSec = 1000
	cfg.RateBurst = 1000
	store := session.NewMemory()
	client := api.New(cfg, store)

	var login struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		ID    string `json:"id"`
	}
	body := map[string]string{"usernameOrEmail": "alice", "password": "secret"}
	if err := client.Do(context.Background(), "POST", "/api/auth/login", body, &login); err != nil {
		t.Fatalf("login: %v", err)
	}
	_ = store.Set(session.Session{Token: login.Token, Role: login.Role, User: session.User{ID: login.ID}})

	list := NewList[vendorRec](client, vendorEndpoint)
	form := NewForm(client, list, vendorDefaults())
	return fake, list, form
}

func TestSubmitCreateThenListContainsRecord(t *testing.T) {
	_, list, form := formFixture(t)

	form.BeginCreate()
	form.SetField("name", "Acme")
	form.SetField("email", "sales@acme.test")
	form.SetField("company", "Acme Corp")
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if form.Status() != FormIdle {
		t.Fatalf("expected idle after success, got %v", form.Status())
	}
	if form.EditingID() != "" || form.Field("name") != "" {
		t.Fatalf("draft should be cleared after success")
	}

	items := list.Items()
	if len(items) != 1 {
		t.Fatalf("expected one vendor after refresh, got %d", len(items))
	}
	if items[0].ID == "" {
		t.Fatalf("server did not assign an id")
	}
	if items[0].Name != "Acme" || items[0].Company != "Acme Corp" {
		t.Fatalf("submitted fields lost: %+v", items[0])
	}
}

func TestSubmitUpdateTouchesOnlyEditedRecord(t *testing.T) {
	fake, list, form := formFixture(t)
	fake.Seed("vendors", map[string]any{"name": "Acme", "email": "a@acme.test", "phone": "1", "company": "Acme Corp"})
	otherID := fake.Seed("vendors", map[string]any{"name": "Globex", "email": "g@globex.test", "phone": "2", "company": "Globex Inc"})

	if err := list.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	target := list.Items()[0]

	form.BeginEdit(target)
	if form.EditingID() != target.ID {
		t.Fatalf("editing id not set: %q", form.EditingID())
	}
	if form.Field("name") != "Acme" {
		t.Fatalf("BeginEdit did not copy fields: %v", form.Field("name"))
	}
	form.SetField("phone", "555-0100")
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	items := list.Items()
	if len(items) != 2 {
		t.Fatalf("update must not add or remove records, got %d", len(items))
	}
	updated, _ := list.Find(target.ID)
	if updated.Phone != "555-0100" || updated.Name != "Acme" {
		t.Fatalf("edited record wrong: %+v", updated)
	}
	other, _ := list.Find(otherID)
	if other.Phone != "2" || other.Name != "Globex" {
		t.Fatalf("unrelated record altered: %+v", other)
	}
}

func TestBeginEditThenSubmitIsNoOp(t *testing.T) {
	fake, list, form := formFixture(t)
	fake.Seed("vendors", map[string]any{"name": "Acme", "email": "a@acme.test", "phone": "1", "company": "Acme Corp"})

	if err := list.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	before := list.Items()[0]

	form.BeginEdit(before)
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	after, ok := list.Find(before.ID)
	if !ok {
		t.Fatalf("record vanished")
	}
	if after != before {
		t.Fatalf("no-op edit changed the record: before=%+v after=%+v", before, after)
	}
}

func TestValidationFailurePreservesDraft(t *testing.T) {
	_, _, form := formFixture(t)

	form.BeginCreate()
	form.SetField("email", "no-name@acme.test") // name stays empty; fake rejects it
	err := form.Submit(context.Background())
	if !errors.Is(err, api.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !IsValidation(err) {
		t.Fatalf("IsValidation misclassified %v", err)
	}
	if form.Status() != FormError {
		t.Fatalf("expected error status, got %v", form.Status())
	}
	if form.Message() != "name is required" {
		t.Fatalf("server message lost: %q", form.Message())
	}
	if form.Field("email") != "no-name@acme.test" {
		t.Fatalf("draft must survive a validation failure")
	}

	// Correct and resubmit.
	form.SetField("name", "Acme")
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if form.Status() != FormIdle {
		t.Fatalf("expected idle after recovery, got %v", form.Status())
	}
}

func TestDeactivateIsStatusTransition(t *testing.T) {
	fake, list, form := formFixture(t)
	id := fake.Seed("vendors", map[string]any{"name": "Acme", "email": "a@acme.test", "phone": "1", "company": "Acme Corp"})

	if err := form.Deactivate(context.Background(), id); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	rec, ok := list.Find(id)
	if !ok {
		t.Fatalf("deactivated record must remain listed")
	}
	if rec.Status != "Inactive" {
		t.Fatalf("expected Inactive status, got %q", rec.Status)
	}
}

func TestDeactivateRejectedForUnsupportedResource(t *testing.T) {
	noDeactivate := Endpoint{Name: "invoices", Path: "/api/invoice", EnvelopeKey: "invoices"}
	form := NewForm(nil, NewList[vendorRec](nil, noDeactivate), vendorDefaults())

	err := form.Deactivate(context.Background(), "x1")
	if !errors.Is(err, api.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
