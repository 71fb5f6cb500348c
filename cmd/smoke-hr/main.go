package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"peopleops.org/internal/api"
	"peopleops.org/internal/apitest"
	"peopleops.org/internal/config"
	"peopleops.org/internal/hr"
	"peopleops.org/internal/obs"
	"peopleops.org/internal/session"
)

// Smoke test against a running HR API. With PEOPLEOPS_API_URL unset it spins
// up the in-process fake server and walks the same flow, so the binary always
// has something to talk to.
func main() {
	obs.Init()

	baseURL := os.Getenv("PEOPLEOPS_API_URL")
	user := os.Getenv("PEOPLEOPS_SMOKE_USER")
	password := os.Getenv("PEOPLEOPS_SMOKE_PASSWORD")
	if baseURL == "" {
		fake := apitest.NewServer()
		fake.AddAccount("smoke", "smoke@example.com", "smoke-pass", "Manager", "Smoke Runner")
		srv := httptest.NewServer(fake.Handler())
		defer srv.Close()
		baseURL = srv.URL
		user = "smoke"
		password = "smoke-pass"
	}
	if user == "" || password == "" {
		log.Fatal("PEOPLEOPS_SMOKE_USER and PEOPLEOPS_SMOKE_PASSWORD must be set for a remote run")
	}

	if addr := os.Getenv("PEOPLEOPS_METRICS_ADDR"); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", obs.Handler())
			log.Printf("metrics on %s", addr)
			log.Fatal(http.ListenAndServe(addr, mux))
		}()
	}

	cfg := config.Default()
	cfg.BaseURL = baseURL
	store := session.NewMemory()
	client := api.New(cfg, store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := hr.SignIn(ctx, client, store, hr.Credentials{UsernameOrEmail: user, Password: password})
	if err != nil {
		log.Fatalf("sign in as %s: %v", user, err)
	}

	tag := fmt.Sprintf("smoke-%d", rand.Int())
	vendors := hr.VendorList(client)
	form := hr.VendorForm(client, vendors)

	form.BeginCreate()
	form.SetField("name", tag)
	form.SetField("email", tag+"@example.com")
	form.SetField("company", "Smoke Supplies Ltd")
	if err := form.Submit(ctx); err != nil {
		log.Fatalf("create vendor: %v", err)
	}

	var created hr.Vendor
	found := false
	for _, v := range vendors.Items() {
		if v.Name == tag {
			created, found = v, true
		}
	}
	if !found {
		log.Fatalf("created vendor %q missing from list of %d", tag, len(vendors.Items()))
	}

	form.BeginEdit(created)
	form.SetField("phone", "+1-555-0100")
	if err := form.Submit(ctx); err != nil {
		log.Fatalf("update vendor %s: %v", created.ID, err)
	}
	updated, ok := vendors.Find(created.ID)
	if !ok || updated.Phone != "+1-555-0100" {
		log.Fatalf("update not reflected: %+v", updated)
	}

	if err := form.Deactivate(ctx, created.ID); err != nil {
		log.Fatalf("deactivate vendor %s: %v", created.ID, err)
	}
	deactivated, ok := vendors.Find(created.ID)
	if !ok || deactivated.Status != hr.StatusInactive {
		log.Fatalf("deactivation not reflected: %+v", deactivated)
	}

	employeeID := s.User.EmployeeID
	if employeeID == "" {
		employeeID = s.User.ID
	}
	today := time.Now().Format("2006-01-02")

	attendance := hr.AttendanceList(client)
	mark := hr.AttendanceForm(client, attendance)
	mark.BeginCreate()
	mark.SetField("employee_id", employeeID)
	mark.SetField("attendance_date", today)
	mark.SetField("in_time", "09:00")
	mark.SetField("status", hr.AttendancePresent)
	if err := mark.Submit(ctx); err != nil {
		log.Fatalf("mark attendance: %v", err)
	}
	if err := hr.MarkLeave(ctx, client, employeeID, today); err != nil {
		log.Fatalf("mark leave: %v", err)
	}
	history, err := hr.AttendanceFor(ctx, client, employeeID)
	if err != nil {
		log.Fatalf("attendance history: %v", err)
	}
	if len(history) < 2 {
		log.Fatalf("expected at least 2 attendance records for %s, got %d", employeeID, len(history))
	}

	summary := hr.LoadSummary(ctx, client)
	if summary.Vendors < 1 {
		log.Fatalf("summary missing vendors: %+v", summary)
	}

	fmt.Printf("✅ hr smoke test passed: vendor=%s attendance=%d\n", created.ID, len(history))
}
