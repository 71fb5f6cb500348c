package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"peopleops.org/internal/config"
	"peopleops.org/internal/session"
)

type vendor struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

func testConfig(baseURL string) config.Config {
	cfg := config.Default()
	cfg.BaseURL = baseURL
	cfg.RatePerSec = 1000
	cfg.RateBurst = 1000
	return cfg
}

func newClientAgainst(t *testing.T, handler http.HandlerFunc, store session.Store, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(testConfig(srv.URL), store, opts...)
}

func TestDoAttachesBearerToken(t *testing.T) {
	store := session.NewMemory()
	if err := store.Set(session.Session{Token: "t1", Role: "Manager"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var gotAuth, gotRequestID string
	client := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"v1","name":"Acme"}`))
	}, store)

	var v vendor
	if err := client.Do(context.Background(), http.MethodGet, "/api/vendor/v1", nil, &v); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "Bearer t1" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatalf("missing X-Request-Id header")
	}
	if v.ID != "v1" || v.Name != "Acme" {
		t.Fatalf("record not normalized: %+v", v)
	}
}

func TestDoOmitsBearerWithoutSession(t *testing.T) {
	client := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header: %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusOK)
	}, session.NewMemory())
	if err := client.Do(context.Background(), http.MethodGet, "/healthz", nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		status   int
		sentinel error
		kind     Kind
	}{
		{http.StatusUnauthorized, ErrUnauthorized, KindUnauthorized},
		{http.StatusForbidden, ErrForbidden, KindForbidden},
		{http.StatusNotFound, ErrNotFound, KindNotFound},
		{http.StatusBadRequest, ErrValidation, KindValidation},
		{http.StatusUnprocessableEntity, ErrValidation, KindValidation},
		{http.StatusInternalServerError, ErrServerError, KindServerError},
		{http.StatusBadGateway, ErrServerError, KindServerError},
	}
	for _, tc := range cases {
		client := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"message":"email already exists"}`))
		}, session.NewMemory())

		err := client.Do(context.Background(), http.MethodPost, "/api/employee", map[string]string{}, nil)
		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		if !errors.Is(err, tc.sentinel) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.sentinel, err)
		}
		var apiErr *Error
		if !errors.As(err, &apiErr) || apiErr.Kind != tc.kind || apiErr.Status != tc.status {
			t.Fatalf("status %d: unexpected error shape: %+v", tc.status, apiErr)
		}
		if apiErr.Message != "email already exists" {
			t.Fatalf("status %d: server message lost: %q", tc.status, apiErr.Message)
		}
	}
}

func TestNetworkErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections
	client := New(testConfig(srv.URL), session.NewMemory())

	err := client.Do(context.Background(), http.MethodGet, "/api/vendor", nil, nil)
	if !errors.Is(err, ErrNetworkError) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestUnauthorizedHookFires(t *testing.T) {
	store := session.NewMemory()
	_ = store.Set(session.Session{Token: "stale", Role: "Manager"})

	fired := 0
	client := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, store, WithUnauthorizedHook(func() {
		fired++
		_ = store.Clear()
	}))

	err := client.Do(context.Background(), http.MethodGet, "/api/vendor", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if fired != 1 {
		t.Fatalf("hook fired %d times, want 1", fired)
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("session should be cleared by the hook")
	}
}

func TestListEnvelopeNormalization(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bare array", `[{"_id":"v1","name":"Acme"},{"_id":"v2","name":"Globex"}]`},
		{"keyed envelope", `{"vendors":[{"_id":"v1","name":"Acme"},{"_id":"v2","name":"Globex"}]}`},
		{"mismatched single-array envelope", `{"GetVendors":[{"_id":"v1","name":"Acme"},{"_id":"v2","name":"Globex"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}, session.NewMemory())

			items, err := List[vendor](context.Background(), client, "/api/vendor", "vendors")
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(items) != 2 || items[0].ID != "v1" || items[1].ID != "v2" {
				t.Fatalf("order or ids wrong: %+v", items)
			}
			if items[0].Name != "Acme" || items[1].Name != "Globex" {
				t.Fatalf("fields lost: %+v", items)
			}
		})
	}
}

func TestListEmptyVariants(t *testing.T) {
	for _, body := range []string{`[]`, `{"vendors":[]}`, `{"vendors":null}`, `null`} {
		client := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}, session.NewMemory())
		items, err := List[vendor](context.Background(), client, "/api/vendor", "vendors")
		if err != nil {
			t.Fatalf("body %s: %v", body, err)
		}
		if len(items) != 0 {
			t.Fatalf("body %s: expected empty, got %+v", body, items)
		}
	}
}

func TestMessageFallbacks(t *testing.T) {
	if got := Message(&Error{Kind: KindValidation, Message: "email already exists"}); got != "email already exists" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := Message(&Error{Kind: KindValidation}); got != "validation failed" {
		t.Fatalf("unexpected validation fallback: %q", got)
	}
	if got := Message(&Error{Kind: KindServerError}); got != "action failed" {
		t.Fatalf("unexpected generic fallback: %q", got)
	}
	if got := Message(errors.New("boom")); got != "action failed" {
		t.Fatalf("unexpected non-api fallback: %q", got)
	}
}
