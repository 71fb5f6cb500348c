package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                                "/",
		"/metrics":                        "/metrics",
		"/api/vendor/abc":                 "/api/vendor/:id",
		"/api/vendor/abc/deactivate":      "/api/vendor/:id/deactivate",
		"/api/vendor/abc/extra/deep":      "/api/vendor/abc/extra/deep",
		"/api/auth/login":                 "/api/auth/login",
		"/api/attendance?employee_id=e1":  "/api/attendance",
		"/api/timesheets/t1":              "/api/timesheets/:id",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
