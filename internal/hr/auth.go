package hr

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"peopleops.org/internal/api"
	"peopleops.org/internal/obs"
	"peopleops.org/internal/session"
)

const (
	loginPath  = "/api/auth/login"
	signupPath = "/api/auth/signup"
	leavePath  = "/api/attendance/leave"
)

// Credentials is the sign-in request body.
type Credentials struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// SignInResult is the sign-in endpoint's response.
type SignInResult struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Name       string `json:"name,omitempty"`
}

// SignUpRequest registers a new account.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignIn authenticates against the remote API and persists the resulting
// session. The write is visible to every subsequent read before SignIn
// returns, so dependent calls always carry the fresh token.
func SignIn(ctx context.Context, c *api.Client, store session.Store, creds Credentials) (session.Session, error) {
	if strings.TrimSpace(creds.UsernameOrEmail) == "" || creds.Password == "" {
		return session.Session{}, &api.Error{Kind: api.KindValidation, Message: "username and password are required"}
	}
	var result SignInResult
	if err := c.Do(ctx, http.MethodPost, loginPath, creds, &result); err != nil {
		return session.Session{}, err
	}
	if result.Token == "" {
		return session.Session{}, &api.Error{Kind: api.KindServerError, Message: "sign-in response missing token"}
	}
	s := session.Session{
		Token: result.Token,
		Role:  result.Role,
		User: session.User{
			ID:         result.ID,
			EmployeeID: result.EmployeeID,
			Name:       result.Name,
		},
	}
	if err := store.Set(s); err != nil {
		return session.Session{}, fmt.Errorf("persist session: %w", err)
	}
	obs.LogEvent("auth.signed_in", map[string]any{"user_id": result.ID, "role": result.Role})
	return s, nil
}

// SignOut destroys the local session. The remote API holds no session state
// to tear down.
func SignOut(store session.Store) error {
	if err := store.Clear(); err != nil {
		return err
	}
	obs.LogEvent("auth.signed_out", nil)
	return nil
}

// SignUp registers an account. The new user still signs in separately.
func SignUp(ctx context.Context, c *api.Client, req SignUpRequest) error {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return &api.Error{Kind: api.KindValidation, Message: "username, email and password are required"}
	}
	if req.Role == "" {
		req.Role = "Employee"
	}
	return c.Do(ctx, http.MethodPost, signupPath, req, nil)
}

// MarkLeave records a leave day for an employee; attendance keeps a dedicated
// endpoint for this instead of a status-change on an existing record.
func MarkLeave(ctx context.Context, c *api.Client, employeeID, date string) error {
	if strings.TrimSpace(employeeID) == "" {
		return &api.Error{Kind: api.KindValidation, Message: "employee_id is required"}
	}
	body := map[string]string{
		"employee_id":     employeeID,
		"attendance_date": date,
	}
	return c.Do(ctx, http.MethodPost, leavePath, body, nil)
}

// AttendanceFor fetches the attendance history filtered to one employee.
func AttendanceFor(ctx context.Context, c *api.Client, employeeID string) ([]Attendance, error) {
	path := AttendanceRecords.Path
	if strings.TrimSpace(employeeID) != "" {
		path += "?employee_id=" + url.QueryEscape(employeeID)
	}
	return api.List[Attendance](ctx, c, path, AttendanceRecords.EnvelopeKey)
}
