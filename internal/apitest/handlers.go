package apitest

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// collectionSpec mirrors the remote API's per-resource quirks.
type collectionSpec struct {
	name          string   // internal collection name
	path          string   // mount point, e.g. /api/vendor
	envelopeKey   string   // list wrapper field; empty means bare array
	required      []string // create-time required fields
	uniqueEmail   bool     // reject duplicate "email" values on create
	deactivateTo  string   // status value applied by /deactivate; empty disables
	defaultStatus string   // status stamped on create when the body has none
	filterByField string   // list query parameter filter, e.g. employee_id
}

var collectionSpecs = []collectionSpec{
	{
		name:          "employees",
		path:          "/api/employee",
		envelopeKey:   "GetEmployee",
		required:      []string{"employee_code", "first_name", "email"},
		uniqueEmail:   true,
		deactivateTo:  "Inactive",
		defaultStatus: "Active",
	},
	{
		name:          "customers",
		path:          "/api/customer",
		envelopeKey:   "customers",
		required:      []string{"customer_code", "customer_name"},
		deactivateTo:  "Inactive",
		defaultStatus: "Active",
	},
	{
		name:          "vendors",
		path:          "/api/vendor",
		envelopeKey:   "vendors",
		required:      []string{"name"},
		deactivateTo:  "Inactive",
		defaultStatus: "Active",
	},
	{
		name:          "projects",
		path:          "/api/projects",
		envelopeKey:   "projects",
		required:      []string{"project_code", "project_name"},
		deactivateTo:  "On Hold",
		defaultStatus: "Active",
	},
	{
		name:        "invoices",
		path:        "/api/invoice",
		envelopeKey: "invoices",
		required:    []string{"customer_id", "vendor_id", "amount"},
	},
	{
		name:        "timesheets",
		path:        "/api/timesheets",
		envelopeKey: "timesheets",
		required:    []string{"employee_id", "project_id", "hours_worked"},
	},
	{
		name:          "attendance",
		path:          "/api/attendance",
		envelopeKey:   "attendanceHistory",
		required:      []string{"employee_id"},
		defaultStatus: "Present",
		filterByField: "employee_id",
	},
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.HandleFunc("/api/auth/signup", s.handleSignup)
	s.mux.HandleFunc("/api/attendance/leave", s.requireAuth(s.handleLeave))
	for _, spec := range collectionSpecs {
		spec := spec
		s.mux.HandleFunc(spec.path, s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
			s.handleCollection(w, r, spec)
		}))
		s.mux.HandleFunc(spec.path+"/", s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
			s.handleRecord(w, r, spec)
		}))
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
		return
	}
	var req struct {
		UsernameOrEmail string `json:"usernameOrEmail"`
		Password        string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed request body"})
		return
	}
	s.mu.RLock()
	acct, ok := s.accounts[strings.ToLower(strings.TrimSpace(req.UsernameOrEmail))]
	s.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "invalid credentials"})
		return
	}
	token, err := s.issueToken(acct)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "token generation failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":       token,
		"role":        acct.Role,
		"id":          acct.ID,
		"employee_id": acct.EmployeeID,
		"name":        acct.Name,
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
		return
	}
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed request body"})
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "username, email and password are required"})
		return
	}
	s.mu.RLock()
	_, taken := s.accounts[strings.ToLower(req.Username)]
	s.mu.RUnlock()
	if taken {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "username already exists"})
		return
	}
	if req.Role == "" {
		req.Role = "Employee"
	}
	id := s.AddAccount(req.Username, req.Email, req.Password, req.Role, req.Username)
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "account created"})
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
		return
	}
	var req map[string]any
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed request body"})
		return
	}
	employeeID, _ := req["employee_id"].(string)
	if strings.TrimSpace(employeeID) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "employee_id is required"})
		return
	}
	rec := record{
		"_id":             uuid.NewString(),
		"employee_id":     employeeID,
		"attendance_date": req["attendance_date"],
		"status":          "On Leave",
	}
	s.mu.Lock()
	s.collections["attendance"] = append(s.collections["attendance"], rec)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Leave marked"})
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request, spec collectionSpec) {
	switch r.Method {
	case http.MethodGet:
		s.listRecords(w, r, spec)
	case http.MethodPost:
		s.createRecord(w, r, spec)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
	}
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request, spec collectionSpec) {
	filter := ""
	if spec.filterByField != "" {
		filter = r.URL.Query().Get(spec.filterByField)
	}
	s.mu.RLock()
	items := make([]record, 0, len(s.collections[spec.name]))
	for _, rec := range s.collections[spec.name] {
		if filter != "" {
			if v, _ := rec[spec.filterByField].(string); v != filter {
				continue
			}
		}
		items = append(items, rec)
	}
	s.mu.RUnlock()
	if spec.envelopeKey == "" {
		writeJSON(w, http.StatusOK, items)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{spec.envelopeKey: items})
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request, spec collectionSpec) {
	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed request body"})
		return
	}
	for _, field := range spec.required {
		if fieldMissing(body[field]) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": field + " is required"})
			return
		}
	}
	if spec.uniqueEmail {
		email, _ := body["email"].(string)
		s.mu.RLock()
		for _, rec := range s.collections[spec.name] {
			if existing, _ := rec["email"].(string); existing != "" && strings.EqualFold(existing, email) {
				s.mu.RUnlock()
				writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "email already exists"})
				return
			}
		}
		s.mu.RUnlock()
	}

	rec := record{"_id": uuid.NewString()}
	for k, v := range body {
		rec[k] = v
	}
	if spec.defaultStatus != "" {
		if v, _ := rec["status"].(string); v == "" {
			rec["status"] = spec.defaultStatus
		}
	}
	s.mu.Lock()
	s.collections[spec.name] = append(s.collections[spec.name], rec)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request, spec collectionSpec) {
	rest := strings.TrimPrefix(r.URL.Path, spec.path+"/")
	if rest == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "record not found"})
		return
	}

	if strings.HasSuffix(rest, "/deactivate") {
		id := strings.TrimSuffix(strings.TrimSuffix(rest, "/deactivate"), "/")
		s.deactivateRecord(w, r, spec, id)
		return
	}
	if strings.Contains(rest, "/") {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "record not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getRecord(w, spec, rest)
	case http.MethodPut:
		s.updateRecord(w, r, spec, rest)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
	}
}

func (s *Server) getRecord(w http.ResponseWriter, spec collectionSpec, id string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.collections[spec.name] {
		if rec["_id"] == id {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "record not found"})
}

func (s *Server) updateRecord(w http.ResponseWriter, r *http.Request, spec collectionSpec, id string) {
	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed request body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.collections[spec.name] {
		if rec["_id"] != id {
			continue
		}
		// Last write wins; identity is immutable.
		for k, v := range body {
			if k == "_id" || k == "id" {
				continue
			}
			rec[k] = v
		}
		writeJSON(w, http.StatusOK, rec)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "record not found"})
}

func (s *Server) deactivateRecord(w http.ResponseWriter, r *http.Request, spec collectionSpec, id string) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
		return
	}
	if spec.deactivateTo == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "record not found"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.collections[spec.name] {
		if rec["_id"] == id {
			rec["status"] = spec.deactivateTo
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "record not found"})
}

// fieldMissing treats absent values and blank strings as missing. Numeric
// values count as present; timesheet hours arrive as JSON numbers.
func fieldMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}
