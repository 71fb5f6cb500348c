// Package apitest hosts an in-memory stand-in for the remote HR API, close
// enough for controller tests and smoke runs: bcrypt credential checks, HS256
// bearer tokens, the per-resource envelope quirks, and soft deactivation.
package apitest

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 15 * time.Minute

type account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	EmployeeID   string
	Name         string
}

type record map[string]any

// Server is the fake API. Zero-value is not usable; construct with NewServer.
type Server struct {
	mu          sync.RWMutex
	secret      []byte
	accounts    map[string]*account // keyed by username and email
	collections map[string][]record // keyed by resource name
	mux         *http.ServeMux
}

// NewServer returns an empty fake API with a random signing secret.
func NewServer() *Server {
	s := &Server{
		secret:      []byte(uuid.NewString()),
		accounts:    make(map[string]*account),
		collections: make(map[string][]record),
		mux:         http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the http.Handler, ready for httptest.NewServer.
func (s *Server) Handler() http.Handler { return s.mux }

// AddAccount registers a user that can sign in. Returns the account id.
func (s *Server) AddAccount(username, email, password, role, name string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	acct := &account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		EmployeeID:   uuid.NewString(),
		Name:         name,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[strings.ToLower(username)] = acct
	if email != "" {
		s.accounts[strings.ToLower(email)] = acct
	}
	return acct.ID
}

// Seed inserts a record into a collection, assigning an id when absent.
func (s *Server) Seed(resourceName string, fields map[string]any) string {
	rec := record{}
	for k, v := range fields {
		rec[k] = v
	}
	if _, ok := rec["_id"]; !ok {
		rec["_id"] = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[resourceName] = append(s.collections[resourceName], rec)
	return rec["_id"].(string)
}

// Records returns a copy of a collection in insertion order.
func (s *Server) Records(resourceName string) []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]map[string]any, 0, len(s.collections[resourceName]))
	for _, rec := range s.collections[resourceName] {
		clone := map[string]any{}
		for k, v := range rec {
			clone[k] = v
		}
		out = append(out, clone)
	}
	return out
}

// RevokeAllTokens rotates the signing secret so every issued token fails
// validation from now on, modeling server-side expiry.
func (s *Server) RevokeAllTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = []byte(uuid.NewString())
}

// --- token handling ---

type serverClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(acct *account) (string, error) {
	now := time.Now().UTC()
	claims := serverClaims{
		Roles: []string{strings.ToLower(acct.Role)},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "peopleops-apitest",
			Subject:   acct.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			ID:        uuid.NewString(),
		},
	}
	s.mu.RLock()
	secret := s.secret
	s.mu.RUnlock()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *Server) validateToken(token string) error {
	s.mu.RLock()
	secret := s.secret
	s.mu.RUnlock()
	parsed, err := jwt.ParseWithClaims(token, &serverClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenUnverifiable
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return jwt.ErrTokenUnverifiable
	}
	return nil
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "missing bearer token"})
			return
		}
		token := strings.TrimSpace(header[len("Bearer "):])
		if s.validateToken(token) != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "invalid token"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
