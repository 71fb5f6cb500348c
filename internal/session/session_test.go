package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sample() Session {
	return Session{
		Token: "t1",
		Role:  "Manager",
		User:  User{ID: "u1", EmployeeID: "e1", Name: "Alice"},
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemory()
	if _, ok := store.Get(); ok {
		t.Fatalf("fresh store should be empty")
	}
	if err := store.Set(sample()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := store.Get()
	if !ok || got.Role != "Manager" || got.User.Name != "Alice" {
		t.Fatalf("unexpected session: %+v ok=%v", got, ok)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("cleared store should be empty")
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Set(sample()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh store over the same directory models a process restart.
	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok := reopened.Get()
	if !ok {
		t.Fatalf("expected persisted session after reopen")
	}
	if got.Token != "t1" || got.Role != "Manager" || got.User.ID != "u1" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := reopened.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("session should be gone for both handles")
	}
	if err := reopened.Clear(); err != nil {
		t.Fatalf("double clear should be a no-op: %v", err)
	}
}

func TestFileStoreSerializedKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Set(sample()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	for _, key := range []string{"token", "role", "user"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("persisted state missing %q key: %s", key, data)
		}
	}
}

func TestFileStoreCorruptStateReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt state: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("corrupt state must read as absent")
	}
}

func TestInspectToken(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	claims := struct {
		Roles []string `json:"roles"`
		jwt.RegisteredClaims
	}{
		Roles: []string{"manager"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unrelated-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	info, ok := InspectToken(signed)
	if !ok {
		t.Fatalf("InspectToken failed")
	}
	if info.Subject != "u1" || len(info.Roles) != 1 || info.Roles[0] != "manager" {
		t.Fatalf("unexpected claims: %+v", info)
	}
	if !info.ExpiresAt.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("unexpected expiry: %v", info.ExpiresAt)
	}
	if Expired(signed, now) {
		t.Fatalf("token should not be expired yet")
	}
	if !Expired(signed, now.Add(16*time.Minute)) {
		t.Fatalf("token should be expired")
	}

	if _, ok := InspectToken("opaque-token"); ok {
		t.Fatalf("opaque token should not decode")
	}
	if Expired("opaque-token", now) {
		t.Fatalf("opaque token must never be reported expired")
	}
}
