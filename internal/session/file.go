package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockRetryInterval = 25 * time.Millisecond
	lockTimeout       = 2 * time.Second
)

// FileStore persists the session as a JSON document so it survives process
// restarts. A flock sidecar guards against concurrent CLI invocations.
type FileStore struct {
	path     string
	lockPath string
}

// NewFileStore creates a store rooted at dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("session: state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: create state dir: %w", err)
	}
	path := filepath.Join(dir, "session.json")
	return &FileStore{path: path, lockPath: path + ".lock"}, nil
}

// Path returns the location of the persisted session document.
func (f *FileStore) Path() string { return f.path }

// Get reads the persisted session. Missing, unreadable, or corrupt state is
// reported as absent rather than as an error.
func (f *FileStore) Get() (Session, bool) {
	unlock, err := f.acquire()
	if err != nil {
		return Session{}, false
	}
	defer unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, false
	}
	if !s.Authenticated() {
		return Session{}, false
	}
	return s, true
}

// Set writes the session atomically (temp file + rename).
func (f *FileStore) Set(s Session) error {
	unlock, err := f.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (f *FileStore) Clear() error {
	unlock, err := f.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func (f *FileStore) acquire() (func(), error) {
	lock := flock.New(f.lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()
	ok, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("session: lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("session: lock held by another process")
	}
	return func() { _ = lock.Unlock() }, nil
}
