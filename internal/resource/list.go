package resource

import (
	"context"
	"sync"

	"peopleops.org/internal/api"
)

// Status is the list controller's lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ListController holds the in-memory snapshot of one remote collection and
// refreshes it on demand. Items keep server response order; nothing here
// re-sorts or de-duplicates.
type ListController[T Record] struct {
	client *api.Client
	ep     Endpoint

	mu     sync.Mutex
	status Status
	items  []T
	err    error
	gen    uint64
}

// NewList binds a controller to a collection endpoint.
func NewList[T Record](client *api.Client, ep Endpoint) *ListController[T] {
	return &ListController[T]{client: client, ep: ep}
}

// Endpoint exposes the bound endpoint for form controllers.
func (l *ListController[T]) Endpoint() Endpoint { return l.ep }

// Load fetches the collection. Racing loads are allowed; only the most
// recently started load applies its result, so the last response wins and a
// response for an abandoned load is discarded.
func (l *ListController[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	l.gen++
	generation := l.gen
	l.status = StatusLoading
	l.mu.Unlock()

	items, err := api.List[T](ctx, l.client, l.ep.Path, l.ep.EnvelopeKey)

	l.mu.Lock()
	defer l.mu.Unlock()
	if generation != l.gen {
		// a newer load superseded this one
		return err
	}
	if err != nil {
		l.status = StatusError
		l.err = err
		return err
	}
	l.status = StatusReady
	l.items = items
	l.err = nil
	return nil
}

// Refresh re-fetches the collection; used after a mutation elsewhere succeeds.
func (l *ListController[T]) Refresh(ctx context.Context) error {
	return l.Load(ctx)
}

// Status returns the current lifecycle state.
func (l *ListController[T]) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Items returns a copy of the loaded snapshot in server order.
func (l *ListController[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Err returns the stored load failure, nil when the last load succeeded.
func (l *ListController[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Find returns the loaded record with the given id.
func (l *ListController[T]) Find(id string) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range l.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Page slices the loaded snapshot in memory; pagination is never authoritative.
func (l *ListController[T]) Page(offset, limit int) []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(l.items) || limit <= 0 {
		return nil
	}
	end := offset + limit
	if end > len(l.items) {
		end = len(l.items)
	}
	out := make([]T, end-offset)
	copy(out, l.items[offset:end])
	return out
}
