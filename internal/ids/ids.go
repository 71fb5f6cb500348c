// Package ids issues the request identifiers stamped onto outbound API calls.
package ids

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// generator hands out strictly increasing ULIDs from one entropy stream.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newGenerator() *generator {
	seed := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	return &generator{entropy: ulid.Monotonic(seed, 0)}
}

func (g *generator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

var requestIDs = newGenerator()

// NewRequestID returns a lexicographically sortable identifier attached to
// every outbound API call as X-Request-Id.
func NewRequestID() string {
	return requestIDs.next()
}

// IssuedAt extracts the timestamp embedded in a request identifier.
func IssuedAt(id string) (time.Time, bool) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(parsed.Time()), true
}
