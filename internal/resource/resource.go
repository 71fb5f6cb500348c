// Package resource generalizes the fetch → draft → submit → refresh cycle
// every screen repeats, parameterized by a resource endpoint and record type.
package resource

// Endpoint describes one remote collection. Paths and envelope keys follow
// the remote API as observed, quirks included; nothing outside internal/api
// ever branches on envelope style.
type Endpoint struct {
	Name        string
	Path        string
	EnvelopeKey string
	// Deactivation is a status transition, not a delete; records stay listed.
	CanDeactivate bool
}

// DeactivatePath returns the status-change endpoint for a record.
func (e Endpoint) DeactivatePath(id string) string {
	return e.Path + "/" + id + "/deactivate"
}

// RecordPath returns the single-record endpoint.
func (e Endpoint) RecordPath(id string) string {
	return e.Path + "/" + id
}

// Record is any entity with a server-assigned identity.
type Record interface {
	RecordID() string
}
