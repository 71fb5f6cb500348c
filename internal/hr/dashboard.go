package hr

import (
	"context"

	"peopleops.org/internal/api"
)

// Summary aggregates per-collection counts for the dashboard view. Each count
// is an independent read; a failing collection reports -1 rather than failing
// the whole summary.
type Summary struct {
	Employees  int `json:"employees"`
	Customers  int `json:"customers"`
	Vendors    int `json:"vendors"`
	Projects   int `json:"projects"`
	Invoices   int `json:"invoices"`
	Timesheets int `json:"timesheets"`
}

// LoadSummary fetches every collection and counts it.
func LoadSummary(ctx context.Context, c *api.Client) Summary {
	return Summary{
		Employees:  countOf[Employee](ctx, c, Employees.Path, Employees.EnvelopeKey),
		Customers:  countOf[Customer](ctx, c, Customers.Path, Customers.EnvelopeKey),
		Vendors:    countOf[Vendor](ctx, c, Vendors.Path, Vendors.EnvelopeKey),
		Projects:   countOf[Project](ctx, c, Projects.Path, Projects.EnvelopeKey),
		Invoices:   countOf[Invoice](ctx, c, Invoices.Path, Invoices.EnvelopeKey),
		Timesheets: countOf[Timesheet](ctx, c, Timesheets.Path, Timesheets.EnvelopeKey),
	}
}

func countOf[T any](ctx context.Context, c *api.Client, path, key string) int {
	items, err := api.List[T](ctx, c, path, key)
	if err != nil {
		return -1
	}
	return len(items)
}
