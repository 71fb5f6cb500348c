package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"peopleops.org/internal/access"
	"peopleops.org/internal/hr"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the dashboard summary: record counts per collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		s := rt.session()
		if !access.CanView(access.RouteDashboard, s) {
			return fmt.Errorf("not signed in; run `peopleops login` first")
		}
		summary := hr.LoadSummary(cmd.Context(), rt.client)
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "employees\t%s\n", countCell(summary.Employees))
		fmt.Fprintf(w, "customers\t%s\n", countCell(summary.Customers))
		fmt.Fprintf(w, "vendors\t%s\n", countCell(summary.Vendors))
		fmt.Fprintf(w, "projects\t%s\n", countCell(summary.Projects))
		fmt.Fprintf(w, "invoices\t%s\n", countCell(summary.Invoices))
		fmt.Fprintf(w, "timesheets\t%s\n", countCell(summary.Timesheets))
		return w.Flush()
	},
}

// countCell renders an unavailable count (a failed read) as a dash.
func countCell(n int) string {
	if n < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}
