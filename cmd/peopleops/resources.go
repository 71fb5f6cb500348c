package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"peopleops.org/internal/access"
	"peopleops.org/internal/api"
	"peopleops.org/internal/hr"
	"peopleops.org/internal/resource"
)

// resourceSpec wires one CRUD screen into the command tree.
type resourceSpec struct {
	endpoint     resource.Endpoint
	defaults     func() map[string]any
	viewRoute    string
	authorAction string
	// deactivateAction gates the deactivate verb when it needs a higher bar
	// than authorAction; empty falls back to authorAction.
	deactivateAction string
	columns          []string
}

func resourceCommands() []*cobra.Command {
	return []*cobra.Command{
		resourceCommand[hr.Employee](resourceSpec{
			endpoint:     hr.Employees,
			defaults:     hr.EmployeeDefaults,
			viewRoute:    access.RouteEmployees,
			authorAction: access.ActionManageEmployees,
			columns:      []string{"id", "employee_code", "first_name", "last_name", "email", "department", "status"},
		}),
		resourceCommand[hr.Customer](resourceSpec{
			endpoint:     hr.Customers,
			defaults:     hr.CustomerDefaults,
			viewRoute:    access.RouteCustomers,
			authorAction: access.ActionManageCustomers,
			columns:      []string{"id", "customer_code", "customer_name", "email", "phone_number", "status"},
		}),
		resourceCommand[hr.Vendor](resourceSpec{
			endpoint:     hr.Vendors,
			defaults:     hr.VendorDefaults,
			viewRoute:    access.RouteVendors,
			authorAction: access.ActionManageVendors,
			columns:      []string{"id", "name", "email", "phone", "company", "status"},
		}),
		resourceCommand[hr.Project](resourceSpec{
			endpoint:     hr.Projects,
			defaults:     hr.ProjectDefaults,
			viewRoute:    access.RouteProjects,
			authorAction: access.ActionEnterProject,
			// Any role records project work, but putting a project on hold
			// is a management call.
			deactivateAction: access.ActionManageProjects,
			columns:          []string{"id", "project_code", "project_name", "start_date", "end_date", "status"},
		}),
		resourceCommand[hr.Invoice](resourceSpec{
			endpoint:     hr.Invoices,
			defaults:     hr.InvoiceDefaults,
			viewRoute:    access.RouteInvoices,
			authorAction: access.ActionManageInvoices,
			columns:      []string{"id", "customer_id", "vendor_id", "amount", "date"},
		}),
		resourceCommand[hr.Timesheet](resourceSpec{
			endpoint:     hr.Timesheets,
			defaults:     hr.TimesheetDefaults,
			viewRoute:    access.RouteTimesheets,
			authorAction: access.ActionEnterTimesheet,
			columns:      []string{"id", "employee_id", "project_id", "date", "hours_worked"},
		}),
	}
}

func resourceCommand[T resource.Record](spec resourceSpec) *cobra.Command {
	name := spec.endpoint.Name
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage %s", name),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s in server order", name),
		RunE: func(c *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			if !access.CanView(spec.viewRoute, rt.session()) {
				return fmt.Errorf("your role may not view %s", name)
			}
			list := resource.NewList[T](rt.client, spec.endpoint)
			if err := list.Load(c.Context()); err != nil {
				return fmt.Errorf("%s", api.Message(err))
			}
			printRecords(list.Items(), spec.columns)
			return nil
		},
	})

	var setPairs []string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s record", strings.TrimSuffix(name, "s")),
		RunE: func(c *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			if !access.CanAuthor(spec.authorAction, rt.session()) {
				return fmt.Errorf("your role may not create %s", name)
			}
			list := resource.NewList[T](rt.client, spec.endpoint)
			form := resource.NewForm(rt.client, list, spec.defaults())
			form.BeginCreate()
			if err := applyFields(form, setPairs); err != nil {
				return err
			}
			if err := form.Submit(c.Context()); err != nil {
				return fmt.Errorf("%s", form.Message())
			}
			fmt.Printf("%s created\n", strings.TrimSuffix(name, "s"))
			return nil
		},
	}
	createCmd.Flags().StringArrayVar(&setPairs, "set", nil, "field value as name=value (repeatable)")
	cmd.AddCommand(createCmd)

	var updatePairs []string

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Update a %s record", strings.TrimSuffix(name, "s")),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			if !access.CanAuthor(spec.authorAction, rt.session()) {
				return fmt.Errorf("your role may not update %s", name)
			}
			list := resource.NewList[T](rt.client, spec.endpoint)
			if err := list.Load(c.Context()); err != nil {
				return fmt.Errorf("%s", api.Message(err))
			}
			record, ok := list.Find(args[0])
			if !ok {
				return fmt.Errorf("no %s record with id %s", strings.TrimSuffix(name, "s"), args[0])
			}
			form := resource.NewForm(rt.client, list, spec.defaults())
			form.BeginEdit(record)
			if err := applyFields(form, updatePairs); err != nil {
				return err
			}
			if err := form.Submit(c.Context()); err != nil {
				return fmt.Errorf("%s", form.Message())
			}
			fmt.Printf("%s %s updated\n", strings.TrimSuffix(name, "s"), args[0])
			return nil
		},
	}
	updateCmd.Flags().StringArrayVar(&updatePairs, "set", nil, "field value as name=value (repeatable)")
	cmd.AddCommand(updateCmd)

	if spec.endpoint.CanDeactivate {
		deactivateAction := spec.deactivateAction
		if deactivateAction == "" {
			deactivateAction = spec.authorAction
		}
		cmd.AddCommand(&cobra.Command{
			Use:   "deactivate <id>",
			Short: fmt.Sprintf("Deactivate a %s record (it stays listed)", strings.TrimSuffix(name, "s")),
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				rt, err := newRuntime()
				if err != nil {
					return err
				}
				if !access.CanAuthor(deactivateAction, rt.session()) {
					return fmt.Errorf("your role may not deactivate %s", name)
				}
				list := resource.NewList[T](rt.client, spec.endpoint)
				form := resource.NewForm(rt.client, list, spec.defaults())
				if err := form.Deactivate(c.Context(), args[0]); err != nil {
					return fmt.Errorf("%s", api.Message(err))
				}
				fmt.Printf("%s %s deactivated\n", strings.TrimSuffix(name, "s"), args[0])
				return nil
			},
		})
	}

	return cmd
}

func applyFields[T resource.Record](form *resource.FormController[T], pairs []string) error {
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, expected name=value", pair)
		}
		form.SetField(strings.TrimSpace(name), value)
	}
	return nil
}

func printRecords[T any](items []T, columns []string) {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(items)
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(columns, "\t")))
	for _, item := range items {
		fields := map[string]any{}
		if data, err := json.Marshal(item); err == nil {
			_ = json.Unmarshal(data, &fields)
		}
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			if v, ok := fields[col]; ok && v != nil {
				row = append(row, fmt.Sprintf("%v", v))
			} else {
				row = append(row, "")
			}
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}
