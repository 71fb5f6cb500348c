package hr

import (
	"peopleops.org/internal/api"
	"peopleops.org/internal/resource"
)

// Collection endpoints as the remote API exposes them. Singular/plural paths
// and envelope keys are inconsistent on the wire; the tables below are the
// single place that knows.
var (
	Employees = resource.Endpoint{
		Name:          "employees",
		Path:          "/api/employee",
		EnvelopeKey:   "GetEmployee",
		CanDeactivate: true,
	}
	Customers = resource.Endpoint{
		Name:          "customers",
		Path:          "/api/customer",
		EnvelopeKey:   "customers",
		CanDeactivate: true,
	}
	Vendors = resource.Endpoint{
		Name:          "vendors",
		Path:          "/api/vendor",
		EnvelopeKey:   "vendors",
		CanDeactivate: true,
	}
	Projects = resource.Endpoint{
		Name:          "projects",
		Path:          "/api/projects",
		EnvelopeKey:   "projects",
		CanDeactivate: true, // transitions the project to On Hold
	}
	Invoices = resource.Endpoint{
		Name:        "invoices",
		Path:        "/api/invoice",
		EnvelopeKey: "invoices",
	}
	Timesheets = resource.Endpoint{
		Name:        "timesheets",
		Path:        "/api/timesheets",
		EnvelopeKey: "timesheets",
	}
	AttendanceRecords = resource.Endpoint{
		Name:        "attendance",
		Path:        "/api/attendance",
		EnvelopeKey: "attendanceHistory",
	}
)

// Form field defaults per resource. The key set defines which record fields a
// form manages; BeginEdit copies exactly this subset.

func EmployeeDefaults() map[string]any {
	return map[string]any{
		"employee_code":   "",
		"first_name":      "",
		"last_name":       "",
		"email":           "",
		"phone_number":    "",
		"date_of_birth":   "",
		"date_of_joining": "",
		"department":      "",
		"designation":     "",
		"status":          StatusActive,
	}
}

func CustomerDefaults() map[string]any {
	return map[string]any{
		"customer_code": "",
		"customer_name": "",
		"email":         "",
		"phone_number":  "",
	}
}

func VendorDefaults() map[string]any {
	return map[string]any{
		"name":    "",
		"email":   "",
		"phone":   "",
		"company": "",
	}
}

func ProjectDefaults() map[string]any {
	return map[string]any{
		"project_code": "",
		"project_name": "",
		"description":  "",
		"start_date":   "",
		"end_date":     "",
		"status":       StatusActive,
	}
}

func InvoiceDefaults() map[string]any {
	return map[string]any{
		"customer_id": "",
		"vendor_id":   "",
		"amount":      "",
		"description": "",
		"date":        "",
	}
}

func TimesheetDefaults() map[string]any {
	return map[string]any{
		"employee_id":      "",
		"project_id":       "",
		"date":             "",
		"hours_worked":     "",
		"task_description": "",
	}
}

func AttendanceDefaults() map[string]any {
	return map[string]any{
		"employee_id":     "",
		"attendance_date": "",
		"in_time":         "",
		"out_time":        "",
		"status":          AttendancePresent,
	}
}

// Controller constructors, one pair per screen.

func EmployeeList(c *api.Client) *resource.ListController[Employee] {
	return resource.NewList[Employee](c, Employees)
}

func EmployeeForm(c *api.Client, list *resource.ListController[Employee]) *resource.FormController[Employee] {
	return resource.NewForm(c, list, EmployeeDefaults())
}

func CustomerList(c *api.Client) *resource.ListController[Customer] {
	return resource.NewList[Customer](c, Customers)
}

func CustomerForm(c *api.Client, list *resource.ListController[Customer]) *resource.FormController[Customer] {
	return resource.NewForm(c, list, CustomerDefaults())
}

func VendorList(c *api.Client) *resource.ListController[Vendor] {
	return resource.NewList[Vendor](c, Vendors)
}

func VendorForm(c *api.Client, list *resource.ListController[Vendor]) *resource.FormController[Vendor] {
	return resource.NewForm(c, list, VendorDefaults())
}

func ProjectList(c *api.Client) *resource.ListController[Project] {
	return resource.NewList[Project](c, Projects)
}

func ProjectForm(c *api.Client, list *resource.ListController[Project]) *resource.FormController[Project] {
	return resource.NewForm(c, list, ProjectDefaults())
}

func InvoiceList(c *api.Client) *resource.ListController[Invoice] {
	return resource.NewList[Invoice](c, Invoices)
}

func InvoiceForm(c *api.Client, list *resource.ListController[Invoice]) *resource.FormController[Invoice] {
	return resource.NewForm(c, list, InvoiceDefaults())
}

func TimesheetList(c *api.Client) *resource.ListController[Timesheet] {
	return resource.NewList[Timesheet](c, Timesheets)
}

func TimesheetForm(c *api.Client, list *resource.ListController[Timesheet]) *resource.FormController[Timesheet] {
	return resource.NewForm(c, list, TimesheetDefaults())
}

func AttendanceList(c *api.Client) *resource.ListController[Attendance] {
	return resource.NewList[Attendance](c, AttendanceRecords)
}

func AttendanceForm(c *api.Client, list *resource.ListController[Attendance]) *resource.FormController[Attendance] {
	return resource.NewForm(c, list, AttendanceDefaults())
}
