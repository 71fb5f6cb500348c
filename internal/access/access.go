// Package access decides whether the current session may view a route or
// invoke an authoring action. Decisions are pure functions of their inputs;
// the remote API remains the authority for per-record ownership.
package access

import (
	"strings"

	"peopleops.org/internal/session"
)

// Role is the coarse client-side role reported at sign-in.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// ParseRole normalizes a role string. Unknown roles parse as ok=false and
// deny everything a role would grant.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "manager":
		return RoleManager, true
	case "employee":
		return RoleEmployee, true
	default:
		return "", false
	}
}

// Application routes.
const (
	RouteSignIn     = "/"
	RouteSignUp     = "/signup"
	RouteDashboard  = "/dashboard"
	RouteEmployees  = "/employees"
	RouteAttendance = "/attendance"
	RouteCustomers  = "/customers"
	RouteVendors    = "/vendors"
	RouteProjects   = "/projects"
	RouteInvoices   = "/invoices"
	RouteTimesheets = "/timesheets"
)

var publicRoutes = map[string]struct{}{
	RouteSignIn: {},
	RouteSignUp: {},
}

// Routes an Employee may view; Admin and Manager see every route.
var employeeRoutes = map[string]struct{}{
	RouteDashboard:  {},
	RouteAttendance: {},
	RouteProjects:   {},
	RouteTimesheets: {},
}

var allRoutes = map[string]struct{}{
	RouteDashboard:  {},
	RouteEmployees:  {},
	RouteAttendance: {},
	RouteCustomers:  {},
	RouteVendors:    {},
	RouteProjects:   {},
	RouteInvoices:   {},
	RouteTimesheets: {},
}

// CanView reports whether the session may render the given route.
// An absent token denies every protected route.
func CanView(route string, s session.Session) bool {
	if _, ok := publicRoutes[route]; ok {
		return true
	}
	if !s.Authenticated() {
		return false
	}
	if _, known := allRoutes[route]; !known {
		return false
	}
	role, ok := ParseRole(s.Role)
	if !ok {
		return false
	}
	switch role {
	case RoleAdmin, RoleManager:
		return true
	case RoleEmployee:
		_, ok := employeeRoutes[route]
		return ok
	default:
		return false
	}
}

// Authoring actions. Management actions mutate records owned by the
// organization; entry actions record the employee's own activity.
const (
	ActionManageEmployees = "employees.manage"
	ActionManageCustomers = "customers.manage"
	ActionManageVendors   = "vendors.manage"
	ActionManageInvoices  = "invoices.manage"
	ActionManageProjects  = "projects.manage"
	ActionMarkAttendance  = "attendance.mark"
	ActionEnterTimesheet  = "timesheets.entry"
	ActionEnterProject    = "projects.entry"
)

var managerOnlyActions = map[string]struct{}{
	ActionManageEmployees: {},
	ActionManageCustomers: {},
	ActionManageVendors:   {},
	ActionManageInvoices:  {},
	ActionManageProjects:  {},
}

var employeeActions = map[string]struct{}{
	ActionMarkAttendance: {},
	ActionEnterTimesheet: {},
	ActionEnterProject:   {},
}

// CanAuthor reports whether the session may invoke the given authoring
// action. Whether a record belongs to the acting employee is enforced
// server-side; this only decides if the control is offered at all.
func CanAuthor(action string, s session.Session) bool {
	if !s.Authenticated() {
		return false
	}
	role, ok := ParseRole(s.Role)
	if !ok {
		return false
	}
	if _, restricted := managerOnlyActions[action]; restricted {
		return role == RoleAdmin || role == RoleManager
	}
	if _, open := employeeActions[action]; open {
		return true
	}
	return false
}
