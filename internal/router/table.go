// Package router decides which views a session may open.
//
// The role table in this file is the single authorization policy of the client.
// Decide is a pure function of (role, view); Router.Guard applies it to the live
// session and is the one place every protected view passes through before it runs.
package router

import (
	"github.com/staffdesk/staffdesk/internal/session"
)

// View identifies a screen of the client.
type View string

// Public views
const (
	ViewHome      View = "home"
	ViewAdminInfo View = "admin-info"
	ViewServices  View = "services"
	ViewContacts  View = "contacts"
	ViewLogin     View = "login"
	ViewSignup    View = "signup"
)

// Views open to any authenticated role
const (
	ViewDashboard View = "dashboard"
)

// ADMIN views
const (
	ViewUsers View = "users"
)

// EMPLOYEE views (also open to ADMIN)
const (
	ViewTaskCreate           View = "task-create"
	ViewTaskList             View = "task-list"
	ViewTaskStatus           View = "task-status"
	ViewEmployeeCalendar     View = "employee-calendar"
	ViewEmployeeDocuments    View = "employee-documents"
	ViewEmployeeAppointments View = "employee-appointments"
)

// CUSTOMER views
const (
	ViewCustomerDashboard  View = "customer-dashboard"
	ViewAppointmentBook    View = "appointment-book"
	ViewAppointmentHistory View = "appointment-history"
	ViewCustomerCalendar   View = "customer-calendar"
	ViewFeedback           View = "feedback"
	ViewMessages           View = "messages"
	ViewMessageSend        View = "message-send"
)

// Requirement is one row of the role table.
type Requirement struct {
	// Title is the navigation label.
	Title string
	// Command is the CLI invocation that opens the view.
	Command string
	// Public views need no session.
	Public bool
	// Roles lists the qualifying roles of a protected view. Empty means any
	// authenticated role.
	Roles []session.Role
	// Nav marks views that get a navigation link.
	Nav bool
}

var (
	adminOnly    = []session.Role{session.RoleAdmin}
	staff        = []session.Role{session.RoleEmployee, session.RoleAdmin}
	customerOnly = []session.Role{session.RoleCustomer}
)

// table is the role-to-capability policy. Order in navOrder drives menus.
var table = map[View]Requirement{
	ViewHome:      {Title: "Home", Command: "staffdesk info", Public: true},
	ViewAdminInfo: {Title: "Administrative Info", Command: "staffdesk info admin", Public: true, Nav: true},
	ViewServices:  {Title: "Services", Command: "staffdesk info services", Public: true, Nav: true},
	ViewContacts:  {Title: "Contacts", Command: "staffdesk info contacts", Public: true, Nav: true},
	ViewLogin:     {Title: "Login", Command: "staffdesk auth login", Public: true},
	ViewSignup:    {Title: "Sign Up", Command: "staffdesk auth signup", Public: true},

	ViewDashboard: {Title: "Dashboard", Command: "staffdesk dashboard"},

	ViewUsers: {Title: "Users", Command: "staffdesk users list", Roles: adminOnly, Nav: true},

	ViewTaskCreate:           {Title: "Task Management", Command: "staffdesk tasks create", Roles: staff, Nav: true},
	ViewEmployeeCalendar:     {Title: "Calendar", Command: "staffdesk calendar employee", Roles: staff, Nav: true},
	ViewTaskList:             {Title: "Tasks", Command: "staffdesk tasks list", Roles: staff, Nav: true},
	ViewTaskStatus:           {Title: "Update Task Status", Command: "staffdesk tasks status", Roles: staff},
	ViewEmployeeDocuments:    {Title: "Employee Documents", Command: "staffdesk documents list", Roles: staff, Nav: true},
	ViewEmployeeAppointments: {Title: "Employee Appointments", Command: "staffdesk appointments manage list", Roles: staff, Nav: true},

	ViewCustomerDashboard:  {Title: "Customers", Command: "staffdesk dashboard", Roles: customerOnly, Nav: true},
	ViewAppointmentBook:    {Title: "Book Appointment", Command: "staffdesk appointments book", Roles: customerOnly, Nav: true},
	ViewAppointmentHistory: {Title: "Appointment History", Command: "staffdesk appointments history", Roles: customerOnly, Nav: true},
	ViewCustomerCalendar:   {Title: "My Calendar", Command: "staffdesk calendar customer", Roles: customerOnly, Nav: true},
	ViewFeedback:           {Title: "Feedback", Command: "staffdesk feedback submit", Roles: customerOnly, Nav: true},
	ViewMessages:           {Title: "Messages", Command: "staffdesk messages list", Roles: customerOnly, Nav: true},
	ViewMessageSend:        {Title: "Send Message", Command: "staffdesk messages send", Roles: customerOnly},
}

var navOrder = []View{
	ViewAdminInfo, ViewServices, ViewContacts,
	ViewUsers,
	ViewTaskCreate, ViewEmployeeCalendar, ViewTaskList, ViewEmployeeDocuments, ViewEmployeeAppointments,
	ViewCustomerDashboard, ViewAppointmentBook, ViewAppointmentHistory, ViewCustomerCalendar, ViewFeedback, ViewMessages,
}

// Views returns every known view, in menu order followed by the rest.
func Views() []View {
	seen := make(map[View]bool, len(table))
	out := make([]View, 0, len(table))
	for _, v := range navOrder {
		seen[v] = true
		out = append(out, v)
	}
	for _, v := range []View{
		ViewHome, ViewLogin, ViewSignup, ViewDashboard, ViewTaskStatus, ViewMessageSend,
	} {
		if !seen[v] {
			out = append(out, v)
		}
	}
	return out
}

// Lookup returns the table row for view.
func Lookup(view View) (Requirement, bool) {
	req, ok := table[view]
	return req, ok
}

// Allows reports whether role qualifies for a protected view's requirement.
func (r Requirement) Allows(role session.Role) bool {
	if r.Public {
		return true
	}
	if !role.Valid() {
		return false
	}
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// TaskScope describes which tasks a role's task list shows.
type TaskScope int

const (
	// TaskScopeNone means the role has no task list.
	TaskScopeNone TaskScope = iota
	// TaskScopeSelf limits the list to tasks assigned to or created by the user.
	TaskScopeSelf
	// TaskScopeAll lists every task.
	TaskScopeAll
)

// TaskScopeFor returns the task visibility for role. ADMIN shares the employee
// views but is not self-scoped.
func TaskScopeFor(role session.Role) TaskScope {
	switch role {
	case session.RoleEmployee:
		return TaskScopeSelf
	case session.RoleAdmin:
		return TaskScopeAll
	default:
		return TaskScopeNone
	}
}
