package views

import "github.com/staffdesk/staffdesk/internal/router"

var pages = map[router.View]string{
	router.ViewHome: `Staff Desk
Employees manage tasks, documents and appointments.
Customers book appointments, follow their history and message staff.

Run 'staffdesk auth login' to sign in or 'staffdesk auth signup' to create an account.`,

	router.ViewAdminInfo: `Administrative Info
Administrators manage user accounts and see every task.
Account roles are ADMIN, EMPLOYEE and CUSTOMER; new accounts pick EMPLOYEE or CUSTOMER at signup.`,

	router.ViewServices: `Services
Appointments are booked with a named employee for a date and time.
Describe the service you need when booking; staff record notes and treatment details afterwards.`,

	router.ViewContacts: `Contacts
Customers reach staff through 'staffdesk messages send'.
For account problems contact your administrator.`,
}

// Page returns the static text of a public page.
func Page(view router.View) (string, bool) {
	p, ok := pages[view]
	return p, ok
}
