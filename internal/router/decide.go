package router

import (
	"fmt"

	"github.com/staffdesk/staffdesk/internal/session"
)

// Outcome is the resolved state of a view instance.
type Outcome int

const (
	Unresolved Outcome = iota
	Authorized
	Redirected
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Authorized:
		return "authorized"
	case Redirected:
		return "redirected"
	case Denied:
		return "denied"
	default:
		return "unresolved"
	}
}

// AccessDeniedMessage is shown in place of a view the role may not open.
const AccessDeniedMessage = "Access denied"

// Decision is the guard result for one (role, view) pair.
type Decision struct {
	View    View
	Role    session.Role
	Outcome Outcome
	// Target is the view to show instead when Redirected.
	Target View
	Reason string
}

// Allowed reports whether the view may render.
func (d Decision) Allowed() bool { return d.Outcome == Authorized }

// Decide applies the role table. Protected views send anonymous sessions to the
// login view and show an access denied message to roles outside their set.
func Decide(role session.Role, view View) Decision {
	d := Decision{View: view, Role: role}

	req, ok := Lookup(view)
	if !ok {
		d.Outcome = Denied
		d.Reason = fmt.Sprintf("unknown view %q", view)
		return d
	}

	switch {
	case req.Public:
		d.Outcome = Authorized
	case role == session.RoleAnonymous:
		d.Outcome = Redirected
		d.Target = ViewLogin
		d.Reason = "login required"
	case req.Allows(role):
		d.Outcome = Authorized
	default:
		d.Outcome = Denied
		d.Reason = fmt.Sprintf("%s: %s is not available to %s", AccessDeniedMessage, req.Title, role)
	}
	return d
}

// Link is one navigation affordance.
type Link struct {
	View    View
	Title   string
	Command string
}

// NavLinks returns the menu for role, filtered by the same table the guard uses.
// Anonymous sessions also get Login and Sign Up.
func NavLinks(role session.Role) []Link {
	var links []Link
	for _, v := range navOrder {
		if Decide(role, v).Outcome != Authorized {
			continue
		}
		req := table[v]
		links = append(links, Link{View: v, Title: req.Title, Command: req.Command})
	}
	if role == session.RoleAnonymous {
		for _, v := range []View{ViewLogin, ViewSignup} {
			req := table[v]
			links = append(links, Link{View: v, Title: req.Title, Command: req.Command})
		}
	}
	return links
}

// NavBar is the menu plus the greeting shown to an authenticated user.
type NavBar struct {
	Links    []Link
	Greeting string
	// Logout is set when a logout affordance should be shown.
	Logout bool
}

// BuildNavBar renders the navigation state for an identity.
func BuildNavBar(id session.Identity) NavBar {
	nav := NavBar{Links: NavLinks(id.Role)}
	if !id.IsAnonymous() {
		nav.Greeting = "Welcome, " + id.Username
		nav.Logout = true
	}
	return nav
}
