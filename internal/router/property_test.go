package router

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/staffdesk/staffdesk/internal/log"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/storage"
)

func genRole() *rapid.Generator[session.Role] {
	return rapid.SampledFrom(append([]session.Role{session.RoleAnonymous}, session.Roles...))
}

func genView() *rapid.Generator[View] {
	return rapid.SampledFrom(Views())
}

// The guard outcome depends only on (role, view), never on earlier navigations.
func TestGuardIsPureProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := session.New(storage.NewMemoryStore(), log.Discard())
		r := New(s, WithLogger(log.Discard()))

		history := rapid.SliceOfN(genView(), 0, 15).Draw(t, "history")
		role := genRole().Draw(t, "role")
		view := genView().Draw(t, "view")

		if role != session.RoleAnonymous {
			s.Login(session.Identity{Token: "t", Username: "u", Role: role, UserID: 1})
		}
		for _, v := range history {
			if v == ViewLogin {
				continue
			}
			r.Guard(v)
		}

		got := r.Guard(view)
		want := Decide(role, view)
		if got != want {
			t.Fatalf("guard %+v after history %v, pure decision %+v", got, history, want)
		}
	})
}

// Anonymous sessions never reach a protected view, and authenticated roles are
// never redirected.
func TestOutcomeShapeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		role := genRole().Draw(t, "role")
		view := genView().Draw(t, "view")

		req, _ := Lookup(view)
		d := Decide(role, view)

		switch {
		case req.Public && d.Outcome != Authorized:
			t.Fatalf("public view %s not authorized for %s", view, role)
		case !req.Public && role == session.RoleAnonymous && d.Outcome != Redirected:
			t.Fatalf("anonymous not redirected from %s", view)
		case role != session.RoleAnonymous && d.Outcome == Redirected:
			t.Fatalf("%s redirected from %s", role, view)
		}
	})
}
