package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Role is the closed set of principal roles the backend issues.
type Role string

const (
	// RoleAnonymous is the role of an unauthenticated session.
	RoleAnonymous Role = ""
	RoleAdmin     Role = "ADMIN"
	RoleEmployee  Role = "EMPLOYEE"
	RoleCustomer  Role = "CUSTOMER"
)

// Roles lists the authenticated roles.
var Roles = []Role{RoleAdmin, RoleEmployee, RoleCustomer}

// Valid reports whether r is one of the authenticated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return true
	}
	return false
}

func (r Role) String() string {
	if r == RoleAnonymous {
		return "anonymous"
	}
	return string(r)
}

// ParseRole accepts the wire spelling of a role. Unknown values are an error.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return RoleAnonymous, fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// UserID identifies a principal on the backend. The backend serializes it as a
// JSON number; older responses and stored sessions may carry it as a string.
type UserID int64

// UnmarshalJSON accepts 7 and "7".
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", s)
		}
		*id = UserID(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid user id %s", data)
	}
	*id = UserID(n)
	return nil
}

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Identity is the authenticated principal held by the session. All four fields
// are present together or absent together.
type Identity struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	UserID   UserID `json:"userId"`
}

// Anonymous is the identity of an unauthenticated session.
var Anonymous = Identity{}

// IsAnonymous reports whether the identity carries no credential.
func (i Identity) IsAnonymous() bool {
	return i == Anonymous
}

// Complete reports whether every field is present and the role is known.
func (i Identity) Complete() bool {
	return i.Token != "" && i.Username != "" && i.Role.Valid() && i.UserID != 0
}

// Missing names the absent fields, in wire spelling.
func (i Identity) Missing() []string {
	var missing []string
	if i.Token == "" {
		missing = append(missing, "token")
	}
	if i.Username == "" {
		missing = append(missing, "username")
	}
	if !i.Role.Valid() {
		missing = append(missing, "role")
	}
	if i.UserID == 0 {
		missing = append(missing, "userId")
	}
	return missing
}
