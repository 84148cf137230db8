package models

import "fmt"

// Role is the fixed set of user roles.
type Role string

const (
	RoleSubmitter Role = "submitter"
	RoleApprover  Role = "approver"
)

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	if r := Role(s); r.Valid() {
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	return r == RoleSubmitter || r == RoleApprover
}

func (r Role) String() string {
	return string(r)
}
