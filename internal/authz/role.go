package authz

import (
	"fmt"
)

// Role is the closed set of organizational roles. Dispatch on roles is done
// through exhaustive switches so that adding a role is a compile-visible
// change, not a scattered string comparison.
type Role string

const (
	RoleCEO       Role = "CEO"
	RoleHR        Role = "HR"
	RoleManager   Role = "MANAGER"
	RoleTeamLead  Role = "TEAM LEAD"
	RoleDeveloper Role = "DEVELOPER"
	RoleTester    Role = "TESTER"
	RoleIntern    Role = "INTERN"
)

// Roles lists every valid role, in seniority order. Used to populate
// selection lists and to validate input.
func Roles() []Role {
	return []Role{
		RoleCEO,
		RoleHR,
		RoleManager,
		RoleTeamLead,
		RoleDeveloper,
		RoleTester,
		RoleIntern,
	}
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case RoleCEO, RoleHR, RoleManager, RoleTeamLead, RoleDeveloper, RoleTester, RoleIntern:
		return true
	}
	return false
}

// Privileged reports whether the role carries organization-wide read and
// override access.
func (r Role) Privileged() bool {
	switch r {
	case RoleCEO, RoleHR:
		return true
	case RoleManager, RoleTeamLead, RoleDeveloper, RoleTester, RoleIntern:
		return false
	}
	return false
}
