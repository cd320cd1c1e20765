package user

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
)

// Role is the closed set of console roles. The zero value is not a valid role.
type Role uint8

// Roles
const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleCoordinator
	RoleVolunteer
)

var (
	ErrUnknownRole = errors.New("unknown role")

	AllRoles = []Role{RoleAdmin, RoleCoordinator, RoleVolunteer}

	roleNames = map[Role]string{
		RoleAdmin:       "admin",
		RoleCoordinator: "coordinator",
		RoleVolunteer:   "volunteer",
	}

	roleLabels = map[Role]string{
		RoleAdmin:       "Admin",
		RoleCoordinator: "Coordinator",
		RoleVolunteer:   "Volunteer",
	}
)

// ParseRole is case-insensitive and rejects anything outside AllRoles.
func ParseRole(s string) (Role, error) {
	s = core.CleanString(s, true /* lower */)
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errors.Wrapf(ErrUnknownRole, "%q", s)
}

func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// Label is the human readable role name.
func (r Role) Label() string {
	return roleLabels[r]
}

// In reports whether r is one of roles. An invalid role is never a member.
func (r Role) In(roles ...Role) bool {
	if !r.IsValid() {
		return false
	}
	for _, role := range roles {
		if role == r {
			return true
		}
	}
	return false
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, errors.Wrapf(ErrUnknownRole, "%d", uint8(r))
	}
	return []byte(roleNames[r]), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	role, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = role
	return nil
}
