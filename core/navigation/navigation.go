// Package navigation holds the console menu and filters it by role.
package navigation

import (
	"github.com/umeedfoundation/console/core/guard"
	"github.com/umeedfoundation/console/core/user"
)

// Entry is one console menu item. A nil RequiredRoles makes the entry visible to every role.
type Entry struct {
	Label         string      `json:"label"`
	Path          string      `json:"path"`
	Icon          string      `json:"icon"`
	RequiredRoles []user.Role `json:"required_roles,omitempty"`
}

// Restricted reports whether the entry is limited to some roles.
func (e Entry) Restricted() bool { return e.RequiredRoles != nil }

// VisibleTo reports whether role sees the entry.
func (e Entry) VisibleTo(role user.Role) bool {
	return !e.Restricted() || role.In(e.RequiredRoles...)
}

// Entries is the console menu, in display order.
var Entries = []Entry{
	{Label: "Dashboard", Path: guard.DashboardPath, Icon: "LayoutDashboard"},
	{Label: "Students", Path: guard.StudentsPath, Icon: "GraduationCap"},
	{Label: "Volunteers", Path: guard.VolunteersPath, Icon: "Users", RequiredRoles: []user.Role{user.RoleAdmin, user.RoleCoordinator}},
	{Label: "Attendance", Path: guard.AttendancePath, Icon: "ClipboardCheck"},
	{Label: "Reports", Path: guard.ReportsPath, Icon: "BarChart3", RequiredRoles: []user.Role{user.RoleAdmin, user.RoleCoordinator}},
	{Label: "Settings", Path: guard.SettingsPath, Icon: "Settings", RequiredRoles: []user.Role{user.RoleAdmin}},
}

// VisibleEntries filters Entries for role, keeping their order.
// An unknown role only sees unrestricted entries.
func VisibleEntries(role user.Role) []Entry {
	return Filter(Entries, role)
}

// Filter keeps the entries visible to role, in order. It does not modify entries.
func Filter(entries []Entry, role user.Role) []Entry {
	visible := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.VisibleTo(role) {
			visible = append(visible, e)
		}
	}
	return visible
}
