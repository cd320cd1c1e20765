package guard

import (
	"net/url"
	"strings"

	"github.com/umeedfoundation/console/core/user"
)

// Console paths
const (
	RootPath       = "/"
	LoginPath      = "/login"
	DashboardPath  = "/dashboard"
	StudentsPath   = "/students"
	VolunteersPath = "/volunteers"
	AttendancePath = "/attendance"
	ReportsPath    = "/reports"
	SettingsPath   = "/settings"

	// LandingPath is where signed-in users land, and where role mismatches are sent.
	LandingPath = DashboardPath
)

// Access is how a route may be reached.
type Access uint8

const (
	AccessPublic Access = iota + 1
	AccessProtected
	AccessRedirect
)

// Route is one entry of the route table.
type Route struct {
	Path       string
	Access     Access
	Roles      []user.Role // AccessProtected only; nil = any signed-in role
	RedirectTo string      // AccessRedirect only
}

// Allows reports whether role may render the route.
func (r Route) Allows(role user.Role) bool {
	if r.Access != AccessProtected {
		return true
	}
	if r.Roles == nil {
		return role.IsValid()
	}
	return role.In(r.Roles...)
}

// Routes is the console route table.
var Routes = []Route{
	{Path: RootPath, Access: AccessRedirect, RedirectTo: LandingPath},
	{Path: LoginPath, Access: AccessPublic},
	{Path: DashboardPath, Access: AccessProtected},
	{Path: StudentsPath, Access: AccessProtected},
	{Path: VolunteersPath, Access: AccessProtected, Roles: []user.Role{user.RoleAdmin, user.RoleCoordinator}},
	{Path: AttendancePath, Access: AccessProtected},
	{Path: ReportsPath, Access: AccessProtected, Roles: []user.Role{user.RoleAdmin, user.RoleCoordinator}},
	{Path: SettingsPath, Access: AccessProtected, Roles: []user.Role{user.RoleAdmin}},
}

// Lookup finds the route of path, ignoring case, query string and trailing slash.
func Lookup(path string) (Route, bool) {
	p := NormalizePath(path)
	for _, r := range Routes {
		if r.Path == p {
			return r, true
		}
	}
	return Route{}, false
}

// NormalizePath drops the query string, fragment and trailing slashes and lowercases
// the rest; console paths match case-insensitively.
func NormalizePath(path string) string {
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	} else if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.ToLower(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = RootPath
		}
	}
	return path
}
