package user

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// RosterEntry is the plain form of a demo account, hashed by NewRoster.
type RosterEntry struct {
	ID          string
	Email       string
	Password    string
	FullName    string
	Role        Role
	VolunteerID string
}

// DemoAccounts are the compiled-in console accounts, one per role.
var DemoAccounts = []RosterEntry{
	{ID: "1", Email: "admin@umeed.org", Password: "admin123", FullName: "Admin User", Role: RoleAdmin},
	{ID: "2", Email: "coordinator@umeed.org", Password: "coord123", FullName: "Priya Sharma", Role: RoleCoordinator, VolunteerID: "v1"},
	{ID: "3", Email: "volunteer@umeed.org", Password: "vol123", FullName: "Rahul Kumar", Role: RoleVolunteer, VolunteerID: "v2"},
}

// Roster is the ordered, read-only credential table the Verifier checks against.
type Roster struct {
	creds []Credential
}

// NewRoster hashes the entries' passwords. Entry order is kept.
func NewRoster(entries ...RosterEntry) (*Roster, error) {
	now := time.Now().UTC()
	r := &Roster{creds: make([]Credential, 0, len(entries))}
	for _, e := range entries {
		if !e.Role.IsValid() {
			return nil, errors.Wrapf(ErrUnknownRole, "roster entry %q", e.Email)
		}
		c := Credential{
			Identity: Identity{
				ID:          e.ID,
				Email:       e.Email,
				FullName:    e.FullName,
				Role:        e.Role,
				VolunteerID: e.VolunteerID,
				CreatedAt:   now,
			},
		}
		if err := c.SetPassword(e.Password); err != nil {
			return nil, errors.Wrapf(err, "hashing password of %q", e.Email)
		}
		r.creds = append(r.creds, c)
	}
	return r, nil
}

// NewDemoRoster builds the roster of DemoAccounts.
func NewDemoRoster() (*Roster, error) {
	return NewRoster(DemoAccounts...)
}

// Match returns the identity of the first credential whose email matches
// (ignoring case) and whose password is exactly pwd.
func (r *Roster) Match(email, pwd string) (Identity, bool) {
	for _, c := range r.creds {
		if !strings.EqualFold(c.Email, email) {
			continue
		}
		if err := c.CheckPassword(pwd); err == nil {
			return c.Identity, true
		}
	}
	return Identity{}, false
}

func (r *Roster) Len() int { return len(r.creds) }
