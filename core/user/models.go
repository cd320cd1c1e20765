package user

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Identity is the authenticated principal of a client session.
// It never carries the password and is replaced as a whole on re-login.
type Identity struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        Role      `json:"role"`
	VolunteerID string    `json:"volunteer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// HasAnyRole reports whether the identity holds one of roles.
func (id Identity) HasAnyRole(roles ...Role) bool {
	return id.Role.In(roles...)
}

func (id Identity) IsAdmin() bool { return id.Role == RoleAdmin }

// Credential is a roster entry: an Identity plus its password hash.
type Credential struct {
	Identity
	PasswordHash []byte `json:"-"`
}

func (c *Credential) SetPassword(pwd string) error {
	if !bcryptSafe(pwd) {
		return errors.New("password must be at most 72 bytes without NUL characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
	if err != nil {
		return err
	}
	c.PasswordHash = hash
	return nil
}

// maxPasswordLen is the number of bytes bcrypt reads; anything longer would be truncated.
const maxPasswordLen = 72

func bcryptSafe(pwd string) bool {
	return len(pwd) <= maxPasswordLen && strings.IndexByte(pwd, 0) < 0
}

// CheckPassword succeeds only if pwd is exactly the password. Passwords bcrypt cannot
// compare exactly (longer than maxPasswordLen or containing NUL) never match.
func (c *Credential) CheckPassword(pwd string) error {
	if !bcryptSafe(pwd) {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(pwd))
}

// LoginRequest is the payload of a login attempt.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
