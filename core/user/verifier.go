package user

import (
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
)

// ErrInvalidCredentials is the only verification failure; it never tells whether the email exists.
var ErrInvalidCredentials = errors.New("Invalid email or password")

// sleepFunc is mockable in tests.
var sleepFunc = time.Sleep

// Verifier checks submitted credentials against a Roster.
type Verifier struct {
	roster  *Roster
	latency time.Duration
}

// NewVerifier returns a Verifier that waits latency before every answer.
func NewVerifier(roster *Roster, latency time.Duration) *Verifier {
	vala.BeginValidation().Validate(
		vala.IsNotNil(roster, "roster"),
	).CheckAndPanic()

	return &Verifier{roster: roster, latency: latency}
}

// NewDemoVerifier builds a Verifier over the demo roster, using the configured latency.
func NewDemoVerifier(conf *core.Config) (*Verifier, error) {
	roster, err := NewDemoRoster()
	if err != nil {
		return nil, errors.Wrap(err, "building demo roster")
	}
	return NewVerifier(roster, conf.Auth.VerifyLatency), nil
}

// Verify matches the email case-insensitively (surrounding whitespace ignored)
// and the password exactly. The returned Identity never holds the password.
func (v *Verifier) Verify(email, pwd string) (Identity, error) {
	if v.latency > 0 {
		sleepFunc(v.latency)
	}
	if id, ok := v.roster.Match(core.CleanString(email), pwd); ok {
		return id, nil
	}
	return Identity{}, ErrInvalidCredentials
}
