package session

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core/user"
)

// SchemaVersion is the version tag written into every persisted session.
const SchemaVersion = 1

// envelope is the persisted form of a session:
//
//	{"version":1,"identity":{"id":"1","email":"...","full_name":"...","role":"admin","created_at":"2024-01-02T15:04:05Z"}}
type envelope struct {
	Version  int            `json:"version"`
	Identity *user.Identity `json:"identity"`
}

// RestoreError explains why a persisted value was discarded. It never reaches callers of Restore.
type RestoreError struct {
	Reason string
	Err    error
}

func (e *RestoreError) Error() string {
	if e.Err == nil {
		return "restoring session: " + e.Reason
	}
	return fmt.Sprintf("restoring session: %s: %v", e.Reason, e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }

// Encode serializes identity into the versioned envelope.
func Encode(identity user.Identity) (string, error) {
	if err := checkIdentity(identity); err != nil {
		return "", err
	}
	identity.CreatedAt = identity.CreatedAt.UTC()
	data, err := json.Marshal(envelope{Version: SchemaVersion, Identity: &identity})
	if err != nil {
		return "", errors.Wrap(err, "encoding session")
	}
	return string(data), nil
}

// Decode parses a persisted value. Any failure is a *RestoreError.
func Decode(value string) (user.Identity, error) {
	var env envelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		return user.Identity{}, &RestoreError{Reason: "malformed value", Err: err}
	}
	if env.Version != SchemaVersion {
		return user.Identity{}, &RestoreError{Reason: fmt.Sprintf("unsupported version %d", env.Version)}
	}
	if env.Identity == nil {
		return user.Identity{}, &RestoreError{Reason: "missing identity"}
	}
	if err := checkIdentity(*env.Identity); err != nil {
		return user.Identity{}, &RestoreError{Reason: "invalid identity", Err: err}
	}
	return *env.Identity, nil
}

func checkIdentity(id user.Identity) error {
	switch {
	case id.ID == "":
		return errors.New("identity id is required")
	case id.Email == "":
		return errors.New("identity email is required")
	case !id.Role.IsValid():
		return errors.Wrapf(user.ErrUnknownRole, "identity role %d", uint8(id.Role))
	}
	return nil
}
