// Package session persists the authenticated identity of one client session
// in a single, fixed storage slot.
package session

import (
	"fmt"
	"sync"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/user"
)

// SlotKey is the one storage key holding the persisted session.
const SlotKey = "umeed_user"

// Session is a snapshot of the client session state.
// Identity is set iff the session is authenticated.
type Session struct {
	Identity *user.Identity `json:"user"`
	Loading  bool           `json:"loading"`
}

func (s Session) IsAuthenticated() bool { return s.Identity != nil }

// Role returns RoleUnknown when unauthenticated.
func (s Session) Role() user.Role {
	if s.Identity == nil {
		return user.RoleUnknown
	}
	return s.Identity.Role
}

// Store owns the in-memory Session and its persistence slot.
type Store struct {
	storage Storage
	logger  core.Logger

	mu      sync.RWMutex
	current Session
}

// NewStore returns a Store in the loading state; call Restore once at start-up.
func NewStore(storage Storage, logger core.Logger) *Store {
	vala.BeginValidation().Validate(
		vala.IsNotNil(storage, "storage"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return &Store{
		storage: storage,
		logger:  logger,
		current: Session{Loading: true},
	}
}

// Current returns a copy of the in-memory Session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.copy()
}

// Restore reads the slot. It never fails: an absent value gives an
// unauthenticated Session and an unreadable one is also removed from the slot.
func (s *Store) Restore() Session {
	identity, err := s.read()
	if err != nil {
		s.logger.Debug(fmt.Sprintf("discarding persisted session: %v", err))
		var rErr *RestoreError
		if errors.As(err, &rErr) {
			if rmErr := s.storage.RemoveItem(SlotKey); rmErr != nil {
				s.logger.Warn(fmt.Sprintf("clearing malformed session: %v", rmErr), rmErr)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{Identity: identity}
	return s.current.copy()
}

func (s *Store) read() (*user.Identity, error) {
	value, ok, err := s.storage.GetItem(SlotKey)
	if err != nil {
		return nil, errors.Wrap(err, "reading session slot")
	}
	if !ok {
		return nil, nil
	}
	identity, err := Decode(value)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// Save overwrites the slot with identity. The in-memory Session only changes once the write succeeded.
func (s *Store) Save(identity user.Identity) error {
	value, err := Encode(identity)
	if err != nil {
		return err
	}
	if err = s.storage.SetItem(SlotKey, value); err != nil {
		return errors.Wrap(err, "writing session slot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{Identity: &identity}
	return nil
}

// Clear removes the slot. The in-memory Session is reset even if removal fails.
func (s *Store) Clear() error {
	err := s.storage.RemoveItem(SlotKey)

	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	return errors.Wrap(err, "removing session slot")
}

func (s Session) copy() Session {
	if s.Identity != nil {
		id := *s.Identity
		s.Identity = &id
	}
	return s
}
