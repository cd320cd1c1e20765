// Package access exposes the state of one client session to the rest of the
// application: who is signed in, whether the initial restore is still running,
// and which roles they hold.
package access

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/session"
	"github.com/umeedfoundation/console/core/user"
)

// Verifier checks credentials.
type Verifier interface {
	Verify(email, pwd string) (user.Identity, error)
}

// Observer is called synchronously with the new snapshot after every mutation.
// It must not call Login or Logout.
type Observer = func(session.Session)

// Context is the access state of one client session. Create one per session and
// pass it to its consumers; it is safe for concurrent use.
type Context struct {
	verifier Verifier
	store    *session.Store
	logger   core.Logger

	restoreOnce sync.Once

	// serializes mutations with their notifications
	mutateMu sync.Mutex

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObsID int
}

// New returns a Context in the loading state. Call Restore once the consumers are subscribed.
func New(verifier Verifier, store *session.Store, logger core.Logger) *Context {
	vala.BeginValidation().Validate(
		vala.IsNotNil(verifier, "verifier"),
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return &Context{
		verifier:  verifier,
		store:     store,
		logger:    logger,
		observers: make(map[int]Observer),
	}
}

// Open is New followed by Restore.
func Open(verifier Verifier, store *session.Store, logger core.Logger) *Context {
	c := New(verifier, store, logger)
	c.Restore()
	return c
}

// Restore performs the one-time restore of the persisted session; later calls are no-ops.
func (c *Context) Restore() session.Session {
	c.restoreOnce.Do(func() {
		c.mutateMu.Lock()
		defer c.mutateMu.Unlock()
		c.notify(c.store.Restore())
	})
	return c.Current()
}

// Current returns a snapshot of the session.
func (c *Context) Current() session.Session {
	return c.store.Current()
}

// IsAuthenticated is a shortcut for Current().IsAuthenticated().
func (c *Context) IsAuthenticated() bool {
	return c.store.Current().IsAuthenticated()
}

// Login verifies the credentials and, on success, persists and publishes the new identity.
// On failure the session is left unchanged and user.ErrInvalidCredentials is returned.
func (c *Context) Login(email, pwd string) error {
	// verification may be slow; do not hold the mutation lock meanwhile
	identity, err := c.verifier.Verify(email, pwd)
	if err != nil {
		return err
	}

	c.mutateMu.Lock()
	defer c.mutateMu.Unlock()
	if err = c.store.Save(identity); err != nil {
		return errors.Wrap(err, "saving session")
	}
	c.logger.Info(fmt.Sprintf("login: %s", identity.Email), identity)
	c.notify(c.store.Current())
	return nil
}

// Logout clears the session. Logging out while signed out is a no-op.
func (c *Context) Logout() error {
	c.mutateMu.Lock()
	defer c.mutateMu.Unlock()

	prev := c.store.Current()
	err := c.store.Clear()
	if prev.IsAuthenticated() {
		c.logger.Info(fmt.Sprintf("logout: %s", prev.Identity.Email), *prev.Identity)
	}
	c.notify(c.store.Current())
	return errors.Wrap(err, "clearing session")
}

// HasAnyRole is false when signed out, else whether the identity's role is one of roles.
func (c *Context) HasAnyRole(roles ...user.Role) bool {
	cur := c.store.Current()
	if !cur.IsAuthenticated() {
		return false
	}
	return cur.Identity.HasAnyRole(roles...)
}

// Subscribe registers fn; the returned func unregisters it.
func (c *Context) Subscribe(fn Observer) (unsubscribe func()) {
	c.obsMu.Lock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = fn
	c.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.obsMu.Lock()
			delete(c.observers, id)
			c.obsMu.Unlock()
		})
	}
}

// notify calls observers in subscription order. Callers hold mutateMu.
func (c *Context) notify(s session.Session) {
	c.obsMu.Lock()
	ids := make([]int, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	c.obsMu.Unlock()
	sort.Ints(ids)

	for _, id := range ids {
		c.obsMu.Lock()
		fn, ok := c.observers[id]
		c.obsMu.Unlock()
		if ok {
			fn(s)
		}
	}
}
