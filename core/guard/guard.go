// Package guard decides, per navigation, whether a console route renders,
// redirects or waits for the session restore.
package guard

import (
	"sync"

	"github.com/umeedfoundation/console/core/session"
)

// State of the guard state machine.
type State uint8

const (
	Loading State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "LOADING"
	case Unauthenticated:
		return "UNAUTHENTICATED"
	case Authenticated:
		return "AUTHENTICATED"
	}
	return "UNKNOWN"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// StateOf derives the guard state from a session snapshot.
func StateOf(s session.Session) State {
	switch {
	case s.Loading:
		return Loading
	case s.IsAuthenticated():
		return Authenticated
	}
	return Unauthenticated
}

// Outcome of a navigation.
type Outcome uint8

const (
	Render Outcome = iota + 1
	ShowLoading
	Redirect
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case ShowLoading:
		return "loading"
	case Redirect:
		return "redirect"
	case NotFound:
		return "not_found"
	}
	return "unknown"
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Decision is the answer to a navigation.
type Decision struct {
	Outcome  Outcome
	Location string // Redirect only
	Route    Route
}

// Source is what the guard observes; *access.Context implements it.
type Source interface {
	Current() session.Session
	Subscribe(fn func(session.Session)) (unsubscribe func())
}

// Guard tracks the state of one client session.
type Guard struct {
	src   Source
	unsub func()

	mu       sync.Mutex
	state    State
	watchers []func(from, to State)
}

// New starts following src; Close stops it.
func New(src Source) *Guard {
	g := &Guard{src: src, state: StateOf(src.Current())}
	g.unsub = src.Subscribe(g.observe)
	return g
}

func (g *Guard) Close() {
	if g.unsub != nil {
		g.unsub()
	}
}

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Watch calls fn on every state transition.
func (g *Guard) Watch(fn func(from, to State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.watchers = append(g.watchers, fn)
}

func (g *Guard) observe(s session.Session) {
	to := StateOf(s)

	g.mu.Lock()
	from := g.state
	g.state = to
	watchers := append([]func(from, to State){}, g.watchers...)
	g.mu.Unlock()

	if from == to {
		return
	}
	for _, fn := range watchers {
		fn(from, to)
	}
}

// Decide resolves a navigation to path against the current session.
func (g *Guard) Decide(path string) Decision {
	return Decide(g.src.Current(), path)
}

// Decide resolves a navigation to path for session s.
func Decide(s session.Session, path string) Decision {
	route, ok := Lookup(path)
	if !ok {
		return Decision{Outcome: NotFound}
	}

	switch route.Access {
	case AccessRedirect:
		return Decision{Outcome: Redirect, Location: route.RedirectTo, Route: route}
	case AccessPublic:
		if route.Path == LoginPath && s.IsAuthenticated() {
			return Decision{Outcome: Redirect, Location: LandingPath, Route: route}
		}
		return Decision{Outcome: Render, Route: route}
	}

	switch StateOf(s) {
	case Loading:
		return Decision{Outcome: ShowLoading, Route: route}
	case Unauthenticated:
		return Decision{Outcome: Redirect, Location: LoginPath, Route: route}
	}
	if !route.Allows(s.Role()) {
		// role mismatch keeps the user signed in
		return Decision{Outcome: Redirect, Location: LandingPath, Route: route}
	}
	return Decision{Outcome: Render, Route: route}
}
