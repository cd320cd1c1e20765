package access_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedfoundation/console/core/access"
	"github.com/umeedfoundation/console/core/session"
	"github.com/umeedfoundation/console/core/user"
	"github.com/umeedfoundation/console/tests"
)

func newContext(t *testing.T, storage ...session.Storage) *access.Context {
	t.Helper()
	var s session.Storage = session.NewMemoryStorage()
	if len(storage) > 0 {
		s = storage[0]
	}
	logger := testutil.NewLogger(t)
	return access.New(testutil.NewVerifier(t), session.NewStore(s, logger), logger)
}

func TestContext_Lifecycle(t *testing.T) {
	ctx := newContext(t)
	assert.True(t, ctx.Current().Loading)
	assert.False(t, ctx.IsAuthenticated())

	got := ctx.Restore()
	assert.False(t, got.Loading)
	assert.False(t, got.IsAuthenticated())

	require.NoError(t, ctx.Login("admin@umeed.org", "admin123"))
	cur := ctx.Current()
	require.True(t, cur.IsAuthenticated())
	assert.False(t, cur.Loading)
	assert.Equal(t, user.RoleAdmin, cur.Identity.Role)
	assert.Equal(t, "Admin User", cur.Identity.FullName)

	require.NoError(t, ctx.Logout())
	assert.False(t, ctx.IsAuthenticated())
	assert.False(t, ctx.Current().Loading, "loading never comes back")
}

func TestContext_HasAnyRoleAfterLoginAndLogout(t *testing.T) {
	for _, role := range user.AllRoles {
		t.Run(role.String(), func(t *testing.T) {
			ctx := newContext(t)
			ctx.Restore()
			assert.False(t, ctx.HasAnyRole(role))

			id := testutil.Identity(t, role)
			require.NoError(t, ctx.Login(id.Email, testutil.Password(role)))
			assert.True(t, ctx.HasAnyRole(role))
			for _, other := range user.AllRoles {
				if other != role {
					assert.False(t, ctx.HasAnyRole(other))
				}
			}
			assert.False(t, ctx.HasAnyRole())

			require.NoError(t, ctx.Logout())
			assert.False(t, ctx.HasAnyRole(role))
		})
	}
}

func TestContext_LoginFailureKeepsState(t *testing.T) {
	ctx := newContext(t)
	ctx.Restore()
	require.NoError(t, ctx.Login("volunteer@umeed.org", "vol123"))
	before := ctx.Current()

	err := ctx.Login("admin@umeed.org", "wrong")
	assert.Equal(t, user.ErrInvalidCredentials, err)
	assert.EqualError(t, err, "Invalid email or password")
	assert.Equal(t, before, ctx.Current())
}

func TestContext_LogoutIdempotent(t *testing.T) {
	ctx := newContext(t)
	ctx.Restore()

	require.NoError(t, ctx.Logout())
	require.NoError(t, ctx.Logout())
	assert.False(t, ctx.IsAuthenticated())
	assert.False(t, ctx.Current().Loading)
}

func TestContext_RestoreOnce(t *testing.T) {
	storage := session.NewMemoryStorage()
	first := newContext(t, storage)
	first.Restore()
	require.NoError(t, first.Login("coordinator@umeed.org", "coord123"))

	// a fresh client session on the same slot
	second := newContext(t, storage)
	got := second.Restore()
	require.True(t, got.IsAuthenticated())
	assert.Equal(t, "v1", got.Identity.VolunteerID)

	// later restores do not re-read the slot
	require.NoError(t, storage.RemoveItem(session.SlotKey))
	assert.True(t, second.Restore().IsAuthenticated())
}

func TestContext_ObserversNotifiedSynchronously(t *testing.T) {
	ctx := newContext(t)

	var seen []session.Session
	unsubscribe := ctx.Subscribe(func(s session.Session) { seen = append(seen, s) })

	var order []string
	ctx.Subscribe(func(session.Session) { order = append(order, "a") })
	ctx.Subscribe(func(session.Session) { order = append(order, "b") })

	ctx.Restore()
	require.Len(t, seen, 1)
	assert.False(t, seen[0].IsAuthenticated())

	require.NoError(t, ctx.Login("admin@umeed.org", "admin123"))
	require.Len(t, seen, 2, "notified before Login returns")
	assert.True(t, seen[1].IsAuthenticated())

	_ = ctx.Login("admin@umeed.org", "nope")
	assert.Len(t, seen, 2, "failed login is not a mutation")

	require.NoError(t, ctx.Logout())
	require.Len(t, seen, 3)
	assert.False(t, seen[2].IsAuthenticated())

	unsubscribe()
	unsubscribe()
	require.NoError(t, ctx.Login("admin@umeed.org", "admin123"))
	assert.Len(t, seen, 3)

	assert.Equal(t, []string{"a", "b", "a", "b", "a", "b", "a", "b"}, order)
}

func TestContext_IsolatedSessions(t *testing.T) {
	a := access.Open(testutil.NewVerifier(t), session.NewStore(session.NewMemoryStorage(), testutil.NewLogger(t)), testutil.NewLogger(t))
	b := access.Open(testutil.NewVerifier(t), session.NewStore(session.NewMemoryStorage(), testutil.NewLogger(t)), testutil.NewLogger(t))

	require.NoError(t, a.Login("admin@umeed.org", "admin123"))
	assert.True(t, a.IsAuthenticated())
	assert.False(t, b.IsAuthenticated())
}

func TestContext_ConcurrentLogins(t *testing.T) {
	ctx := newContext(t)
	ctx.Restore()

	var wg sync.WaitGroup
	for _, role := range user.AllRoles {
		role := role
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := testutil.Identity(t, role)
			assert.NoError(t, ctx.Login(id.Email, testutil.Password(role)))
		}()
	}
	wg.Wait()

	// one of them won; the session is consistent
	cur := ctx.Current()
	require.True(t, cur.IsAuthenticated())
	assert.True(t, cur.Identity.Role.In(user.AllRoles...))
}
