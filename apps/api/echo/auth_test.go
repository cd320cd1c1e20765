package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedfoundation/console/core/user"
	testutil "github.com/umeedfoundation/console/tests"
)

type sessionBody struct {
	User       *user.Identity `json:"user"`
	State      string         `json:"state"`
	Navigation []struct {
		Label string `json:"label"`
		Path  string `json:"path"`
	} `json:"navigation"`
}

func (b sessionBody) paths() []string {
	paths := make([]string, 0, len(b.Navigation))
	for _, e := range b.Navigation {
		paths = append(paths, e.Path)
	}
	return paths
}

func Test_authApi_login(t *testing.T) {
	app := setup(t)
	invalid := marchallObj(t, httpErr{Error: "Invalid email or password"})

	tests := []httpTest{
		{
			name:     "wrong password",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			body:     marchallObj(t, user.LoginRequest{Email: "admin@umeed.org", Password: "admin1234"}),
			wantCode: http.StatusBadRequest,
			wantData: invalid,
		},
		{
			name:     "unknown email",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			body:     marchallObj(t, user.LoginRequest{Email: "nobody@umeed.org", Password: "admin123"}),
			wantCode: http.StatusBadRequest,
			wantData: invalid,
		},
		{
			name:     "password is case-sensitive",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			body:     marchallObj(t, user.LoginRequest{Email: "admin@umeed.org", Password: "ADMIN123"}),
			wantCode: http.StatusBadRequest,
			wantData: invalid,
		},
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"this field is required","password":"this field is required"}`),
		},
	}
	runHTTPTests(t, app, tests)

	t.Run("email is case-insensitive", func(t *testing.T) {
		body := marchallObj(t, user.LoginRequest{Email: "  Coordinator@UMEED.org ", Password: "coord123"})
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got sessionBody
		decode(t, rec, &got)
		require.NotNil(t, got.User)
		assert.Equal(t, "coordinator@umeed.org", got.User.Email)
		assert.Equal(t, user.RoleCoordinator, got.User.Role)
		assert.Equal(t, "v1", got.User.VolunteerID)
		assert.Equal(t, "AUTHENTICATED", got.State)
		assert.Equal(t, []string{"/dashboard", "/students", "/volunteers", "/attendance", "/reports"}, got.paths())
		assert.NotContains(t, rec.Body.String(), "password")

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, 3600, cookie.MaxAge)
	})
}

func Test_authApi_session(t *testing.T) {
	app := setup(t)

	t.Run("signed out", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/auth/session")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: []byte(`{"user":null,"state":"UNAUTHENTICATED","navigation":[]}`),
		}, rec)
	})

	t.Run("restored from cookie", func(t *testing.T) {
		cookie := login(t, app, user.RoleVolunteer)
		req, rec := newAuthRequest(http.MethodGet, "/v1/auth/session", cookie)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var got sessionBody
		decode(t, rec, &got)
		require.NotNil(t, got.User)
		assert.Equal(t, testutil.Identity(t, user.RoleVolunteer).ID, got.User.ID)
		assert.Equal(t, "AUTHENTICATED", got.State)
		assert.Equal(t, []string{"/dashboard", "/students", "/attendance"}, got.paths())
	})

	t.Run("tampered cookie is discarded", func(t *testing.T) {
		cookie := login(t, app, user.RoleVolunteer)
		cookie.Value += "x"
		req, rec := newAuthRequest(http.MethodGet, "/v1/auth/session", cookie)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: []byte(`{"user":null,"state":"UNAUTHENTICATED","navigation":[]}`),
		}, rec)

		cleared := sessionCookie(rec)
		require.NotNil(t, cleared, "malformed cookie must be cleared")
		assert.Less(t, cleared.MaxAge, 0)
	})

	t.Run("garbage cookie is discarded", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students", &http.Cookie{Name: "umeed_user", Value: "not-a-token"})
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)}, rec)
	})
}

func Test_authApi_logout(t *testing.T) {
	app := setup(t)
	cookie := login(t, app, user.RoleAdmin)

	req, rec := newAuthRequest(http.MethodPost, "/v1/auth/logout", cookie)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: []byte(`{"user":null,"state":"UNAUTHENTICATED","navigation":[]}`),
	}, rec)
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
	assert.Empty(t, cleared.Value)

	// logging out again is a no-op
	req, rec = newRequest(http.MethodPost, "/v1/auth/logout")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_authApi_navigation(t *testing.T) {
	app := setup(t)
	labels := func(t *testing.T, role user.Role) []string {
		req, rec := newAuthRequest(http.MethodGet, "/v1/navigation", login(t, app, role))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var entries []struct {
			Label string `json:"label"`
		}
		decode(t, rec, &entries)
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Label)
		}
		return out
	}

	assert.Equal(t, []string{"Dashboard", "Students", "Volunteers", "Attendance", "Reports", "Settings"}, labels(t, user.RoleAdmin))
	assert.Equal(t, []string{"Dashboard", "Students", "Volunteers", "Attendance", "Reports"}, labels(t, user.RoleCoordinator))
	assert.Equal(t, []string{"Dashboard", "Students", "Attendance"}, labels(t, user.RoleVolunteer))

	req, rec := newRequest(http.MethodGet, "/v1/navigation")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)}, rec)
}

func Test_authApi_resolve(t *testing.T) {
	app := setup(t)
	coordinator := login(t, app, user.RoleCoordinator)

	tests := []httpTest{
		{
			name:     "signed out on protected",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve?path=/students",
			wantCode: http.StatusOK,
			wantData: []byte(`{"path":"/students","outcome":"redirect","location":"/login","state":"UNAUTHENTICATED"}`),
		},
		{
			name:     "signed out on login",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve?path=/login",
			wantCode: http.StatusOK,
			wantData: []byte(`{"path":"/login","outcome":"render","state":"UNAUTHENTICATED"}`),
		},
		{
			name:     "root",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve?path=/",
			wantCode: http.StatusOK,
			wantData: []byte(`{"path":"/","outcome":"redirect","location":"/dashboard","state":"UNAUTHENTICATED"}`),
		},
		{
			name:     "role mismatch",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve?path=%2Fsettings%2F",
			cookie:   coordinator,
			wantCode: http.StatusOK,
			wantData: []byte(`{"path":"/settings","outcome":"redirect","location":"/dashboard","state":"AUTHENTICATED"}`),
		},
		{
			name:     "allowed role",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve?path=%2Freports%3Ftab%3Dcsv",
			cookie:   coordinator,
			wantCode: http.StatusOK,
			wantData: []byte(`{"path":"/reports","outcome":"render","state":"AUTHENTICATED"}`),
		},
		{
			name:     "mixed case",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve?path=/Reports/",
			cookie:   coordinator,
			wantCode: http.StatusOK,
			wantData: []byte(`{"path":"/reports","outcome":"render","state":"AUTHENTICATED"}`),
		},
		{
			name:     "login while signed in",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve?path=/login",
			cookie:   coordinator,
			wantCode: http.StatusOK,
			wantData: []byte(`{"path":"/login","outcome":"redirect","location":"/dashboard","state":"AUTHENTICATED"}`),
		},
		{
			name:     "unknown path",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve?path=/payroll",
			cookie:   coordinator,
			wantCode: http.StatusOK,
			wantData: []byte(`{"path":"/payroll","outcome":"not_found","state":"AUTHENTICATED"}`),
		},
		{
			name:     "missing path",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"path":"this field is required"}`),
		},
	}
	runHTTPTests(t, app, tests)
}
