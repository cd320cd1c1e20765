package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	echoapi "github.com/umeedfoundation/console/apps/api/echo"
	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/attendance"
	"github.com/umeedfoundation/console/core/lead"
	"github.com/umeedfoundation/console/core/report"
	"github.com/umeedfoundation/console/core/settings"
	"github.com/umeedfoundation/console/core/student"
	"github.com/umeedfoundation/console/core/user"
	"github.com/umeedfoundation/console/core/volunteer"
	emailsvc "github.com/umeedfoundation/console/services/email"
	inmemdb "github.com/umeedfoundation/console/storage/inmem"
	testutil "github.com/umeedfoundation/console/tests"
)

var (
	errNotAuthenticated = httpErr{Error: "user not authenticated"}
	errForbidden        = httpErr{Error: "permission denied"}
	errNotFound         = httpErr{Error: "not found"}
)

// setup serves the seeded demo data.
func setup(t *testing.T) *echoapi.Server {
	t.Helper()
	conf := testutil.NewConfig()
	logger := testutil.NewLogger(t)
	validate, translator := testutil.NewValidator()
	core.ParseEmailTemplates(logger)
	emailsvc.ResetSentMessages()

	db := inmemdb.Open()
	inmemdb.Seed(db)

	students := student.NewService(inmemdb.NewStudentRepository(db))
	volunteers := volunteer.NewService(inmemdb.NewVolunteerRepository(db))
	att, err := attendance.NewService(inmemdb.NewAttendanceRepository(db), students, conf)
	require.NoError(t, err)

	app := echoapi.NewServer(conf, logger, validate, translator, echoapi.Deps{
		Verifier:      testutil.NewVerifier(t),
		StudentSvc:    students,
		VolunteerSvc:  volunteers,
		AttendanceSvc: att,
		ReportSvc:     report.NewService(students, volunteers, att),
		SettingsSvc:   settings.NewService(conf),
		LeadSvc:       lead.NewService(inmemdb.NewLeadRepository(db), emailsvc.NewConsoleServiceMock(conf, logger), conf, logger),
		Registry:      prometheus.NewRegistry(),
	})
	t.Cleanup(func() { _ = app.Close() })
	return app
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	cookie   *http.Cookie
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path string, cookie *http.Cookie, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, nil, data...)
}

// login signs in the demo account of role and returns its session cookie.
func login(t *testing.T, app http.Handler, role user.Role) *http.Cookie {
	t.Helper()
	body := marchallObj(t, user.LoginRequest{Email: testutil.Identity(t, role).Email, Password: testutil.Password(role)})
	req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie, "login did not set the session cookie")
	return cookie
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testutil.NewConfig().Session.CookieName {
			return c
		}
	}
	return nil
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.cookie, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
