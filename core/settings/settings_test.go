package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/umeedfoundation/console/tests"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestService_Defaults(t *testing.T) {
	conf := testutil.NewConfig()
	got := NewService(conf).Get()
	assert.Equal(t, Settings{
		OrgName:             "Umeed Child Foundation",
		OrgEmail:            "contact@umeedchildfoundation.org",
		OrgPhone:            "+91 98765 43210",
		OrgAddress:          "Ahmedabad, Gujarat, India",
		EmailNotifications:  true,
		AttendanceReminders: true,
		WeeklyReports:       false,
		SessionRule:         conf.Attendance.SessionRule,
	}, got)
}

func TestService_Update(t *testing.T) {
	validate, _ := testutil.NewValidator()
	svc := NewService(testutil.NewConfig())

	us := UpdateSettings{OrgEmail: strPtr(" Hello@Umeed.ORG "), WeeklyReports: boolPtr(true)}
	require.NoError(t, us.Validate(validate))
	got := svc.Update(us)

	assert.Equal(t, "hello@umeed.org", got.OrgEmail)
	assert.True(t, got.WeeklyReports)
	assert.Equal(t, "Umeed Child Foundation", got.OrgName, "unset fields are kept")
	assert.Equal(t, got, svc.Get())
}

func TestUpdateSettings_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	tests := []struct {
		name string
		us   UpdateSettings
	}{
		{name: "blank name", us: UpdateSettings{OrgName: strPtr("   ")}},
		{name: "bad email", us: UpdateSettings{OrgEmail: strPtr("nope")}},
		{name: "bad phone", us: UpdateSettings{OrgPhone: strPtr("12")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.us.Validate(validate))
		})
	}
}
