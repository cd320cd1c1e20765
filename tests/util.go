package testutil

import (
	"net/mail"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zaptest"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/user"
	logsvc "github.com/umeedfoundation/console/services/logger"
)

// NewConfig is a TEST configuration that does not read the environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:              "TEST",
		TestMode:         true,
		AppName:          "Umeed",
		Build:            "test",
		SecretKey:        "test-secret-key",
		FrontendBaseURL:  "http://localhost:5173",
		DefaultFromEmail: mail.Address{Name: "Umeed", Address: "noreply@localhost"},
		LeadsNotifyEmail: mail.Address{Name: "Umeed Team", Address: "team@localhost"},
		Server: core.ServerConfig{
			Address:         ":0",
			Host:            "localhost",
			ShutdownTimeout: time.Second,
		},
		Session: core.SessionConfig{
			CookieName: "umeed_user",
			MaxAge:     time.Hour,
		},
		Leads: core.LeadsConfig{
			RatePerMinute: 1,
			Burst:         2,
		},
		Attendance: core.AttendanceConfig{
			SessionRule: "FREQ=WEEKLY;BYDAY=SU;BYHOUR=10;BYMINUTE=0;BYSECOND=0",
		},
		Org: core.OrgConfig{
			Name:    "Umeed Child Foundation",
			Email:   "contact@umeedchildfoundation.org",
			Phone:   "+91 98765 43210",
			Address: "Ahmedabad, Gujarat, India",
		},
	}
}

// NewLogger writes to the test log; Rollbar stays disabled.
func NewLogger(t *testing.T) core.Logger {
	logger := logsvc.NewRollbarLogger(zaptest.NewLogger(t), NewConfig())
	logger.Enable(false)
	return logger
}

// NewVerifier is a demo-roster Verifier without latency.
func NewVerifier(t *testing.T) *user.Verifier {
	roster, err := user.NewDemoRoster()
	if err != nil {
		t.Fatalf("NewVerifier() failed: %v", err)
	}
	return user.NewVerifier(roster, 0)
}

// Identity returns the demo identity of role.
func Identity(t *testing.T, role user.Role) user.Identity {
	for _, acc := range user.DemoAccounts {
		if acc.Role == role {
			return user.Identity{
				ID:          acc.ID,
				Email:       acc.Email,
				FullName:    acc.FullName,
				Role:        acc.Role,
				VolunteerID: acc.VolunteerID,
				CreatedAt:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			}
		}
	}
	t.Fatalf("Identity(): no demo account with role %v", role)
	return user.Identity{}
}

// Password returns the demo password of role.
func Password(role user.Role) string {
	for _, acc := range user.DemoAccounts {
		if acc.Role == role {
			return acc.Password
		}
	}
	return ""
}

// NewValidator returns a validator with the console's custom tags and English texts.
func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate, translator
}
