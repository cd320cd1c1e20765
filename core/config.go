package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		DebugHost       string
		Host            string
		ShutdownTimeout time.Duration
	}

	SessionConfig struct {
		CookieName string
		MaxAge     time.Duration
		Secure     bool
	}

	AuthConfig struct {
		VerifyLatency time.Duration
	}

	LeadsConfig struct {
		RatePerMinute float64
		Burst         int
	}

	AttendanceConfig struct {
		SessionRule string // RFC 5545 RRULE
	}

	OrgConfig struct {
		Name    string
		Email   string
		Phone   string
		Address string
	}

	CLIConfig struct {
		SessionDir string
	}

	Config struct {
		Env              string // DEV (local; default), TEST, QA, PROD
		Debug            bool
		TestMode         bool
		AppName          string
		Build            string
		SecretKey        string
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		LeadsNotifyEmail mail.Address
		RollbarToken     string
		SendgridApiKey   string

		Server     ServerConfig
		Session    SessionConfig
		Auth       AuthConfig
		Leads      LeadsConfig
		Attendance AttendanceConfig
		Org        OrgConfig
		CLI        CLIConfig
	}
)

// NewConfig loads the configuration of the current ENV from defaults, an optional
// config/.env.<env> file and the environment (variables prefixed by the ENV name).
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Umeed")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "v3q!k2@8zt#o0w1m^umeed$9x&hb7r+yd(4pcs)f6n_ja5")
	v.SetDefault("frontendBaseURL", "http://localhost:5173")
	v.SetDefault("defaultFromEmail", "Umeed <noreply@localhost>")
	v.SetDefault("leadsNotifyEmail", "Umeed Team <contact@umeedchildfoundation.org>")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("session.cookieName", "umeed_user")
	v.SetDefault("session.maxAge", 7*24*time.Hour)
	v.SetDefault("session.secure", false)
	v.SetDefault("auth.verifyLatency", 500*time.Millisecond)
	v.SetDefault("leads.ratePerMinute", 5.0)
	v.SetDefault("leads.burst", 3)
	v.SetDefault("attendance.sessionRule", "FREQ=WEEKLY;BYDAY=SU;BYHOUR=10;BYMINUTE=0;BYSECOND=0")
	v.SetDefault("org.name", "Umeed Child Foundation")
	v.SetDefault("org.email", "contact@umeedchildfoundation.org")
	v.SetDefault("org.phone", "+91 98765 43210")
	v.SetDefault("org.address", "Ahmedabad, Gujarat, India")
	v.SetDefault("cli.sessionDir", defaultSessionDir())

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("auth.verifyLatency", time.Duration(0))
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	workDir := Getwd()
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		Build:            v.GetString("build"),
		SecretKey:        v.GetString("secretKey"),
		WorkDir:          workDir,
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: mustParseAddress(v.GetString("defaultFromEmail")),
		LeadsNotifyEmail: mustParseAddress(v.GetString("leadsNotifyEmail")),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			Host:            v.GetString("server.host"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Session: SessionConfig{
			CookieName: v.GetString("session.cookieName"),
			MaxAge:     v.GetDuration("session.maxAge"),
			Secure:     v.GetBool("session.secure"),
		},
		Auth: AuthConfig{
			VerifyLatency: v.GetDuration("auth.verifyLatency"),
		},
		Leads: LeadsConfig{
			RatePerMinute: v.GetFloat64("leads.ratePerMinute"),
			Burst:         v.GetInt("leads.burst"),
		},
		Attendance: AttendanceConfig{
			SessionRule: v.GetString("attendance.sessionRule"),
		},
		Org: OrgConfig{
			Name:    v.GetString("org.name"),
			Email:   v.GetString("org.email"),
			Phone:   v.GetString("org.phone"),
			Address: v.GetString("org.address"),
		},
		CLI: CLIConfig{
			SessionDir: v.GetString("cli.sessionDir"),
		},
	}
}

func mustParseAddress(addr string) mail.Address {
	a, err := mail.ParseAddress(addr)
	if err != nil {
		log.Fatalf("config.mail.ParseAddress(%s): %v", addr, err)
	}
	return *a
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".umeed"
	}
	return filepath.Join(home, ".umeed")
}
