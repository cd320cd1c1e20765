package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/access"
	"github.com/umeedfoundation/console/core/attendance"
	"github.com/umeedfoundation/console/core/guard"
	"github.com/umeedfoundation/console/core/lead"
	"github.com/umeedfoundation/console/core/report"
	"github.com/umeedfoundation/console/core/settings"
	"github.com/umeedfoundation/console/core/student"
	"github.com/umeedfoundation/console/core/volunteer"
)

type (
	// Deps are the services behind the API.
	Deps struct {
		Verifier      access.Verifier
		StudentSvc    student.ServiceInterface
		VolunteerSvc  volunteer.ServiceInterface
		AttendanceSvc attendance.ServiceInterface
		ReportSvc     report.ServiceInterface
		SettingsSvc   settings.ServiceInterface
		LeadSvc       lead.ServiceInterface
		Registry      *prometheus.Registry
	}

	Server struct {
		conf       *core.Config
		logger     core.Logger
		validate   *validator.Validate
		translator ut.Translator
		deps       Deps

		app      *echo.Echo
		metrics  *Metrics
		limiter  *rateLimiter
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(
	conf *core.Config,
	logger core.Logger,
	validate *validator.Validate,
	translator ut.Translator,
	deps Deps,
) *Server {
	vala.BeginValidation().Validate(
		vala.IsNotNil(deps.Verifier, "verifier"),
		vala.IsNotNil(deps.StudentSvc, "student service"),
		vala.IsNotNil(deps.VolunteerSvc, "volunteer service"),
		vala.IsNotNil(deps.AttendanceSvc, "attendance service"),
		vala.IsNotNil(deps.ReportSvc, "report service"),
		vala.IsNotNil(deps.SettingsSvc, "settings service"),
		vala.IsNotNil(deps.LeadSvc, "lead service"),
	).CheckAndPanic()

	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	s := &Server{
		conf:       conf,
		logger:     logger,
		validate:   validate,
		translator: translator,
		deps:       deps,
		app:        echo.New(),
		metrics:    NewMetrics(deps.Registry),
		limiter:    newRateLimiter(conf.Leads.RatePerMinute, conf.Leads.Burst),
		errors:     make(chan error, 1),
		shutdown:   shutdown,
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.conf.Debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{s.conf.FrontendBaseURL},
		AllowCredentials: true,
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.logger, s.translator, s.SignalShutdown)
	s.app.Debug = s.conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", s.home)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.deps.Registry, promhttp.HandlerOpts{})))

	v1 := s.app.Group("/v1", sessionMiddleware(s.conf, s.logger, s.deps.Verifier))

	registerAuthAPI(v1, s.deps.Verifier, s.validate, s.metrics, s.guardMiddleware)
	registerStudentAPI(v1.Group("/students", s.guardMiddleware(guard.StudentsPath)),
		s.deps.StudentSvc, s.deps.ReportSvc, s.validate, s.metrics)
	registerVolunteerAPI(v1.Group("/volunteers", s.guardMiddleware(guard.VolunteersPath)),
		s.deps.VolunteerSvc, s.validate)
	registerAttendanceAPI(v1.Group("/attendance", s.guardMiddleware(guard.AttendancePath)),
		s.deps.AttendanceSvc, s.validate)
	registerReportAPI(v1, s.deps.ReportSvc, s.metrics, s.guardMiddleware)
	registerSettingsAPI(v1.Group("/settings", s.guardMiddleware(guard.SettingsPath)),
		s.deps.SettingsSvc, s.validate)
	registerLeadAPI(v1.Group("/leads"), s.deps.LeadSvc, s.validate, lead.NewPolicy(), s.metrics,
		s.limiter.middleware(s.logger), s.guardMiddleware(guard.VolunteersPath))
}

// Start blocks serving requests; a failure other than a shutdown is sent to Errors.
func (s *Server) Start() {
	s.limiter.start()
	if err := s.app.Start(s.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the process to shut down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.stop()
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	s.limiter.stop()
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.AppName+" Console API!")
}
