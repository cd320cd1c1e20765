package dig_container

import (
	"log"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

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
	logsvc "github.com/umeedfoundation/console/services/logger"
	inmemdb "github.com/umeedfoundation/console/storage/inmem"
)

// ServerParams are the dependencies of the echo server.
type ServerParams struct {
	dig.In

	Conf          *core.Config
	Logger        core.Logger
	Validate      *validator.Validate
	Translator    ut.Translator
	Verifier      *user.Verifier
	StudentSvc    student.ServiceInterface
	VolunteerSvc  volunteer.ServiceInterface
	AttendanceSvc attendance.ServiceInterface
	ReportSvc     report.ServiceInterface
	SettingsSvc   settings.ServiceInterface
	LeadSvc       lead.ServiceInterface
	Registry      *prometheus.Registry
}

func newLogger(conf *core.Config) *logsvc.RollbarLogger {
	logger := logsvc.NewRollbarLogger(logsvc.NewZap(conf, "api"), conf)
	logger.Enable(!conf.Debug)
	return logger
}

// newDB opens the in-memory store and loads the demo data.
func newDB() *inmemdb.DB {
	db := inmemdb.Open()
	inmemdb.Seed(db)
	return db
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(p.Conf, p.Logger, p.Validate, p.Translator, echoapi.Deps{
		Verifier:      p.Verifier,
		StudentSvc:    p.StudentSvc,
		VolunteerSvc:  p.VolunteerSvc,
		AttendanceSvc: p.AttendanceSvc,
		ReportSvc:     p.ReportSvc,
		SettingsSvc:   p.SettingsSvc,
		LeadSvc:       p.LeadSvc,
		Registry:      p.Registry,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger, dig.As(new(core.Logger))))
	must(c.Provide(newDB))
	must(c.Provide(newEmailService))
	must(c.Provide(validator.New))
	must(c.Provide(newTranslator))
	must(c.Provide(newRegistry))

	// repositories
	must(c.Provide(inmemdb.NewStudentRepository))
	must(c.Provide(inmemdb.NewVolunteerRepository))
	must(c.Provide(inmemdb.NewAttendanceRepository))
	must(c.Provide(inmemdb.NewLeadRepository))

	// services
	must(c.Provide(user.NewDemoVerifier))
	must(c.Provide(student.NewService, dig.As(new(student.ServiceInterface), new(attendance.Roster))))
	must(c.Provide(volunteer.NewService, dig.As(new(volunteer.ServiceInterface))))
	must(c.Provide(attendance.NewService, dig.As(new(attendance.ServiceInterface))))
	must(c.Provide(report.NewService, dig.As(new(report.ServiceInterface))))
	must(c.Provide(settings.NewService, dig.As(new(settings.ServiceInterface))))
	must(c.Provide(lead.NewService, dig.As(new(lead.ServiceInterface))))

	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
