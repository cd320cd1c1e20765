package settings

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/umeedfoundation/console/core"
)

type Settings struct {
	OrgName             string `json:"org_name"`
	OrgEmail            string `json:"org_email"`
	OrgPhone            string `json:"org_phone"`
	OrgAddress          string `json:"org_address"`
	EmailNotifications  bool   `json:"email_notifications"`
	AttendanceReminders bool   `json:"attendance_reminders"`
	WeeklyReports       bool   `json:"weekly_reports"`
	SessionRule         string `json:"session_rule"` // read-only
}

// UpdateSettings changes the set fields only.
type UpdateSettings struct {
	OrgName             *string `json:"org_name" validate:"omitempty,notblank,max=120"`
	OrgEmail            *string `json:"org_email" validate:"omitempty,email"`
	OrgPhone            *string `json:"org_phone" validate:"omitempty,phone"`
	OrgAddress          *string `json:"org_address" validate:"omitempty,max=250"`
	EmailNotifications  *bool   `json:"email_notifications"`
	AttendanceReminders *bool   `json:"attendance_reminders"`
	WeeklyReports       *bool   `json:"weekly_reports"`
}

func (us *UpdateSettings) Validate(validate *validator.Validate) error {
	for _, s := range []*string{us.OrgName, us.OrgPhone, us.OrgAddress} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	if us.OrgEmail != nil {
		*us.OrgEmail = core.CleanString(*us.OrgEmail, true /* lower */)
	}
	if us.OrgName != nil && *us.OrgName == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "org_name", Error: "this field cannot be blank"})
	}
	return validate.Struct(us)
}

func (us UpdateSettings) apply(s Settings) Settings {
	if us.OrgName != nil {
		s.OrgName = *us.OrgName
	}
	if us.OrgEmail != nil {
		s.OrgEmail = *us.OrgEmail
	}
	if us.OrgPhone != nil {
		s.OrgPhone = *us.OrgPhone
	}
	if us.OrgAddress != nil {
		s.OrgAddress = *us.OrgAddress
	}
	if us.EmailNotifications != nil {
		s.EmailNotifications = *us.EmailNotifications
	}
	if us.AttendanceReminders != nil {
		s.AttendanceReminders = *us.AttendanceReminders
	}
	if us.WeeklyReports != nil {
		s.WeeklyReports = *us.WeeklyReports
	}
	return s
}

type (
	ServiceInterface interface {
		Get() Settings
		Update(us UpdateSettings) Settings
	}

	// Service keeps the organisation settings in memory.
	Service struct {
		mu       sync.RWMutex
		settings Settings
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(conf *core.Config) *Service {
	return &Service{settings: Defaults(conf)}
}

func Defaults(conf *core.Config) Settings {
	return Settings{
		OrgName:             conf.Org.Name,
		OrgEmail:            conf.Org.Email,
		OrgPhone:            conf.Org.Phone,
		OrgAddress:          conf.Org.Address,
		EmailNotifications:  true,
		AttendanceReminders: true,
		WeeklyReports:       false,
		SessionRule:         conf.Attendance.SessionRule,
	}
}

func (svc *Service) Get() Settings {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.settings
}

// Update expects a validated UpdateSettings.
func (svc *Service) Update(us UpdateSettings) Settings {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.settings = us.apply(svc.settings)
	return svc.settings
}
