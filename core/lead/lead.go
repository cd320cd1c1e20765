package lead

import (
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umeedfoundation/console/core"
)

type Location string

const (
	LocationAndheri Location = "andheri"
	LocationBandra  Location = "bandra"
	LocationEither  Location = "either"
)

func (l Location) Label() string {
	switch l {
	case LocationAndheri:
		return "Andheri East"
	case LocationBandra:
		return "Bandra West"
	case LocationEither:
		return "Either Location"
	}
	return string(l)
}

// Lead is a volunteer sign-up received from the public site.
type Lead struct {
	ID                string    `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Profession        string    `json:"profession"`
	PreferredLocation Location  `json:"preferred_location"`
	Message           string    `json:"message,omitempty"`
	CreatedAt         time.Time `json:"created_at"` // UTC
}

type NewLead struct {
	FullName          string   `json:"full_name" validate:"required,notblank,max=120"`
	Email             string   `json:"email" validate:"required,email"`
	Phone             string   `json:"phone" validate:"required,phone"`
	Profession        string   `json:"profession" validate:"required,notblank,max=120"`
	PreferredLocation Location `json:"preferred_location" validate:"required,oneof=andheri bandra either"`
	Message           string   `json:"message" validate:"max=2000"`
}

// Validate strips markup from every free-text field before checking it.
func (nl *NewLead) Validate(validate *validator.Validate, policy *bluemonday.Policy) error {
	nl.FullName = core.CleanString(policy.Sanitize(nl.FullName))
	nl.Email = core.CleanString(nl.Email, true /* lower */)
	nl.Phone = core.CleanString(nl.Phone)
	nl.Profession = core.CleanString(policy.Sanitize(nl.Profession))
	nl.PreferredLocation = Location(core.CleanString(string(nl.PreferredLocation), true /* lower */))
	nl.Message = core.CleanString(policy.Sanitize(nl.Message))
	return validate.Struct(nl)
}

type (
	Repository interface {
		CreateLead(l Lead) (Lead, error)
		QueryAllLeads() ([]Lead, error)
	}

	ServiceInterface interface {
		Submit(nl NewLead) (Lead, error)
		QueryAll() ([]Lead, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
		logger  core.Logger
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config, logger core.Logger) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, conf: conf, logger: logger}
}

// NewPolicy is the sanitizer applied to lead fields: no markup at all.
func NewPolicy() *bluemonday.Policy {
	return bluemonday.StrictPolicy()
}

// Submit stores the lead and notifies the team.
func (svc *Service) Submit(nl NewLead) (Lead, error) {
	l, err := svc.repo.CreateLead(Lead{
		ID:                uuid.NewString(),
		FullName:          nl.FullName,
		Email:             nl.Email,
		Phone:             nl.Phone,
		Profession:        nl.Profession,
		PreferredLocation: nl.PreferredLocation,
		Message:           nl.Message,
		CreatedAt:         core.NowFunc().UTC(),
	})
	if err != nil {
		return Lead{}, err
	}
	svc.logger.Info("lead received", map[string]interface{}{"lead_id": l.ID, "location": string(l.PreferredLocation)})

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{svc.conf.LeadsNotifyEmail},
		ReplyTo:      &mail.Address{Name: l.FullName, Address: l.Email},
		Subject:      "New volunteer interest: " + l.FullName,
		TemplateName: "lead_received",
		TemplateData: struct {
			Lead
			PreferredLocation string
		}{Lead: l, PreferredLocation: l.PreferredLocation.Label()},
	})
	return l, nil
}

func (svc *Service) QueryAll() ([]Lead, error) {
	return svc.repo.QueryAllLeads()
}
