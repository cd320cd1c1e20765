package volunteer

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/umeedfoundation/console/core"
)

// Position is the volunteer's position in the organisation, not a console role.
type Position string

const (
	PositionVolunteer   Position = "volunteer"
	PositionCoordinator Position = "coordinator"
)

type Volunteer struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Role         Position  `json:"role"`
	JoinDate     core.Date `json:"join_date"`
	Availability string    `json:"availability,omitempty"`
	IsActive     bool      `json:"is_active"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

// NewVolunteer contains information needed to register a new Volunteer.
type NewVolunteer struct {
	FullName     string    `json:"full_name" validate:"required,notblank"`
	Email        string    `json:"email" validate:"required,email"`
	Phone        string    `json:"phone" validate:"omitempty,phone"`
	Role         Position  `json:"role" validate:"omitempty,oneof=volunteer coordinator"`
	JoinDate     core.Date `json:"join_date"`
	Availability string    `json:"availability"`
	IsActive     *bool     `json:"is_active"`
	Notes        string    `json:"notes"`
}

func (nv *NewVolunteer) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nv.FullName = core.CleanString(nv.FullName)
	nv.Email = core.CleanString(nv.Email, true /* lower */)
	nv.Phone = core.CleanString(nv.Phone)
	nv.Availability = core.CleanString(nv.Availability)
	nv.Notes = core.CleanString(nv.Notes)
	if nv.Role == "" {
		nv.Role = PositionVolunteer
	}
	if nv.JoinDate.IsZero() {
		nv.JoinDate = core.Today()
	}

	if err := validate.Struct(nv); err != nil {
		return err
	}
	return svc.CheckUniqueness(nv.Email)
}

// UpdateVolunteer defines what information may be provided to modify an existing Volunteer.
// Nil fields are left untouched.
type UpdateVolunteer struct {
	FullName     *string    `json:"full_name" validate:"omitempty,notblank"`
	Email        *string    `json:"email" validate:"omitempty,email"`
	Phone        *string    `json:"phone" validate:"omitempty,phone"`
	Role         *Position  `json:"role" validate:"omitempty,oneof=volunteer coordinator"`
	JoinDate     *core.Date `json:"join_date"`
	Availability *string    `json:"availability"`
	IsActive     *bool      `json:"is_active"`
	Notes        *string    `json:"notes"`
}

func (uv *UpdateVolunteer) Validate(validate *validator.Validate, orig Volunteer, svc ServiceInterface) error {
	for _, s := range []*string{uv.FullName, uv.Phone, uv.Availability, uv.Notes} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	if uv.Email != nil {
		*uv.Email = core.CleanString(*uv.Email, true /* lower */)
		if *uv.Email == "" {
			uv.Email = nil
		}
	}

	if err := validate.Struct(uv); err != nil {
		return err
	}
	if uv.Email != nil {
		return svc.CheckUniqueness(*uv.Email, orig)
	}
	return nil
}

func (uv UpdateVolunteer) apply(v Volunteer) Volunteer {
	if uv.FullName != nil {
		v.FullName = *uv.FullName
	}
	if uv.Email != nil {
		v.Email = *uv.Email
	}
	if uv.Phone != nil {
		v.Phone = *uv.Phone
	}
	if uv.Role != nil {
		v.Role = *uv.Role
	}
	if uv.JoinDate != nil && !uv.JoinDate.IsZero() {
		v.JoinDate = *uv.JoinDate
	}
	if uv.Availability != nil {
		v.Availability = *uv.Availability
	}
	if uv.IsActive != nil {
		v.IsActive = *uv.IsActive
	}
	if uv.Notes != nil {
		v.Notes = *uv.Notes
	}
	return v
}

// QueryFilter narrows a volunteer listing. Empty and "all" values do not filter.
type QueryFilter struct {
	Search string `query:"search"`
	Status string `query:"status"` // active | inactive
	Role   string `query:"role"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = cleanChoice(qf.Status)
	qf.Role = cleanChoice(qf.Role)
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == "" && qf.Role == ""
}

// Match applies every set criterion; Search is a case-insensitive substring of the name or email.
func (qf QueryFilter) Match(v Volunteer) bool {
	if qf.Search != "" && !core.ContainsFold(v.FullName, qf.Search) && !core.ContainsFold(v.Email, qf.Search) {
		return false
	}
	switch qf.Status {
	case "active":
		if !v.IsActive {
			return false
		}
	case "inactive":
		if v.IsActive {
			return false
		}
	}
	if qf.Role != "" && string(v.Role) != qf.Role {
		return false
	}
	return true
}

func cleanChoice(s string) string {
	s = core.CleanString(s, true /* lower */)
	if s == "all" {
		return ""
	}
	return s
}
