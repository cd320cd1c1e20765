package student

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/umeedfoundation/console/core"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDropped  Status = "dropped"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusDropped}

type Student struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Gender        Gender    `json:"gender"`
	DateOfBirth   core.Date `json:"date_of_birth"`
	SchoolName    string    `json:"school_name,omitempty"`
	Standard      string    `json:"standard"`
	GuardianName  string    `json:"guardian_name,omitempty"`
	GuardianPhone string    `json:"guardian_phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	JoinDate      core.Date `json:"join_date"`
	Status        Status    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

func (s Student) IsActive() bool { return s.Status == StatusActive }

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	FullName      string    `json:"full_name" validate:"required,notblank"`
	Gender        Gender    `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth   core.Date `json:"date_of_birth"`
	SchoolName    string    `json:"school_name"`
	Standard      string    `json:"standard" validate:"required,numeric"`
	GuardianName  string    `json:"guardian_name"`
	GuardianPhone string    `json:"guardian_phone" validate:"omitempty,phone"`
	Address       string    `json:"address"`
	JoinDate      core.Date `json:"join_date"`
	Status        Status    `json:"status" validate:"omitempty,oneof=active inactive dropped"`
	Notes         string    `json:"notes"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FullName = core.CleanString(ns.FullName)
	ns.SchoolName = core.CleanString(ns.SchoolName)
	ns.Standard = core.CleanString(ns.Standard)
	ns.GuardianName = core.CleanString(ns.GuardianName)
	ns.GuardianPhone = core.CleanString(ns.GuardianPhone)
	ns.Address = core.CleanString(ns.Address)
	ns.Notes = core.CleanString(ns.Notes)
	if ns.Status == "" {
		ns.Status = StatusActive
	}
	if ns.JoinDate.IsZero() {
		ns.JoinDate = core.Today()
	}

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return checkDates(ns.DateOfBirth, ns.JoinDate)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Nil fields are left untouched.
type UpdateStudent struct {
	FullName      *string    `json:"full_name" validate:"omitempty,notblank"`
	Gender        *Gender    `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth   *core.Date `json:"date_of_birth"`
	SchoolName    *string    `json:"school_name"`
	Standard      *string    `json:"standard" validate:"omitempty,numeric"`
	GuardianName  *string    `json:"guardian_name"`
	GuardianPhone *string    `json:"guardian_phone" validate:"omitempty,phone"`
	Address       *string    `json:"address"`
	JoinDate      *core.Date `json:"join_date"`
	Status        *Status    `json:"status" validate:"omitempty,oneof=active inactive dropped"`
	Notes         *string    `json:"notes"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate, orig Student) error {
	for _, s := range []*string{us.FullName, us.SchoolName, us.Standard, us.GuardianName, us.GuardianPhone, us.Address, us.Notes} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	if err := validate.Struct(us); err != nil {
		return err
	}

	dob, join := orig.DateOfBirth, orig.JoinDate
	if us.DateOfBirth != nil {
		dob = *us.DateOfBirth
	}
	if us.JoinDate != nil {
		join = *us.JoinDate
	}
	return checkDates(dob, join)
}

// apply copies the set fields of us onto s.
func (us UpdateStudent) apply(s Student) Student {
	if us.FullName != nil {
		s.FullName = *us.FullName
	}
	if us.Gender != nil {
		s.Gender = *us.Gender
	}
	if us.DateOfBirth != nil {
		s.DateOfBirth = *us.DateOfBirth
	}
	if us.SchoolName != nil {
		s.SchoolName = *us.SchoolName
	}
	if us.Standard != nil {
		s.Standard = *us.Standard
	}
	if us.GuardianName != nil {
		s.GuardianName = *us.GuardianName
	}
	if us.GuardianPhone != nil {
		s.GuardianPhone = *us.GuardianPhone
	}
	if us.Address != nil {
		s.Address = *us.Address
	}
	if us.JoinDate != nil && !us.JoinDate.IsZero() {
		s.JoinDate = *us.JoinDate
	}
	if us.Status != nil {
		s.Status = *us.Status
	}
	if us.Notes != nil {
		s.Notes = *us.Notes
	}
	return s
}

func checkDates(dob, join core.Date) error {
	if !dob.IsZero() && dob.After(core.Today()) {
		return core.NewValidationError(nil, core.FieldError{Field: "date_of_birth", Error: "date of birth cannot be in the future"})
	}
	if !dob.IsZero() && !join.IsZero() && join.Before(dob) {
		return core.NewValidationError(nil, core.FieldError{Field: "join_date", Error: "join date cannot be before date of birth"})
	}
	return nil
}

// QueryFilter narrows a student listing. Empty and "all" values do not filter.
type QueryFilter struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	Standard string `query:"standard"`
	Gender   string `query:"gender"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = cleanChoice(qf.Status)
	qf.Standard = cleanChoice(qf.Standard)
	qf.Gender = cleanChoice(qf.Gender)
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == "" && qf.Standard == "" && qf.Gender == ""
}

// Match applies every set criterion; Search is a case-insensitive substring of the name.
func (qf QueryFilter) Match(s Student) bool {
	if qf.Search != "" && !core.ContainsFold(s.FullName, qf.Search) {
		return false
	}
	if qf.Status != "" && string(s.Status) != qf.Status {
		return false
	}
	if qf.Standard != "" && s.Standard != qf.Standard {
		return false
	}
	if qf.Gender != "" && string(s.Gender) != qf.Gender {
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

// CompareStandards orders numeric standards by value, others after them lexically.
func CompareStandards(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return ai - bi
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
