package volunteer

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
)

var (
	// errors
	ErrNotFound    = core.NewNotFoundError("volunteer")
	ErrEmailExists = errors.New("a volunteer with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excluded ...Volunteer) error
		CreateVolunteer(v Volunteer) (Volunteer, error)
		QueryAllVolunteers() ([]Volunteer, error)
		GetVolunteerByID(id string) (Volunteer, error)
		// FilterVolunteers applies AND operation on available QueryFilter fields.
		FilterVolunteers(filter QueryFilter) ([]Volunteer, error)
		UpdateVolunteer(v Volunteer) (Volunteer, error)
		DeleteVolunteersByID(ids ...string) error
	}

	ServiceInterface interface {
		CheckUniqueness(email string, excluded ...Volunteer) error
		Create(nv NewVolunteer) (Volunteer, error)
		QueryAll(ordering ...core.Ordering) ([]Volunteer, error)
		Filter(filter QueryFilter, ordering ...core.Ordering) ([]Volunteer, error)
		GetByID(id string) (Volunteer, error)
		Update(orig Volunteer, uv UpdateVolunteer) (Volunteer, error)
		Delete(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckUniqueness(email string, excluded ...Volunteer) error {
	if err := svc.repo.CheckEmailUniqueness(email, excluded...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nv NewVolunteer) (Volunteer, error) {
	now := core.NowFunc().UTC()
	isActive := true
	if nv.IsActive != nil {
		isActive = *nv.IsActive
	}
	v := Volunteer{
		ID:           uuid.NewString(),
		FullName:     nv.FullName,
		Email:        nv.Email,
		Phone:        nv.Phone,
		Role:         nv.Role,
		JoinDate:     nv.JoinDate,
		Availability: nv.Availability,
		IsActive:     isActive,
		Notes:        nv.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateVolunteer(v)
}

func (svc *Service) QueryAll(ordering ...core.Ordering) ([]Volunteer, error) {
	volunteers, err := svc.repo.QueryAllVolunteers()
	if err != nil {
		return nil, err
	}
	Sort(volunteers, ordering...)
	return volunteers, nil
}

func (svc *Service) Filter(filter QueryFilter, ordering ...core.Ordering) ([]Volunteer, error) {
	filter.Clean()
	var (
		volunteers []Volunteer
		err        error
	)
	if filter.IsEmpty() {
		volunteers, err = svc.repo.QueryAllVolunteers()
	} else {
		volunteers, err = svc.repo.FilterVolunteers(filter)
	}
	if err != nil {
		return nil, err
	}
	Sort(volunteers, ordering...)
	return volunteers, nil
}

func (svc *Service) GetByID(id string) (Volunteer, error) {
	return svc.repo.GetVolunteerByID(id)
}

func (svc *Service) Update(orig Volunteer, uv UpdateVolunteer) (Volunteer, error) {
	v := uv.apply(orig)
	v.UpdatedAt = core.NowFunc().UTC()
	return svc.repo.UpdateVolunteer(v)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteVolunteersByID(ids...)
}

var sortFields = map[string]core.LessFunc[Volunteer]{
	"full_name": func(a, b Volunteer) int {
		return strings.Compare(strings.ToLower(a.FullName), strings.ToLower(b.FullName))
	},
	"email": func(a, b Volunteer) int {
		return strings.Compare(a.Email, b.Email)
	},
	"role": func(a, b Volunteer) int {
		return strings.Compare(string(a.Role), string(b.Role))
	},
	"is_active": func(a, b Volunteer) int {
		switch {
		case a.IsActive == b.IsActive:
			return 0
		case b.IsActive:
			return -1
		}
		return 1
	},
	"join_date": func(a, b Volunteer) int {
		return a.JoinDate.Compare(b.JoinDate.Time)
	},
	"created_at": func(a, b Volunteer) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	},
}

// Sort orders volunteers in place; the default is newest first.
func Sort(volunteers []Volunteer, ordering ...core.Ordering) {
	if len(ordering) == 0 {
		ordering = []core.Ordering{{Field: "created_at", Ascending: false}}
	}
	sort.SliceStable(volunteers, core.SortLess(volunteers, ordering, sortFields, func(a, b Volunteer) int {
		return strings.Compare(a.ID, b.ID)
	}))
}
