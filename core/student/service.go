package student

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
)

var ErrNotFound = core.NewNotFoundError("student")

type (
	Repository interface {
		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		// FilterStudents applies AND operation on available QueryFilter fields.
		FilterStudents(filter QueryFilter) ([]Student, error)
		UpdateStudent(s Student) (Student, error)
		DeleteStudentsByID(ids ...string) error
	}

	ServiceInterface interface {
		Create(ns NewStudent) (Student, error)
		QueryAll(ordering ...core.Ordering) ([]Student, error)
		Filter(filter QueryFilter, ordering ...core.Ordering) ([]Student, error)
		GetByID(id string) (Student, error)
		Update(orig Student, us UpdateStudent) (Student, error)
		Delete(ids ...string) error
		Standards() ([]string, error)
		Active() ([]Student, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	now := core.NowFunc().UTC()
	s := Student{
		ID:            uuid.NewString(),
		FullName:      ns.FullName,
		Gender:        ns.Gender,
		DateOfBirth:   ns.DateOfBirth,
		SchoolName:    ns.SchoolName,
		Standard:      ns.Standard,
		GuardianName:  ns.GuardianName,
		GuardianPhone: ns.GuardianPhone,
		Address:       ns.Address,
		JoinDate:      ns.JoinDate,
		Status:        ns.Status,
		Notes:         ns.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return svc.repo.CreateStudent(s)
}

func (svc *Service) QueryAll(ordering ...core.Ordering) ([]Student, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	Sort(students, ordering...)
	return students, nil
}

func (svc *Service) Filter(filter QueryFilter, ordering ...core.Ordering) ([]Student, error) {
	filter.Clean()
	var (
		students []Student
		err      error
	)
	if filter.IsEmpty() {
		students, err = svc.repo.QueryAllStudents()
	} else {
		students, err = svc.repo.FilterStudents(filter)
	}
	if err != nil {
		return nil, err
	}
	Sort(students, ordering...)
	return students, nil
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) Update(orig Student, us UpdateStudent) (Student, error) {
	s := us.apply(orig)
	s.UpdatedAt = core.NowFunc().UTC()
	return svc.repo.UpdateStudent(s)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteStudentsByID(ids...)
}

// Standards lists the distinct standards, numerically sorted.
func (svc *Service) Standards() ([]string, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(students))
	standards := make([]string, 0, len(students))
	for _, s := range students {
		if _, ok := seen[s.Standard]; ok || s.Standard == "" {
			continue
		}
		seen[s.Standard] = struct{}{}
		standards = append(standards, s.Standard)
	}
	sort.Slice(standards, func(i, j int) bool { return CompareStandards(standards[i], standards[j]) < 0 })
	return standards, nil
}

// Active lists the active students by name; they are the ones attendance is taken for.
func (svc *Service) Active() ([]Student, error) {
	students, err := svc.repo.FilterStudents(QueryFilter{Status: string(StatusActive)})
	if err != nil {
		return nil, errors.Wrap(err, "filtering active students")
	}
	Sort(students, core.Ordering{Field: "full_name", Ascending: true})
	return students, nil
}

var sortFields = map[string]core.LessFunc[Student]{
	"full_name": func(a, b Student) int {
		return strings.Compare(strings.ToLower(a.FullName), strings.ToLower(b.FullName))
	},
	"standard": func(a, b Student) int {
		return CompareStandards(a.Standard, b.Standard)
	},
	"status": func(a, b Student) int {
		return strings.Compare(string(a.Status), string(b.Status))
	},
	"gender": func(a, b Student) int {
		return strings.Compare(string(a.Gender), string(b.Gender))
	},
	"join_date": func(a, b Student) int {
		return a.JoinDate.Compare(b.JoinDate.Time)
	},
	"created_at": func(a, b Student) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	},
	"updated_at": func(a, b Student) int {
		return a.UpdatedAt.Compare(b.UpdatedAt)
	},
}

// Sort orders students in place; the default is newest first.
func Sort(students []Student, ordering ...core.Ordering) {
	if len(ordering) == 0 {
		ordering = []core.Ordering{{Field: "created_at", Ascending: false}}
	}
	sort.SliceStable(students, core.SortLess(students, ordering, sortFields, func(a, b Student) int {
		return strings.Compare(a.ID, b.ID)
	}))
}
