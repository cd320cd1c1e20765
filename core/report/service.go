package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/attendance"
	"github.com/umeedfoundation/console/core/student"
	"github.com/umeedfoundation/console/core/volunteer"
)

const (
	trendWeeks         = 8
	recentSessionLimit = 5
)

type (
	StandardCount struct {
		Standard string `json:"standard"`
		Count    int    `json:"count"`
	}

	GenderCount struct {
		Gender student.Gender `json:"gender"`
		Count  int            `json:"count"`
	}

	// WeekTrend is the attendance of one Monday-based week.
	WeekTrend struct {
		Week      string    `json:"week"`
		StartDate core.Date `json:"start_date"`
		Attended  int       `json:"attendance"`
		Total     int       `json:"total"`
		Rate      int       `json:"rate"`
	}

	Summary struct {
		TotalStudents       int                  `json:"total_students"`
		ActiveStudents      int                  `json:"active_students"`
		TotalVolunteers     int                  `json:"total_volunteers"`
		ActiveVolunteers    int                  `json:"active_volunteers"`
		AttendanceThisMonth int                  `json:"attendance_this_month"`
		RecentSessions      []attendance.Session `json:"recent_sessions"`
		StudentsByStandard  []StandardCount      `json:"students_by_standard"`
		StudentsByGender    []GenderCount        `json:"students_by_gender"`
		AttendanceTrend     []WeekTrend          `json:"attendance_trend"`
	}
)

type (
	ServiceInterface interface {
		Summary() (Summary, error)
		Export(w io.Writer, kind Kind, from, to core.Date) (filename string, err error)
		ExportStudents(w io.Writer, filter student.QueryFilter) error
	}

	Service struct {
		students   student.ServiceInterface
		volunteers volunteer.ServiceInterface
		attendance attendance.ServiceInterface
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(students student.ServiceInterface, volunteers volunteer.ServiceInterface, att attendance.ServiceInterface) *Service {
	return &Service{students: students, volunteers: volunteers, attendance: att}
}

// Export writes the report of kind; from and to only bound the attendance report.
func (svc *Service) Export(w io.Writer, kind Kind, from, to core.Date) (string, error) {
	switch kind {
	case KindStudents:
		students, err := svc.students.QueryAll(core.Ordering{Field: "full_name", Ascending: true})
		if err != nil {
			return "", err
		}
		return StudentsFilename, WriteStudents(w, students, true)

	case KindVolunteers:
		volunteers, err := svc.volunteers.QueryAll(core.Ordering{Field: "full_name", Ascending: true})
		if err != nil {
			return "", err
		}
		return VolunteersFilename, WriteVolunteers(w, volunteers)

	case KindAttendance:
		records, err := svc.attendance.Between(from, to)
		if err != nil {
			return "", err
		}
		names, err := svc.studentNames()
		if err != nil {
			return "", err
		}
		return AttendanceFilename(from, to), WriteAttendance(w, records, names)
	}
	return "", core.NewValidationError(nil, core.FieldError{Field: "kind", Error: fmt.Sprintf("unknown report %q", kind)})
}

// ExportStudents writes the students page export of a filtered listing.
func (svc *Service) ExportStudents(w io.Writer, filter student.QueryFilter) error {
	students, err := svc.students.Filter(filter, core.Ordering{Field: "full_name", Ascending: true})
	if err != nil {
		return err
	}
	return WriteStudents(w, students, false)
}

func (svc *Service) Summary() (Summary, error) {
	var sum Summary

	students, err := svc.students.QueryAll()
	if err != nil {
		return sum, errors.Wrap(err, "querying students")
	}
	volunteers, err := svc.volunteers.QueryAll()
	if err != nil {
		return sum, errors.Wrap(err, "querying volunteers")
	}
	sessions, err := svc.attendance.Sessions()
	if err != nil {
		return sum, errors.Wrap(err, "querying sessions")
	}

	today := core.Today()
	monthStart := core.NewDate(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC))
	month, err := svc.attendance.Between(monthStart, today)
	if err != nil {
		return sum, errors.Wrap(err, "querying attendance of the month")
	}

	sum.TotalStudents = len(students)
	byStandard := make(map[string]int)
	byGender := make(map[student.Gender]int)
	for _, s := range students {
		if s.IsActive() {
			sum.ActiveStudents++
		}
		byStandard[s.Standard]++
		byGender[s.Gender]++
	}
	sum.TotalVolunteers = len(volunteers)
	for _, v := range volunteers {
		if v.IsActive {
			sum.ActiveVolunteers++
		}
	}

	sum.AttendanceThisMonth = attendance.Summarize(month).Rate()

	if len(sessions) > recentSessionLimit {
		sessions = sessions[:recentSessionLimit]
	}
	sum.RecentSessions = sessions

	sum.StudentsByStandard = make([]StandardCount, 0, len(byStandard))
	for std, n := range byStandard {
		sum.StudentsByStandard = append(sum.StudentsByStandard, StandardCount{Standard: std, Count: n})
	}
	sort.Slice(sum.StudentsByStandard, func(i, j int) bool {
		return student.CompareStandards(sum.StudentsByStandard[i].Standard, sum.StudentsByStandard[j].Standard) < 0
	})

	sum.StudentsByGender = make([]GenderCount, 0, len(student.Genders))
	for _, g := range student.Genders {
		if n := byGender[g]; n > 0 {
			sum.StudentsByGender = append(sum.StudentsByGender, GenderCount{Gender: g, Count: n})
		}
	}

	sum.AttendanceTrend, err = svc.trend(today)
	if err != nil {
		return sum, err
	}
	return sum, nil
}

// trend covers the last trendWeeks weeks, the current one included, oldest first.
func (svc *Service) trend(today core.Date) ([]WeekTrend, error) {
	first := attendance.WeekStart(today).AddDays(-7 * (trendWeeks - 1))
	records, err := svc.attendance.Between(first, today)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance trend")
	}

	weeks := make([][]attendance.Record, trendWeeks)
	for _, r := range records {
		idx := int(r.Date.Sub(first.Time).Hours()/24) / 7
		if idx >= 0 && idx < trendWeeks {
			weeks[idx] = append(weeks[idx], r)
		}
	}

	trend := make([]WeekTrend, 0, trendWeeks)
	for i, recs := range weeks {
		s := attendance.Summarize(recs)
		trend = append(trend, WeekTrend{
			Week:      fmt.Sprintf("Week %d", i+1),
			StartDate: first.AddDays(7 * i),
			Attended:  s.Present + s.Late,
			Total:     s.Marked,
			Rate:      s.Rate(),
		})
	}
	return trend, nil
}

func (svc *Service) studentNames() (map[string]string, error) {
	students, err := svc.students.QueryAll()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(students))
	for _, s := range students {
		names[s.ID] = s.FullName
	}
	return names, nil
}
