package attendance

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/teambition/rrule-go"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/student"
	"github.com/umeedfoundation/console/core/user"
)

var ErrSessionNotFound = core.NewNotFoundError("session")

type (
	Repository interface {
		CreateSession(s Session) (Session, error)
		GetSessionByDate(date core.Date) (Session, error)
		QueryAllSessions() ([]Session, error)
		// SaveRecords inserts or replaces records by (student_id, date).
		SaveRecords(records ...Record) ([]Record, error)
		QueryRecordsBetween(from, to core.Date) ([]Record, error)
	}

	// Roster lists the students attendance is taken for.
	Roster interface {
		Active() ([]student.Student, error)
	}

	ServiceInterface interface {
		Mark(marker user.Identity, ma MarkAttendance) ([]Record, error)
		MarkAll(marker user.Identity, ma MarkAll) ([]Record, error)
		ForDate(date core.Date) ([]Record, error)
		Between(from, to core.Date) ([]Record, error)
		Sessions() ([]Session, error)
		UpcomingSessions(n int) ([]core.Date, error)
	}

	Service struct {
		repo   Repository
		roster Roster
		rule   *rrule.RRule
	}
)

var _ ServiceInterface = (*Service)(nil)

// NewService parses the class schedule, an RFC 5545 RRULE.
func NewService(repo Repository, roster Roster, conf *core.Config) (*Service, error) {
	rule, err := rrule.StrToRRule(conf.Attendance.SessionRule)
	if err != nil {
		return nil, errors.Wrap(err, "parsing attendance session rule")
	}
	return &Service{repo: repo, roster: roster, rule: rule}, nil
}

// Mark records the entries of ma for active students only, replacing what was marked
// earlier that day, and creates the day's session when there is none yet.
func (svc *Service) Mark(marker user.Identity, ma MarkAttendance) ([]Record, error) {
	active, err := svc.activeByID()
	if err != nil {
		return nil, err
	}
	for _, e := range ma.Entries {
		if _, ok := active[e.StudentID]; !ok {
			return nil, core.NewValidationError(nil, core.FieldError{
				Field: "entries",
				Error: "student " + e.StudentID + " is not an active student",
			})
		}
	}

	sess, err := svc.sessionFor(ma.Date, ma.SessionTitle, ma.Description)
	if err != nil {
		return nil, err
	}

	now := core.NowFunc().UTC()
	records := make([]Record, 0, len(ma.Entries))
	for _, e := range ma.Entries {
		records = append(records, Record{
			ID:                  uuid.NewString(),
			StudentID:           e.StudentID,
			SessionID:           sess.ID,
			Date:                ma.Date,
			Status:              e.Status,
			MarkedByVolunteerID: marker.VolunteerID,
			Remarks:             e.Remarks,
			CreatedAt:           now,
		})
	}
	saved, err := svc.repo.SaveRecords(records...)
	if err != nil {
		return nil, err
	}
	Sort(saved)
	return saved, nil
}

func (svc *Service) MarkAll(marker user.Identity, ma MarkAll) ([]Record, error) {
	students, err := svc.roster.Active()
	if err != nil {
		return nil, err
	}
	mark := MarkAttendance{
		Date:         ma.Date,
		SessionTitle: ma.SessionTitle,
		Entries:      make([]Entry, 0, len(students)),
	}
	if mark.SessionTitle == "" {
		mark.SessionTitle = DefaultSessionTitle
	}
	for _, s := range students {
		mark.Entries = append(mark.Entries, Entry{StudentID: s.ID, Status: ma.Status})
	}
	if len(mark.Entries) == 0 {
		return []Record{}, nil
	}
	return svc.Mark(marker, mark)
}

func (svc *Service) ForDate(date core.Date) ([]Record, error) {
	return svc.Between(date, date)
}

// Between lists the records dated within [from, to], oldest first.
func (svc *Service) Between(from, to core.Date) ([]Record, error) {
	if to.Before(from) {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "to", Error: "end date cannot be before start date"})
	}
	records, err := svc.repo.QueryRecordsBetween(from, to)
	if err != nil {
		return nil, err
	}
	Sort(records)
	return records, nil
}

// Sessions lists every session, most recent first.
func (svc *Service) Sessions() ([]Session, error) {
	sessions, err := svc.repo.QueryAllSessions()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
	return sessions, nil
}

// UpcomingSessions lists the next n class days from today on, today included.
func (svc *Service) UpcomingSessions(n int) ([]core.Date, error) {
	if n <= 0 {
		return []core.Date{}, nil
	}
	opt := svc.rule.OrigOptions
	opt.Dtstart = core.Today().Time
	opt.Count = n
	upcoming, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, errors.Wrap(err, "building upcoming sessions rule")
	}

	dates := make([]core.Date, 0, n)
	for _, t := range upcoming.All() {
		dates = append(dates, core.NewDate(t))
	}
	return dates, nil
}

func (svc *Service) activeByID() (map[string]student.Student, error) {
	students, err := svc.roster.Active()
	if err != nil {
		return nil, err
	}
	active := make(map[string]student.Student, len(students))
	for _, s := range students {
		active[s.ID] = s
	}
	return active, nil
}

func (svc *Service) sessionFor(date core.Date, title, description string) (Session, error) {
	sess, err := svc.repo.GetSessionByDate(date)
	if err == nil {
		return sess, nil
	}
	if !core.IsNotFound(err) {
		return Session{}, err
	}
	return svc.repo.CreateSession(Session{
		ID:          uuid.NewString(),
		Date:        date,
		Title:       title,
		Description: description,
		CreatedAt:   core.NowFunc().UTC(),
	})
}

// Sort orders records by date, then student id.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return strings.Compare(a.StudentID, b.StudentID) < 0
	})
}

// WeekStart is the Monday of the week d falls in.
func WeekStart(d core.Date) core.Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}
