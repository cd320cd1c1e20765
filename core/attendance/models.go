package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/umeedfoundation/console/core"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusExcused Status = "excused"
)

var Statuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusExcused}

// Attended is true for statuses counted in the attendance rate.
func (s Status) Attended() bool {
	return s == StatusPresent || s == StatusLate
}

// DefaultSessionTitle names a session created while marking attendance without a title.
const DefaultSessionTitle = "Sunday Class"

// Session is one class day; there is at most one per date.
type Session struct {
	ID          string    `json:"id"`
	Date        core.Date `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// Record is the attendance of one student on one date.
type Record struct {
	ID                  string    `json:"id"`
	StudentID           string    `json:"student_id"`
	SessionID           string    `json:"session_id,omitempty"`
	Date                core.Date `json:"date"`
	Status              Status    `json:"status"`
	MarkedByVolunteerID string    `json:"marked_by_volunteer_id,omitempty"`
	Remarks             string    `json:"remarks,omitempty"`
	CreatedAt           time.Time `json:"created_at"` // UTC
}

type Entry struct {
	StudentID string `json:"student_id" validate:"required,notblank"`
	Status    Status `json:"status" validate:"required,oneof=present absent late excused"`
	Remarks   string `json:"remarks"`
}

var errFutureDate = core.NewValidationError(nil, core.FieldError{Field: "date", Error: "attendance cannot be marked for a future date"})

// MarkAttendance is a batch of entries for a single date.
type MarkAttendance struct {
	Date         core.Date `json:"date" validate:"required"`
	SessionTitle string    `json:"session_title"`
	Description  string    `json:"description"`
	Entries      []Entry   `json:"entries" validate:"required,min=1,dive"`
}

func (ma *MarkAttendance) Validate(validate *validator.Validate) error {
	ma.SessionTitle = core.CleanString(ma.SessionTitle)
	ma.Description = core.CleanString(ma.Description)
	if ma.SessionTitle == "" {
		ma.SessionTitle = DefaultSessionTitle
	}
	for i := range ma.Entries {
		ma.Entries[i].StudentID = core.CleanString(ma.Entries[i].StudentID)
		ma.Entries[i].Remarks = core.CleanString(ma.Entries[i].Remarks)
	}

	if err := validate.Struct(ma); err != nil {
		return err
	}
	if ma.Date.After(core.Today()) {
		return errFutureDate
	}

	seen := make(map[string]struct{}, len(ma.Entries))
	for _, e := range ma.Entries {
		if _, ok := seen[e.StudentID]; ok {
			return core.NewValidationError(nil, core.FieldError{Field: "entries", Error: "student " + e.StudentID + " is listed twice"})
		}
		seen[e.StudentID] = struct{}{}
	}
	return nil
}

// MarkAll sets one status for every active student on a date.
type MarkAll struct {
	Date         core.Date `json:"date" validate:"required"`
	SessionTitle string    `json:"session_title"`
	Status       Status    `json:"status" validate:"required,oneof=present absent late excused"`
}

func (ma *MarkAll) Validate(validate *validator.Validate) error {
	ma.SessionTitle = core.CleanString(ma.SessionTitle)
	if err := validate.Struct(ma); err != nil {
		return err
	}
	if ma.Date.After(core.Today()) {
		return errFutureDate
	}
	return nil
}

// Summary counts records per status.
type Summary struct {
	Marked  int `json:"marked"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Excused int `json:"excused"`
}

// Rate is the attended share of marked records as a whole percentage, 0 when nothing is marked.
func (s Summary) Rate() int {
	if s.Marked == 0 {
		return 0
	}
	return int(float64(s.Present+s.Late)*100/float64(s.Marked) + 0.5)
}

func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		s.Marked++
		switch r.Status {
		case StatusPresent:
			s.Present++
		case StatusAbsent:
			s.Absent++
		case StatusLate:
			s.Late++
		case StatusExcused:
			s.Excused++
		}
	}
	return s
}
