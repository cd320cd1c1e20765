package attendance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/attendance"
	"github.com/umeedfoundation/console/core/student"
	"github.com/umeedfoundation/console/core/user"
	inmemdb "github.com/umeedfoundation/console/storage/inmem"
	testutil "github.com/umeedfoundation/console/tests"
)

func newService(t *testing.T) *attendance.Service {
	t.Helper()
	db := inmemdb.Open()
	inmemdb.Seed(db)
	students := student.NewService(inmemdb.NewStudentRepository(db))
	svc, err := attendance.NewService(inmemdb.NewAttendanceRepository(db), students, testutil.NewConfig())
	require.NoError(t, err)
	return svc
}

func studentIDs(records []attendance.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.StudentID)
	}
	return out
}

func TestService_ForDateAndBetween(t *testing.T) {
	svc := newService(t)

	today, err := svc.ForDate(core.Today())
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3", "s4", "s6", "s7", "s8"}, studentIDs(today))

	week, err := svc.Between(core.DaysAgo(7), core.Today())
	require.NoError(t, err)
	assert.Len(t, week, 14)
	assert.True(t, week[0].Date.Equal(core.DaysAgo(7)), "oldest first")

	none, err := svc.ForDate(core.DaysAgo(3))
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.Between(core.Today(), core.DaysAgo(1))
	assert.IsType(t, &core.ValidationError{}, err)
}

func TestService_Mark_NewDay(t *testing.T) {
	svc := newService(t)
	marker := testutil.Identity(t, user.RoleCoordinator)
	day := core.DaysAgo(3)

	records, err := svc.Mark(marker, attendance.MarkAttendance{
		Date:         day,
		SessionTitle: attendance.DefaultSessionTitle,
		Entries: []attendance.Entry{
			{StudentID: "s2", Status: attendance.StatusAbsent},
			{StudentID: "s1", Status: attendance.StatusPresent, Remarks: "early"},
		},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"s1", "s2"}, studentIDs(records))
	for _, r := range records {
		assert.Equal(t, "v1", r.MarkedByVolunteerID)
		assert.NotEmpty(t, r.SessionID)
		assert.True(t, r.Date.Equal(day))
	}

	sessions, err := svc.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 4)
	assert.Equal(t, "ses1", sessions[0].ID, "most recent first")
	assert.Equal(t, attendance.DefaultSessionTitle, sessions[1].Title)
	assert.Equal(t, records[0].SessionID, sessions[1].ID)
}

func TestService_Mark_Upsert(t *testing.T) {
	svc := newService(t)
	marker := testutil.Identity(t, user.RoleVolunteer)

	_, err := svc.Mark(marker, attendance.MarkAttendance{
		Date:    core.Today(),
		Entries: []attendance.Entry{{StudentID: "s1", Status: attendance.StatusAbsent}},
	})
	require.NoError(t, err)

	today, err := svc.ForDate(core.Today())
	require.NoError(t, err)
	require.Len(t, today, 7, "one record per student and date")
	assert.Equal(t, "a1", today[0].ID)
	assert.Equal(t, attendance.StatusAbsent, today[0].Status)
	assert.Equal(t, "v2", today[0].MarkedByVolunteerID)
	assert.Equal(t, "ses1", today[0].SessionID, "existing session reused")

	sessions, err := svc.Sessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
}

func TestService_Mark_InactiveStudent(t *testing.T) {
	svc := newService(t)
	_, err := svc.Mark(testutil.Identity(t, user.RoleAdmin), attendance.MarkAttendance{
		Date:    core.Today(),
		Entries: []attendance.Entry{{StudentID: "s5", Status: attendance.StatusPresent}},
	})
	require.Error(t, err)
	verr, ok := err.(*core.ValidationError)
	require.True(t, ok, "got %T", err)
	assert.Equal(t, "entries", verr.Fields[0].Field)
}

func TestService_MarkAll(t *testing.T) {
	svc := newService(t)
	admin := testutil.Identity(t, user.RoleAdmin)

	records, err := svc.MarkAll(admin, attendance.MarkAll{Date: core.DaysAgo(1), Status: attendance.StatusExcused})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3", "s4", "s6", "s7", "s8"}, studentIDs(records))
	for _, r := range records {
		assert.Equal(t, attendance.StatusExcused, r.Status)
		assert.Empty(t, r.MarkedByVolunteerID, "admin has no volunteer profile")
	}
}

func TestMarkAttendance_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()
	entry := attendance.Entry{StudentID: "s1", Status: attendance.StatusPresent}

	ma := attendance.MarkAttendance{Date: core.Today(), Entries: []attendance.Entry{entry}}
	require.NoError(t, ma.Validate(validate))
	assert.Equal(t, attendance.DefaultSessionTitle, ma.SessionTitle)

	tests := []struct {
		name string
		ma   attendance.MarkAttendance
	}{
		{name: "no date", ma: attendance.MarkAttendance{Entries: []attendance.Entry{entry}}},
		{name: "future date", ma: attendance.MarkAttendance{Date: core.Today().AddDays(1), Entries: []attendance.Entry{entry}}},
		{name: "no entries", ma: attendance.MarkAttendance{Date: core.Today()}},
		{name: "bad status", ma: attendance.MarkAttendance{Date: core.Today(), Entries: []attendance.Entry{{StudentID: "s1", Status: "sick"}}}},
		{name: "duplicate student", ma: attendance.MarkAttendance{Date: core.Today(), Entries: []attendance.Entry{entry, entry}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.ma.Validate(validate))
		})
	}
}

func TestService_UpcomingSessions(t *testing.T) {
	svc := newService(t)

	dates, err := svc.UpcomingSessions(3)
	require.NoError(t, err)
	require.Len(t, dates, 3)
	assert.False(t, dates[0].Before(core.Today()))
	for i, d := range dates {
		assert.Equal(t, time.Sunday, d.Weekday())
		if i > 0 {
			assert.True(t, d.Equal(dates[i-1].AddDays(7)))
		}
	}

	dates, err = svc.UpcomingSessions(0)
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestNewService_BadRule(t *testing.T) {
	conf := testutil.NewConfig()
	conf.Attendance.SessionRule = "FREQ=SOMETIMES"
	_, err := attendance.NewService(nil, nil, conf)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	svc := newService(t)
	today, err := svc.ForDate(core.Today())
	require.NoError(t, err)

	sum := attendance.Summarize(today)
	assert.Equal(t, attendance.Summary{Marked: 7, Present: 4, Absent: 1, Late: 1, Excused: 1}, sum)
	assert.Equal(t, 71, sum.Rate())
	assert.Equal(t, 0, attendance.Summary{}.Rate())
}

func TestWeekStart(t *testing.T) {
	d, _ := core.ParseDate("2024-06-09") // Sunday
	assert.Equal(t, "2024-06-03", attendance.WeekStart(d).String())
	d, _ = core.ParseDate("2024-06-03")
	assert.Equal(t, "2024-06-03", attendance.WeekStart(d).String())
}
