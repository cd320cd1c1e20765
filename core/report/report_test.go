package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/attendance"
	"github.com/umeedfoundation/console/core/report"
	"github.com/umeedfoundation/console/core/student"
	"github.com/umeedfoundation/console/core/volunteer"
	inmemdb "github.com/umeedfoundation/console/storage/inmem"
	testutil "github.com/umeedfoundation/console/tests"
)

// newService seeds the demo data as of Sunday 2024-06-16.
func newService(t *testing.T) *report.Service {
	t.Helper()
	core.NowFunc = func() time.Time { return time.Date(2024, 6, 16, 11, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { core.NowFunc = time.Now })

	db := inmemdb.Open()
	inmemdb.Seed(db)
	students := student.NewService(inmemdb.NewStudentRepository(db))
	volunteers := volunteer.NewService(inmemdb.NewVolunteerRepository(db))
	att, err := attendance.NewService(inmemdb.NewAttendanceRepository(db), students, testutil.NewConfig())
	require.NoError(t, err)
	return report.NewService(students, volunteers, att)
}

func TestService_Summary(t *testing.T) {
	svc := newService(t)

	sum, err := svc.Summary()
	require.NoError(t, err)

	assert.Equal(t, 8, sum.TotalStudents)
	assert.Equal(t, 7, sum.ActiveStudents)
	assert.Equal(t, 5, sum.TotalVolunteers)
	assert.Equal(t, 4, sum.ActiveVolunteers)
	assert.Equal(t, 79, sum.AttendanceThisMonth, "11 attended out of 14 marked")

	require.Len(t, sum.RecentSessions, 3)
	assert.Equal(t, "ses1", sum.RecentSessions[0].ID)

	assert.Equal(t, []report.StandardCount{
		{Standard: "5", Count: 2},
		{Standard: "6", Count: 3},
		{Standard: "7", Count: 2},
		{Standard: "8", Count: 1},
	}, sum.StudentsByStandard)
	assert.Equal(t, []report.GenderCount{
		{Gender: student.GenderMale, Count: 4},
		{Gender: student.GenderFemale, Count: 4},
	}, sum.StudentsByGender)

	require.Len(t, sum.AttendanceTrend, 8)
	assert.Equal(t, "Week 1", sum.AttendanceTrend[0].Week)
	assert.Equal(t, "2024-04-22", sum.AttendanceTrend[0].StartDate.String())
	assert.Equal(t, report.WeekTrend{Week: "Week 7", StartDate: mustDate(t, "2024-06-03"), Attended: 6, Total: 7, Rate: 86}, sum.AttendanceTrend[6])
	assert.Equal(t, report.WeekTrend{Week: "Week 8", StartDate: mustDate(t, "2024-06-10"), Attended: 5, Total: 7, Rate: 71}, sum.AttendanceTrend[7])
	assert.Equal(t, 0, sum.AttendanceTrend[5].Total)
}

func TestService_Export(t *testing.T) {
	svc := newService(t)

	var buf bytes.Buffer
	name, err := svc.Export(&buf, report.KindStudents, core.Date{}, core.Date{})
	require.NoError(t, err)
	assert.Equal(t, "students_report.csv", name)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "ID,Name,Standard,Gender,School,Guardian Name,Guardian Phone,Status,Join Date", lines[0])
	assert.Equal(t, "s1,Aarav Patel,6,male,Government Primary School,Rajesh Patel,+91 9876543210,active,2023-12-19", lines[1])

	buf.Reset()
	name, err = svc.Export(&buf, report.KindVolunteers, core.Date{}, core.Date{})
	require.NoError(t, err)
	assert.Equal(t, "volunteers_report.csv", name)
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "ID,Name,Email,Phone,Role,Availability,Active,Join Date", lines[0])
	assert.Equal(t, "v4,Amit Patel,amit.patel@email.com,+91 9988776658,volunteer,Saturdays,No,2024-01-18", lines[1])

	buf.Reset()
	from, to := mustDate(t, "2024-06-09"), mustDate(t, "2024-06-16")
	name, err = svc.Export(&buf, report.KindAttendance, from, to)
	require.NoError(t, err)
	assert.Equal(t, "attendance_report_2024-06-09_to_2024-06-16.csv", name)
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 15)
	assert.Equal(t, "Date,Student ID,Student Name,Status,Remarks", lines[0])
	assert.Equal(t, "2024-06-09,s1,Aarav Patel,present,", lines[1])
	assert.Contains(t, lines, "2024-06-16,s3,Vikram Singh,late,Arrived 15 mins late")

	_, err = svc.Export(&buf, report.Kind("payroll"), from, to)
	assert.IsType(t, &core.ValidationError{}, err)
}

func TestService_ExportStudents(t *testing.T) {
	svc := newService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportStudents(&buf, student.QueryFilter{Standard: "7"}))
	assert.Equal(t,
		"Name,Standard,Gender,School,Guardian Name,Guardian Phone,Status,Join Date\n"+
			"Arjun Mehta,7,male,Government High School,Deepak Mehta,+91 9876543216,active,2023-09-10\n"+
			"Vikram Singh,7,male,Government High School,Suresh Singh,+91 9876543212,active,2023-06-17\n",
		buf.String())
}

func TestWriteAttendance_UnknownStudentAndQuoting(t *testing.T) {
	d := mustDate(t, "2024-06-16")
	var buf bytes.Buffer
	err := report.WriteAttendance(&buf, []attendance.Record{
		{StudentID: "s1", Date: d, Status: attendance.StatusLate, Remarks: `bus late, "again"`},
		{StudentID: "gone", Date: d, Status: attendance.StatusAbsent},
	}, map[string]string{"s1": "Aarav Patel"})
	require.NoError(t, err)
	assert.Equal(t,
		"Date,Student ID,Student Name,Status,Remarks\n"+
			"2024-06-16,s1,Aarav Patel,late,\"bus late, \"\"again\"\"\"\n"+
			"2024-06-16,gone,Unknown,absent,\n",
		buf.String())
}

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	require.NoError(t, err)
	return d
}
