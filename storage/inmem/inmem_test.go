package inmemdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/attendance"
	"github.com/umeedfoundation/console/core/student"
	"github.com/umeedfoundation/console/core/volunteer"
)

func TestSeed(t *testing.T) {
	db := Open()
	Seed(db)
	Seed(db) // idempotent

	students, err := NewStudentRepository(db).QueryAllStudents()
	require.NoError(t, err)
	assert.Len(t, students, 8)

	volunteers, err := NewVolunteerRepository(db).QueryAllVolunteers()
	require.NoError(t, err)
	assert.Len(t, volunteers, 5)

	repo := NewAttendanceRepository(db)
	sessions, err := repo.QueryAllSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 3)

	records, err := repo.QueryRecordsBetween(core.DaysAgo(14), core.Today())
	require.NoError(t, err)
	assert.Len(t, records, 14)
}

func TestAttendanceRepository_SaveRecords(t *testing.T) {
	db := Open()
	repo := NewAttendanceRepository(db)
	day := core.DaysAgo(1)

	first, err := repo.SaveRecords(attendance.Record{ID: "r1", StudentID: "s1", Date: day, Status: attendance.StatusPresent})
	require.NoError(t, err)
	require.Len(t, first, 1)

	again, err := repo.SaveRecords(attendance.Record{ID: "r2", StudentID: "s1", Date: day, Status: attendance.StatusLate})
	require.NoError(t, err)
	assert.Equal(t, "r1", again[0].ID, "replaced record keeps its id")
	assert.Equal(t, attendance.StatusLate, again[0].Status)

	records, err := repo.QueryRecordsBetween(day, day)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendanceRepository_Sessions(t *testing.T) {
	db := Open()
	repo := NewAttendanceRepository(db)
	day := core.Today()

	_, err := repo.GetSessionByDate(day)
	assert.True(t, core.IsNotFound(err))

	created, err := repo.CreateSession(attendance.Session{ID: "x1", Date: day, Title: "First"})
	require.NoError(t, err)
	dup, err := repo.CreateSession(attendance.Session{ID: "x2", Date: day, Title: "Second"})
	require.NoError(t, err)
	assert.Equal(t, created, dup, "one session per date")

	got, err := repo.GetSessionByDate(day)
	require.NoError(t, err)
	assert.Equal(t, "x1", got.ID)
}

func TestVolunteerRepository_CheckEmailUniqueness(t *testing.T) {
	db := Open()
	Seed(db)
	repo := NewVolunteerRepository(db)

	assert.Equal(t, volunteer.ErrEmailExists, repo.CheckEmailUniqueness("PRIYA.SHARMA@email.com"))
	v1, err := repo.GetVolunteerByID("v1")
	require.NoError(t, err)
	assert.NoError(t, repo.CheckEmailUniqueness(v1.Email, v1))
	assert.NoError(t, repo.CheckEmailUniqueness("someone@else.org"))
}

func TestStudentRepository_NotFound(t *testing.T) {
	repo := NewStudentRepository(Open())
	_, err := repo.GetStudentByID("s1")
	assert.Equal(t, student.ErrNotFound, err)
	_, err = repo.UpdateStudent(student.Student{ID: "s1"})
	assert.Equal(t, student.ErrNotFound, err)
}
