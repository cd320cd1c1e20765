package report

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/attendance"
	"github.com/umeedfoundation/console/core/student"
	"github.com/umeedfoundation/console/core/volunteer"
)

// Kind names an export.
type Kind string

const (
	KindStudents   Kind = "students"
	KindVolunteers Kind = "volunteers"
	KindAttendance Kind = "attendance"
)

const (
	StudentsFilename     = "students_report.csv"
	StudentsPageFilename = "students.csv"
	VolunteersFilename   = "volunteers_report.csv"
)

var (
	studentsHeader   = []string{"ID", "Name", "Standard", "Gender", "School", "Guardian Name", "Guardian Phone", "Status", "Join Date"}
	volunteersHeader = []string{"ID", "Name", "Email", "Phone", "Role", "Availability", "Active", "Join Date"}
	attendanceHeader = []string{"Date", "Student ID", "Student Name", "Status", "Remarks"}
)

// AttendanceFilename is the file name of the attendance export of [from, to].
func AttendanceFilename(from, to core.Date) string {
	return "attendance_report_" + from.String() + "_to_" + to.String() + ".csv"
}

// WriteStudents writes one row per student; withID is false for the students page export.
func WriteStudents(w io.Writer, students []student.Student, withID bool) error {
	header := studentsHeader
	if !withID {
		header = header[1:]
	}
	rows := make([][]string, 0, len(students)+1)
	rows = append(rows, header)
	for _, s := range students {
		row := []string{
			s.FullName,
			s.Standard,
			string(s.Gender),
			s.SchoolName,
			s.GuardianName,
			s.GuardianPhone,
			string(s.Status),
			s.JoinDate.String(),
		}
		if withID {
			row = append([]string{s.ID}, row...)
		}
		rows = append(rows, row)
	}
	return writeAll(w, rows)
}

func WriteVolunteers(w io.Writer, volunteers []volunteer.Volunteer) error {
	rows := make([][]string, 0, len(volunteers)+1)
	rows = append(rows, volunteersHeader)
	for _, v := range volunteers {
		active := "No"
		if v.IsActive {
			active = "Yes"
		}
		rows = append(rows, []string{
			v.ID,
			v.FullName,
			v.Email,
			v.Phone,
			string(v.Role),
			v.Availability,
			active,
			v.JoinDate.String(),
		})
	}
	return writeAll(w, rows)
}

// WriteAttendance names each record's student from names; a missing student is "Unknown".
func WriteAttendance(w io.Writer, records []attendance.Record, names map[string]string) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, attendanceHeader)
	for _, r := range records {
		name, ok := names[r.StudentID]
		if !ok || name == "" {
			name = "Unknown"
		}
		rows = append(rows, []string{
			r.Date.String(),
			r.StudentID,
			name,
			string(r.Status),
			r.Remarks,
		})
	}
	return writeAll(w, rows)
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return errors.Wrap(err, "writing csv")
	}
	return nil
}
