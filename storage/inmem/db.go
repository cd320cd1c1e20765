package inmemdb

import (
	"sync"

	"github.com/umeedfoundation/console/core/attendance"
	"github.com/umeedfoundation/console/core/lead"
	"github.com/umeedfoundation/console/core/student"
	"github.com/umeedfoundation/console/core/volunteer"
)

type (
	DB struct {
		student    *studentTable
		volunteer  *volunteerTable
		attendance *attendanceTable
		lead       *leadTable
	}

	studentTable struct {
		mutex sync.RWMutex
		table map[string]*student.Student
	}

	volunteerTable struct {
		mutex sync.RWMutex
		table map[string]*volunteer.Volunteer
	}

	// attendanceTable holds sessions and records under one lock; records are keyed by student and date.
	attendanceTable struct {
		mutex    sync.RWMutex
		sessions map[string]*attendance.Session
		records  map[recordKey]*attendance.Record
	}

	recordKey struct {
		studentID string
		date      string
	}

	leadTable struct {
		mutex sync.RWMutex
		table []lead.Lead
	}
)

func Open() *DB {
	return &DB{
		student:    &studentTable{table: make(map[string]*student.Student)},
		volunteer:  &volunteerTable{table: make(map[string]*volunteer.Volunteer)},
		attendance: &attendanceTable{sessions: make(map[string]*attendance.Session), records: make(map[recordKey]*attendance.Record)},
		lead:       &leadTable{},
	}
}

func keyOf(r attendance.Record) recordKey {
	return recordKey{studentID: r.StudentID, date: r.Date.String()}
}
