package inmemdb

import (
	"time"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/attendance"
	"github.com/umeedfoundation/console/core/student"
	"github.com/umeedfoundation/console/core/volunteer"
)

// Seed loads the demo data set, dated relative to today.
// Existing rows with the same ids are replaced.
func Seed(db *DB) {
	daysAgo := func(n int) core.Date { return core.DaysAgo(n) }
	at := func(n int) time.Time { return core.DaysAgo(n).Time }
	dob := func(s string) core.Date {
		d, err := core.ParseDate(s)
		if err != nil {
			panic(err)
		}
		return d
	}

	students := []student.Student{
		{
			ID: "s1", FullName: "Aarav Patel", Gender: student.GenderMale, DateOfBirth: dob("2012-05-15"),
			SchoolName: "Government Primary School", Standard: "6", GuardianName: "Rajesh Patel",
			GuardianPhone: "+91 9876543210", Address: "Sector 12, Ahmedabad", JoinDate: daysAgo(180),
			Status: student.StatusActive, Notes: "Excellent in mathematics", CreatedAt: at(180), UpdatedAt: at(2),
		},
		{
			ID: "s2", FullName: "Ananya Sharma", Gender: student.GenderFemale, DateOfBirth: dob("2013-08-22"),
			SchoolName: "Municipal School No. 5", Standard: "5", GuardianName: "Meera Sharma",
			GuardianPhone: "+91 9876543211", Address: "Maninagar, Ahmedabad", JoinDate: daysAgo(150),
			Status: student.StatusActive, CreatedAt: at(150), UpdatedAt: at(5),
		},
		{
			ID: "s3", FullName: "Vikram Singh", Gender: student.GenderMale, DateOfBirth: dob("2011-03-10"),
			SchoolName: "Government High School", Standard: "7", GuardianName: "Suresh Singh",
			GuardianPhone: "+91 9876543212", Address: "Navrangpura, Ahmedabad", JoinDate: daysAgo(365),
			Status: student.StatusActive, Notes: "Interested in science projects", CreatedAt: at(365), UpdatedAt: at(1),
		},
		{
			ID: "s4", FullName: "Priya Desai", Gender: student.GenderFemale, DateOfBirth: dob("2012-11-30"),
			SchoolName: "Government Primary School", Standard: "6", GuardianName: "Amit Desai",
			GuardianPhone: "+91 9876543213", Address: "Ellis Bridge, Ahmedabad", JoinDate: daysAgo(200),
			Status: student.StatusActive, CreatedAt: at(200), UpdatedAt: at(10),
		},
		{
			ID: "s5", FullName: "Rohit Kumar", Gender: student.GenderMale, DateOfBirth: dob("2010-07-18"),
			SchoolName: "Municipal School No. 3", Standard: "8", GuardianName: "Sanjay Kumar",
			GuardianPhone: "+91 9876543214", Address: "Sabarmati, Ahmedabad", JoinDate: daysAgo(400),
			Status: student.StatusInactive, Notes: "Relocated to different area", CreatedAt: at(400), UpdatedAt: at(30),
		},
		{
			ID: "s6", FullName: "Sneha Gupta", Gender: student.GenderFemale, DateOfBirth: dob("2013-01-25"),
			SchoolName: "Government Primary School", Standard: "5", GuardianName: "Ramesh Gupta",
			GuardianPhone: "+91 9876543215", JoinDate: daysAgo(120),
			Status: student.StatusActive, CreatedAt: at(120), UpdatedAt: at(3),
		},
		{
			ID: "s7", FullName: "Arjun Mehta", Gender: student.GenderMale, DateOfBirth: dob("2011-09-05"),
			SchoolName: "Government High School", Standard: "7", GuardianName: "Deepak Mehta",
			GuardianPhone: "+91 9876543216", Address: "Vastrapur, Ahmedabad", JoinDate: daysAgo(280),
			Status: student.StatusActive, CreatedAt: at(280), UpdatedAt: at(7),
		},
		{
			ID: "s8", FullName: "Kavya Joshi", Gender: student.GenderFemale, DateOfBirth: dob("2012-04-12"),
			SchoolName: "Municipal School No. 5", Standard: "6", GuardianName: "Nitin Joshi",
			GuardianPhone: "+91 9876543217", JoinDate: daysAgo(160),
			Status: student.StatusActive, Notes: "Shows great improvement", CreatedAt: at(160), UpdatedAt: at(4),
		},
	}

	volunteers := []volunteer.Volunteer{
		{
			ID: "v1", FullName: "Priya Sharma", Email: "priya.sharma@email.com", Phone: "+91 9988776655",
			Role: volunteer.PositionCoordinator, JoinDate: daysAgo(500), Availability: "Sundays 10 AM - 1 PM",
			IsActive: true, Notes: "Lead coordinator for weekend sessions", CreatedAt: at(500), UpdatedAt: at(1),
		},
		{
			ID: "v2", FullName: "Rahul Kumar", Email: "rahul.kumar@email.com", Phone: "+91 9988776656",
			Role: volunteer.PositionVolunteer, JoinDate: daysAgo(300), Availability: "Saturdays & Sundays",
			IsActive: true, Notes: "Teaching English and Art", CreatedAt: at(300), UpdatedAt: at(2),
		},
		{
			ID: "v3", FullName: "Anjali Verma", Email: "anjali.verma@email.com", Phone: "+91 9988776657",
			Role: volunteer.PositionVolunteer, JoinDate: daysAgo(200), Availability: "Sundays 2 PM - 5 PM",
			IsActive: true, CreatedAt: at(200), UpdatedAt: at(5),
		},
		{
			ID: "v4", FullName: "Amit Patel", Email: "amit.patel@email.com", Phone: "+91 9988776658",
			Role: volunteer.PositionVolunteer, JoinDate: daysAgo(150), Availability: "Saturdays",
			IsActive: false, Notes: "On leave for 3 months", CreatedAt: at(150), UpdatedAt: at(20),
		},
		{
			ID: "v5", FullName: "Neha Singh", Email: "neha.singh@email.com", Phone: "+91 9988776659",
			Role: volunteer.PositionCoordinator, JoinDate: daysAgo(400), Availability: "Weekends",
			IsActive: true, Notes: "Handles documentation and reports", CreatedAt: at(400), UpdatedAt: at(3),
		},
	}

	sessions := []attendance.Session{
		{ID: "ses1", Date: daysAgo(0), Title: "Sunday Class - English & Craft", Description: "Weekly English vocabulary and craft activities", CreatedAt: at(0)},
		{ID: "ses2", Date: daysAgo(7), Title: "Sunday Class - Mathematics", Description: "Basic arithmetic and problem solving", CreatedAt: at(7)},
		{ID: "ses3", Date: daysAgo(14), Title: "Sunday Class - Science & Fun", Description: "Science experiments and educational games", CreatedAt: at(14)},
	}

	record := func(id, studentID, sessionID string, days int, status attendance.Status, markedBy, remarks string) attendance.Record {
		return attendance.Record{
			ID: id, StudentID: studentID, SessionID: sessionID, Date: daysAgo(days), Status: status,
			MarkedByVolunteerID: markedBy, Remarks: remarks, CreatedAt: at(days),
		}
	}
	records := []attendance.Record{
		record("a1", "s1", "ses1", 0, attendance.StatusPresent, "v1", ""),
		record("a2", "s2", "ses1", 0, attendance.StatusPresent, "v1", ""),
		record("a3", "s3", "ses1", 0, attendance.StatusLate, "v1", "Arrived 15 mins late"),
		record("a4", "s4", "ses1", 0, attendance.StatusAbsent, "v1", ""),
		record("a5", "s6", "ses1", 0, attendance.StatusPresent, "v1", ""),
		record("a6", "s7", "ses1", 0, attendance.StatusPresent, "v1", ""),
		record("a7", "s8", "ses1", 0, attendance.StatusExcused, "v1", "Family event"),

		record("a8", "s1", "ses2", 7, attendance.StatusPresent, "v2", ""),
		record("a9", "s2", "ses2", 7, attendance.StatusPresent, "v2", ""),
		record("a10", "s3", "ses2", 7, attendance.StatusPresent, "v2", ""),
		record("a11", "s4", "ses2", 7, attendance.StatusPresent, "v2", ""),
		record("a12", "s6", "ses2", 7, attendance.StatusAbsent, "v2", ""),
		record("a13", "s7", "ses2", 7, attendance.StatusPresent, "v2", ""),
		record("a14", "s8", "ses2", 7, attendance.StatusPresent, "v2", ""),
	}

	db.student.mutex.Lock()
	for i := range students {
		s := students[i]
		db.student.table[s.ID] = &s
	}
	db.student.mutex.Unlock()

	db.volunteer.mutex.Lock()
	for i := range volunteers {
		v := volunteers[i]
		db.volunteer.table[v.ID] = &v
	}
	db.volunteer.mutex.Unlock()

	db.attendance.mutex.Lock()
	for i := range sessions {
		sess := sessions[i]
		db.attendance.sessions[sess.ID] = &sess
	}
	for i := range records {
		r := records[i]
		db.attendance.records[keyOf(r)] = &r
	}
	db.attendance.mutex.Unlock()
}
