package inmemdb

import (
	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) CreateSession(s attendance.Session) (attendance.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// one session per date
	for _, sess := range repo.db.sessions {
		if sess.Date.Equal(s.Date) {
			return *sess, nil
		}
	}
	repo.db.sessions[s.ID] = &s
	return s, nil
}

func (repo *attendanceRepository) GetSessionByDate(date core.Date) (attendance.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, sess := range repo.db.sessions {
		if sess.Date.Equal(date) {
			return *sess, nil
		}
	}
	return attendance.Session{}, attendance.ErrSessionNotFound
}

func (repo *attendanceRepository) QueryAllSessions() ([]attendance.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sessions := make([]attendance.Session, 0, len(repo.db.sessions))
	for _, sess := range repo.db.sessions {
		sessions = append(sessions, *sess)
	}
	return sessions, nil
}

// SaveRecords keeps the id and creation time of a record it replaces.
func (repo *attendanceRepository) SaveRecords(records ...attendance.Record) ([]attendance.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	saved := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		key := keyOf(r)
		if prev, ok := repo.db.records[key]; ok {
			r.ID = prev.ID
			r.CreatedAt = prev.CreatedAt
		}
		rec := r
		repo.db.records[key] = &rec
		saved = append(saved, rec)
	}
	return saved, nil
}

func (repo *attendanceRepository) QueryRecordsBetween(from, to core.Date) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]attendance.Record, 0)
	for _, r := range repo.db.records {
		if r.Date.Between(from, to) {
			records = append(records, *r)
		}
	}
	return records, nil
}
