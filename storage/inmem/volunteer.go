package inmemdb

import (
	"strings"

	"github.com/umeedfoundation/console/core/volunteer"
)

type volunteerRepository struct {
	db *volunteerTable
}

func NewVolunteerRepository(db *DB) volunteer.Repository {
	return &volunteerRepository{db: db.volunteer}
}

func (repo *volunteerRepository) query() []volunteer.Volunteer {
	volunteers := make([]volunteer.Volunteer, 0, len(repo.db.table))
	for _, v := range repo.db.table {
		volunteers = append(volunteers, *v)
	}
	return volunteers
}

func (repo *volunteerRepository) CheckEmailUniqueness(email string, excluded ...volunteer.Volunteer) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, v := range repo.db.table {
		if strings.EqualFold(v.Email, email) && !isExcluded(v.ID, excluded) {
			return volunteer.ErrEmailExists
		}
	}
	return nil
}

func (repo *volunteerRepository) CreateVolunteer(v volunteer.Volunteer) (volunteer.Volunteer, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[v.ID] = &v
	return v, nil
}

func (repo *volunteerRepository) QueryAllVolunteers() ([]volunteer.Volunteer, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *volunteerRepository) GetVolunteerByID(id string) (volunteer.Volunteer, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if v, ok := repo.db.table[id]; ok {
		return *v, nil
	}
	return volunteer.Volunteer{}, volunteer.ErrNotFound
}

func (repo *volunteerRepository) FilterVolunteers(filter volunteer.QueryFilter) ([]volunteer.Volunteer, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	volunteers := make([]volunteer.Volunteer, 0)
	for _, v := range repo.db.table {
		if filter.Match(*v) {
			volunteers = append(volunteers, *v)
		}
	}
	return volunteers, nil
}

func (repo *volunteerRepository) UpdateVolunteer(v volunteer.Volunteer) (volunteer.Volunteer, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[v.ID]; !ok {
		return volunteer.Volunteer{}, volunteer.ErrNotFound
	}
	repo.db.table[v.ID] = &v
	return v, nil
}

func (repo *volunteerRepository) DeleteVolunteersByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func isExcluded(id string, excluded []volunteer.Volunteer) bool {
	for _, v := range excluded {
		if v.ID == id {
			return true
		}
	}
	return false
}
