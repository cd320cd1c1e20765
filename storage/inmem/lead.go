package inmemdb

import (
	"github.com/umeedfoundation/console/core/lead"
)

type leadRepository struct {
	db *leadTable
}

func NewLeadRepository(db *DB) lead.Repository {
	return &leadRepository{db: db.lead}
}

func (repo *leadRepository) CreateLead(l lead.Lead) (lead.Lead, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table = append(repo.db.table, l)
	return l, nil
}

// QueryAllLeads lists leads in the order they were received.
func (repo *leadRepository) QueryAllLeads() ([]lead.Lead, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	leads := make([]lead.Lead, len(repo.db.table))
	copy(leads, repo.db.table)
	return leads, nil
}
