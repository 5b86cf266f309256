// Package store is the durable mapping from (participant, target) to a
// recorded choice. All cross-request consistency lives here: uniqueness
// is enforced by database constraints and writes go through the
// database's own conflict resolution, never an application-level
// check-then-act.
package store

import "gorm.io/gorm"

// Store wraps the shared database handle. It is constructed once at
// startup and handed to every collaborator that records or reads
// responses.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for read-side collaborators.
func (s *Store) DB() *gorm.DB {
	return s.db
}
