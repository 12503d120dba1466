package dummydb

import (
	"context"

	"github.com/acadtrack/advising/core"
	"github.com/acadtrack/advising/core/directory"
)

type directoryRepository struct {
	db *directoryTable
}

var _ directory.Repository = (*directoryRepository)(nil) // interface compliance check

func NewDirectoryRepository(db *DB) *directoryRepository {
	return &directoryRepository{db: db.directory}
}

func (repo *directoryRepository) CreateStudent(_ context.Context, s directory.Student) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.students[s.Number]; ok {
		return core.NewConflictError("a student with this number already exists")
	}
	repo.db.students[s.Number] = &s
	return nil
}

func (repo *directoryRepository) GetStudent(_ context.Context, number string) (directory.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.students[number]; ok {
		return *s, nil
	}
	return directory.Student{}, directory.ErrStudentNotFound
}

func (repo *directoryRepository) CreateAdviser(_ context.Context, a directory.Adviser) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.advisers[a.ID]; ok {
		return core.NewConflictError("an adviser with this ID already exists")
	}
	repo.db.advisers[a.ID] = &a
	return nil
}

func (repo *directoryRepository) GetAdviser(_ context.Context, id string) (directory.Adviser, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.advisers[id]; ok {
		return *a, nil
	}
	return directory.Adviser{}, directory.ErrAdviserNotFound
}
