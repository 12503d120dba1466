package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/acadtrack/advising/core"
	"github.com/acadtrack/advising/core/checklist"
)

type checklistRepository struct {
	db *DB
}

var _ checklist.Repository = (*checklistRepository)(nil) // interface compliance check

func NewChecklistRepository(db *DB) *checklistRepository {
	return &checklistRepository{db: db}
}

// joinCourse fills the attributes the SQL repo gets from its course join.
func (repo *checklistRepository) joinCourse(itm checklist.Item) checklist.Item {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()
	if crs, ok := repo.db.course.table[itm.CourseID]; ok {
		itm.CourseDescription = crs.Description
		itm.Units = crs.Units
	}
	return itm
}

func (repo *checklistRepository) CreateItem(_ context.Context, itm checklist.Item) error {
	repo.db.checklist.Lock()
	defer repo.db.checklist.Unlock()

	if repo.db.checklist.table[itm.Program] == nil {
		repo.db.checklist.table[itm.Program] = make(map[string]*checklist.Item)
	}
	if _, ok := repo.db.checklist.table[itm.Program][itm.CourseID]; ok {
		return core.NewConflictError(checklist.ErrDuplicateEntry.Error())
	}
	now := time.Now()
	itm.DateLastUpdated = now
	itm.TimeLastUpdated = now.Format("15:04:05")
	repo.db.checklist.table[itm.Program][itm.CourseID] = &itm
	return nil
}

func (repo *checklistRepository) QueryItems(_ context.Context, program string) ([]checklist.Item, error) {
	repo.db.checklist.RLock()
	items := make([]checklist.Item, 0)
	for prog, entries := range repo.db.checklist.table {
		if program != "" && prog != program {
			continue
		}
		for _, itm := range entries {
			items = append(items, *itm)
		}
	}
	repo.db.checklist.RUnlock()

	for i := range items {
		items[i] = repo.joinCourse(items[i])
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Program != items[j].Program {
			return items[i].Program < items[j].Program
		}
		return items[i].CourseID < items[j].CourseID
	})
	return items, nil
}

func (repo *checklistRepository) GetItem(_ context.Context, program, courseID string) (checklist.Item, error) {
	repo.db.checklist.RLock()
	itm, ok := repo.db.checklist.table[program][courseID]
	repo.db.checklist.RUnlock()
	if !ok {
		return checklist.Item{}, checklist.ErrNotFound
	}
	return repo.joinCourse(*itm), nil
}

func (repo *checklistRepository) UpdateItem(_ context.Context, program, courseID string, upd checklist.UpdateItem) error {
	repo.db.checklist.Lock()
	defer repo.db.checklist.Unlock()

	itm, ok := repo.db.checklist.table[program][courseID]
	if !ok {
		return checklist.ErrNotFound
	}

	moved := upd.NewProgram != program || upd.NewCourseID != courseID
	if moved {
		if _, ok := repo.db.checklist.table[upd.NewProgram][upd.NewCourseID]; ok {
			return core.NewConflictError(checklist.ErrDuplicateEntry.Error())
		}
	}
	if upd.NewCourseID != courseID {
		repo.db.course.RLock()
		_, ok := repo.db.course.table[upd.NewCourseID]
		repo.db.course.RUnlock()
		if !ok {
			return checklist.ErrCourseNotFound
		}
	}

	delete(repo.db.checklist.table[program], courseID)
	now := time.Now()
	itm.Program = upd.NewProgram
	itm.CourseID = upd.NewCourseID
	itm.CourseType = upd.CourseType
	itm.PrescribedYear = upd.PrescribedYear
	itm.PrescribedSemester = upd.PrescribedSemester
	itm.DateLastUpdated = now
	itm.TimeLastUpdated = now.Format("15:04:05")
	if repo.db.checklist.table[upd.NewProgram] == nil {
		repo.db.checklist.table[upd.NewProgram] = make(map[string]*checklist.Item)
	}
	repo.db.checklist.table[upd.NewProgram][upd.NewCourseID] = itm
	return nil
}

func (repo *checklistRepository) DeleteItem(_ context.Context, program, courseID string) error {
	repo.db.checklist.Lock()
	defer repo.db.checklist.Unlock()

	if _, ok := repo.db.checklist.table[program][courseID]; !ok {
		return checklist.ErrNotFound
	}
	delete(repo.db.checklist.table[program], courseID)
	return nil
}

func (repo *checklistRepository) CourseExists(_ context.Context, courseID string) (bool, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()
	_, ok := repo.db.course.table[courseID]
	return ok, nil
}
