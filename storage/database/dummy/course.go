package dummydb

import (
	"context"
	"sort"

	"github.com/acadtrack/advising/core/checklist"
	"github.com/acadtrack/advising/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(
	_ context.Context, crs course.Course, prereqs, coreqs []string, placement *course.ChecklistPlacement,
) error {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	if _, ok := repo.db.course.table[crs.ID]; ok {
		return course.ErrCourseExists
	}
	repo.db.course.table[crs.ID] = &crs
	repo.db.course.prereqs[crs.ID] = append([]string(nil), prereqs...)
	repo.db.course.coreqs[crs.ID] = append([]string(nil), coreqs...)

	if placement != nil {
		repo.db.checklist.Lock()
		defer repo.db.checklist.Unlock()
		if repo.db.checklist.table[placement.Program] == nil {
			repo.db.checklist.table[placement.Program] = make(map[string]*checklist.Item)
		}
		repo.db.checklist.table[placement.Program][crs.ID] = &checklist.Item{
			Program:            placement.Program,
			CourseID:           crs.ID,
			CourseType:         placement.CourseType,
			PrescribedYear:     placement.PrescribedYear,
			PrescribedSemester: placement.PrescribedSemester,
		}
	}
	return nil
}

func (repo *courseRepository) GetCourseRow(_ context.Context, id, program string) (course.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	crs, ok := repo.db.course.table[id]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	row := *crs
	row.CourseType = ""
	if program != "" {
		repo.db.checklist.RLock()
		if itm, ok := repo.db.checklist.table[program][id]; ok {
			row.CourseType = itm.CourseType
		}
		repo.db.checklist.RUnlock()
	}
	return row, nil
}

func (repo *courseRepository) QueryCourseRowsByProgram(ctx context.Context, program string) ([]course.Course, error) {
	repo.db.checklist.RLock()
	ids := make([]string, 0, len(repo.db.checklist.table[program]))
	for id := range repo.db.checklist.table[program] {
		ids = append(ids, id)
	}
	repo.db.checklist.RUnlock()
	sort.Strings(ids)

	courses := make([]course.Course, 0, len(ids))
	for _, id := range ids {
		crs, err := repo.GetCourseRow(ctx, id, program)
		if err != nil {
			return nil, err
		}
		courses = append(courses, crs)
	}
	return courses, nil
}

func (repo *courseRepository) RequisiteIDs(_ context.Context, id string) (prereqs, coreqs []string, err error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	prereqs = append([]string(nil), repo.db.course.prereqs[id]...)
	coreqs = append([]string(nil), repo.db.course.coreqs[id]...)
	sort.Strings(prereqs)
	sort.Strings(coreqs)
	return prereqs, coreqs, nil
}

func (repo *courseRepository) CourseExists(_ context.Context, id string) (bool, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()
	_, ok := repo.db.course.table[id]
	return ok, nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, currentID string, upd course.UpdateCourse, program string) error {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	crs, ok := repo.db.course.table[currentID]
	if !ok {
		return course.ErrNotFound
	}
	if upd.NewID != currentID {
		if _, ok := repo.db.course.table[upd.NewID]; ok {
			return course.ErrCourseExists
		}
	}

	delete(repo.db.course.table, currentID)
	crs.ID = upd.NewID
	crs.Description = upd.Description
	crs.Units = upd.Units
	repo.db.course.table[upd.NewID] = crs

	repo.db.course.prereqs[upd.NewID] = append([]string(nil), upd.Prerequisites...)
	repo.db.course.coreqs[upd.NewID] = append([]string(nil), upd.Corequisites...)
	if upd.NewID != currentID {
		delete(repo.db.course.prereqs, currentID)
		delete(repo.db.course.coreqs, currentID)
		repo.renameCourseRefs(currentID, upd.NewID)
	}

	if program != "" && upd.CourseType != "" {
		repo.db.checklist.Lock()
		if itm, ok := repo.db.checklist.table[program][upd.NewID]; ok {
			itm.CourseType = upd.CourseType
		}
		repo.db.checklist.Unlock()
	}
	return nil
}

// renameCourseRefs mirrors the SQL schema's ON UPDATE CASCADE.
func (repo *courseRepository) renameCourseRefs(oldID, newID string) {
	rename := func(edges map[string][]string) {
		for id, reqs := range edges {
			for i, req := range reqs {
				if req == oldID {
					reqs[i] = newID
				}
			}
			edges[id] = reqs
		}
	}
	rename(repo.db.course.prereqs)
	rename(repo.db.course.coreqs)

	repo.db.checklist.Lock()
	for _, entries := range repo.db.checklist.table {
		if itm, ok := entries[oldID]; ok {
			delete(entries, oldID)
			itm.CourseID = newID
			entries[newID] = itm
		}
	}
	repo.db.checklist.Unlock()

	repo.db.ledger.Lock()
	for _, entries := range repo.db.ledger.table {
		if e, ok := entries[oldID]; ok {
			delete(entries, oldID)
			e.CourseID = newID
			entries[newID] = e
		}
	}
	repo.db.ledger.Unlock()
}

func (repo *courseRepository) DeleteCourse(_ context.Context, id string) error {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	if _, ok := repo.db.course.table[id]; !ok {
		return course.ErrNotFound
	}
	delete(repo.db.course.table, id)
	delete(repo.db.course.prereqs, id)
	delete(repo.db.course.coreqs, id)
	for cid, reqs := range repo.db.course.prereqs {
		repo.db.course.prereqs[cid] = dropID(reqs, id)
	}
	for cid, reqs := range repo.db.course.coreqs {
		repo.db.course.coreqs[cid] = dropID(reqs, id)
	}

	// cascade to checklist entries
	repo.db.checklist.Lock()
	for _, entries := range repo.db.checklist.table {
		delete(entries, id)
	}
	repo.db.checklist.Unlock()
	return nil
}

func dropID(ids []string, id string) []string {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
