package course

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core"
)

// fakeRepo is an in-memory Repository for exercising the service's graph
// traversal without a database.
type fakeRepo struct {
	rows    map[string]Course
	prereqs map[string][]string
	coreqs  map[string][]string
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rows:    map[string]Course{},
		prereqs: map[string][]string{},
		coreqs:  map[string][]string{},
	}
}

func (r *fakeRepo) add(id string, prereqs ...string) {
	r.rows[id] = Course{ID: id, Description: id, Units: 3}
	r.prereqs[id] = prereqs
}

func (r *fakeRepo) CreateCourse(_ context.Context, crs Course, prereqs, coreqs []string, _ *ChecklistPlacement) error {
	r.rows[crs.ID] = crs
	r.prereqs[crs.ID] = prereqs
	r.coreqs[crs.ID] = coreqs
	return nil
}

func (r *fakeRepo) GetCourseRow(_ context.Context, id, _ string) (Course, error) {
	crs, ok := r.rows[id]
	if !ok {
		return Course{}, ErrNotFound
	}
	return crs, nil
}

func (r *fakeRepo) QueryCourseRowsByProgram(_ context.Context, _ string) ([]Course, error) {
	out := make([]Course, 0, len(r.rows))
	for _, crs := range r.rows {
		out = append(out, crs)
	}
	return out, nil
}

func (r *fakeRepo) RequisiteIDs(_ context.Context, id string) ([]string, []string, error) {
	return r.prereqs[id], r.coreqs[id], nil
}

func (r *fakeRepo) CourseExists(_ context.Context, id string) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeRepo) UpdateCourse(_ context.Context, currentID string, upd UpdateCourse, _ string) error {
	if _, ok := r.rows[currentID]; !ok {
		return ErrNotFound
	}
	r.prereqs[currentID] = upd.Prerequisites
	r.coreqs[currentID] = upd.Corequisites
	return nil
}

func (r *fakeRepo) DeleteCourse(_ context.Context, id string) error {
	delete(r.rows, id)
	return nil
}

func TestService_Get_expandsRequisites(t *testing.T) {
	repo := newFakeRepo()
	repo.add("CS101")
	repo.add("CS102")
	repo.add("CS201", "CS101", "CS102")
	repo.add("CS301", "CS201")

	svc := NewService(repo)

	crs, err := svc.Get(context.Background(), "CS301", "")
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}
	if len(crs.Prerequisites) != 1 || crs.Prerequisites[0].ID != "CS201" {
		t.Fatalf("CS301 prerequisites = %+v, want [CS201]", crs.Prerequisites)
	}
	nested := crs.Prerequisites[0]
	if len(nested.Prerequisites) != 2 {
		t.Errorf("CS201 prerequisites = %+v, want two nested courses", nested.Prerequisites)
	}
}

func TestService_Get_cycleDetection(t *testing.T) {
	t.Run("direct cycle", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add("A", "B")
		repo.add("B", "A")
		svc := NewService(repo)

		_, err := svc.Get(context.Background(), "A", "")
		if errors.Cause(err) != ErrRequisiteCycle {
			t.Errorf("err = %v, want %v", err, ErrRequisiteCycle)
		}
	})

	t.Run("self cycle", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add("A", "A")
		svc := NewService(repo)

		_, err := svc.Get(context.Background(), "A", "")
		if errors.Cause(err) != ErrRequisiteCycle {
			t.Errorf("err = %v, want %v", err, ErrRequisiteCycle)
		}
	})

	// a diamond shares a prerequisite on two paths without forming a cycle
	t.Run("diamond is not a cycle", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add("D")
		repo.add("B", "D")
		repo.add("C", "D")
		repo.add("A", "B", "C")
		svc := NewService(repo)

		crs, err := svc.Get(context.Background(), "A", "")
		if err != nil {
			t.Fatalf("Get(): %v", err)
		}
		if len(crs.Prerequisites) != 2 {
			t.Errorf("prerequisites = %+v, want both branches expanded", crs.Prerequisites)
		}
	})
}

func TestService_checkRequisitesExist(t *testing.T) {
	repo := newFakeRepo()
	repo.add("CS101")
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), NewCourse{
		ID: "CS202", Description: "x", Units: 3,
		Prerequisites: []string{"CS999"},
	})
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want *core.ValidationError", err)
	}

	_, err = svc.Create(context.Background(), NewCourse{
		ID: "CS202", Description: "x", Units: 3,
		Corequisites: []string{"CS999"},
	})
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want *core.ValidationError", err)
	}

	if _, err = svc.Create(context.Background(), NewCourse{
		ID: "CS202", Description: "x", Units: 3,
		Prerequisites: []string{"CS101"},
	}); err != nil {
		t.Fatalf("Create(): %v", err)
	}
}
