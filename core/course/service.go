package course

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core"
)

var (
	// errors
	ErrNotFound       = errors.New("course not found")
	ErrCourseExists   = errors.New("a course with this ID already exists")
	ErrRequisiteCycle = errors.New("requisite cycle detected")
)

type (
	Repository interface {
		// CreateCourse inserts the course row, its requisite edges and the
		// optional checklist placement in a single transaction.
		CreateCourse(ctx context.Context, crs Course, prereqs, coreqs []string, placement *ChecklistPlacement) error
		// GetCourseRow fetches a bare course row; CourseType is attached
		// from the program checklist when program is non-empty.
		GetCourseRow(ctx context.Context, id, program string) (Course, error)
		QueryCourseRowsByProgram(ctx context.Context, program string) ([]Course, error)
		RequisiteIDs(ctx context.Context, id string) (prereqs, coreqs []string, err error)
		CourseExists(ctx context.Context, id string) (bool, error)
		// UpdateCourse updates the course row (and the checklist CourseType
		// when program is non-empty) and replaces both requisite edge sets,
		// in a single transaction.
		UpdateCourse(ctx context.Context, currentID string, upd UpdateCourse, program string) error
		DeleteCourse(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates that every referenced requisite exists before inserting;
// the insert itself runs in one transaction so a failed edge never leaves a
// half-written course behind.
func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := svc.checkRequisitesExist(ctx, nc.Prerequisites, nc.Corequisites); err != nil {
		return Course{}, err
	}

	crs := Course{
		ID:           nc.ID,
		Description:  nc.Description,
		Units:        nc.Units,
		Components:   nc.Components,
		College:      nc.College,
		Department:   nc.Department,
		GradingBasis: nc.GradingBasis,
	}
	if err := svc.repo.CreateCourse(ctx, crs, nc.Prerequisites, nc.Corequisites, nil); err != nil {
		return Course{}, err
	}
	return svc.Get(ctx, crs.ID, "")
}

// CreateWithChecklist is the combined "add course" operation: the course row
// and its checklist placement are written atomically.
func (svc *Service) CreateWithChecklist(ctx context.Context, nc NewCourse, placement ChecklistPlacement) (Course, error) {
	if err := svc.checkRequisitesExist(ctx, nc.Prerequisites, nc.Corequisites); err != nil {
		return Course{}, err
	}

	crs := Course{
		ID:           nc.ID,
		Description:  nc.Description,
		Units:        nc.Units,
		Components:   nc.Components,
		College:      nc.College,
		Department:   nc.Department,
		GradingBasis: nc.GradingBasis,
	}
	if err := svc.repo.CreateCourse(ctx, crs, nc.Prerequisites, nc.Corequisites, &placement); err != nil {
		return Course{}, err
	}
	return svc.Get(ctx, crs.ID, placement.Program)
}

// Get fetches a course with its requisites expanded into nested Course
// values. Traversal carries the current path so a requisite cycle fails with
// ErrRequisiteCycle instead of recursing unboundedly.
func (svc *Service) Get(ctx context.Context, id, program string) (Course, error) {
	crs, err := svc.repo.GetCourseRow(ctx, id, program)
	if err != nil {
		return Course{}, err
	}
	if err := svc.expandRequisites(ctx, &crs, map[string]bool{}); err != nil {
		return Course{}, err
	}
	return crs, nil
}

// QueryByProgram lists a program's catalog, each course joined with its
// checklist CourseType and its requisites expanded.
func (svc *Service) QueryByProgram(ctx context.Context, program string) ([]Course, error) {
	rows, err := svc.repo.QueryCourseRowsByProgram(ctx, program)
	if err != nil {
		return nil, err
	}
	courses := make([]Course, 0, len(rows))
	for _, crs := range rows {
		if err := svc.expandRequisites(ctx, &crs, map[string]bool{}); err != nil {
			return nil, err
		}
		courses = append(courses, crs)
	}
	return courses, nil
}

func (svc *Service) Update(ctx context.Context, currentID string, uc UpdateCourse, program string) error {
	if err := svc.checkRequisitesExist(ctx, uc.Prerequisites, uc.Corequisites); err != nil {
		return err
	}
	return svc.repo.UpdateCourse(ctx, currentID, uc, program)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteCourse(ctx, id)
}

func (svc *Service) checkRequisitesExist(ctx context.Context, prereqs, coreqs []string) error {
	for _, id := range prereqs {
		exists, err := svc.repo.CourseExists(ctx, id)
		if err != nil {
			return errors.Wrap(err, "checking prerequisite")
		}
		if !exists {
			return core.NewValidationError(nil, core.FieldError{
				Field: "Prerequisites",
				Error: fmt.Sprintf("prerequisite course %s does not exist", id),
			})
		}
	}
	for _, id := range coreqs {
		exists, err := svc.repo.CourseExists(ctx, id)
		if err != nil {
			return errors.Wrap(err, "checking corequisite")
		}
		if !exists {
			return core.NewValidationError(nil, core.FieldError{
				Field: "Corequisites",
				Error: fmt.Sprintf("corequisite course %s does not exist", id),
			})
		}
	}
	return nil
}

// expandRequisites resolves requisite IDs into full nested courses. path
// holds the IDs currently being expanded; meeting one of them again is a
// cycle.
func (svc *Service) expandRequisites(ctx context.Context, crs *Course, path map[string]bool) error {
	path[crs.ID] = true
	defer delete(path, crs.ID)

	prereqIDs, coreqIDs, err := svc.repo.RequisiteIDs(ctx, crs.ID)
	if err != nil {
		return errors.Wrap(err, "fetching requisite IDs")
	}

	crs.Prerequisites = make([]Course, 0, len(prereqIDs))
	for _, id := range prereqIDs {
		if path[id] {
			return ErrRequisiteCycle
		}
		sub, err := svc.repo.GetCourseRow(ctx, id, "")
		if err != nil {
			return errors.Wrapf(err, "fetching prerequisite %s", id)
		}
		if err := svc.expandRequisites(ctx, &sub, path); err != nil {
			return err
		}
		crs.Prerequisites = append(crs.Prerequisites, sub)
	}

	crs.Corequisites = make([]Course, 0, len(coreqIDs))
	for _, id := range coreqIDs {
		if path[id] {
			return ErrRequisiteCycle
		}
		sub, err := svc.repo.GetCourseRow(ctx, id, "")
		if err != nil {
			return errors.Wrapf(err, "fetching corequisite %s", id)
		}
		if err := svc.expandRequisites(ctx, &sub, path); err != nil {
			return err
		}
		crs.Corequisites = append(crs.Corequisites, sub)
	}
	return nil
}
