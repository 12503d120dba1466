package checklist

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound        = errors.New("checklist entry not found")
	ErrDuplicateEntry  = errors.New("this course is already on the checklist for this program, type, year and semester")
	ErrCourseNotFound  = errors.New("course not found")
	ErrProgramNotFound = errors.New("no course checklist found for the program")
)

type (
	Repository interface {
		// CreateItem inserts one checklist entry; a duplicate composite key
		// surfaces as a core.ConflictError.
		CreateItem(ctx context.Context, itm Item) error
		// QueryItems returns entries joined with course attributes;
		// an empty program returns every entry.
		QueryItems(ctx context.Context, program string) ([]Item, error)
		GetItem(ctx context.Context, program, courseID string) (Item, error)
		// UpdateItem rewrites an entry keyed by (program, courseID); moving
		// it onto an existing destination row is a core.ConflictError.
		UpdateItem(ctx context.Context, program, courseID string, upd UpdateItem) error
		DeleteItem(ctx context.Context, program, courseID string) error
		CourseExists(ctx context.Context, courseID string) (bool, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) AddItem(ctx context.Context, ni NewItem) (Item, error) {
	exists, err := svc.repo.CourseExists(ctx, ni.CourseID)
	if err != nil {
		return Item{}, errors.Wrap(err, "checking course")
	}
	if !exists {
		return Item{}, ErrCourseNotFound
	}

	itm := Item{
		Program:            ni.Program,
		CourseID:           ni.CourseID,
		CourseType:         ni.CourseType,
		PrescribedYear:     ni.PrescribedYear,
		PrescribedSemester: ni.PrescribedSemester,
	}
	if err := svc.repo.CreateItem(ctx, itm); err != nil {
		return Item{}, err
	}
	return svc.repo.GetItem(ctx, ni.Program, ni.CourseID)
}

func (svc *Service) Query(ctx context.Context, program string) ([]Item, error) {
	return svc.repo.QueryItems(ctx, program)
}

func (svc *Service) UpdateItem(ctx context.Context, program, courseID string, ui UpdateItem) error {
	return svc.repo.UpdateItem(ctx, program, courseID, ui)
}

func (svc *Service) RemoveItem(ctx context.Context, program, courseID string) error {
	return svc.repo.DeleteItem(ctx, program, courseID)
}

func (svc *Service) GetItem(ctx context.Context, program, courseID string) (Item, error) {
	return svc.repo.GetItem(ctx, program, courseID)
}
