package directory

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/acadtrack/advising/core"
)

var (
	// errors
	ErrStudentNotFound = errors.New("student not found")
	ErrAdviserNotFound = errors.New("adviser not found")
	ErrUnknownID       = errors.New("Invalid ID")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, s Student) error
		GetStudent(ctx context.Context, number string) (Student, error)
		CreateAdviser(ctx context.Context, a Adviser) error
		GetAdviser(ctx context.Context, id string) (Adviser, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	if ns.AdviserID != "" {
		if _, err := svc.repo.GetAdviser(ctx, ns.AdviserID); err != nil {
			if errors.Cause(err) == ErrAdviserNotFound {
				return Student{}, core.NewValidationError(err, core.FieldError{
					Field: "AdviserID",
					Error: "adviser with ID " + ns.AdviserID + " does not exist",
				})
			}
			return Student{}, errors.Wrap(err, "checking adviser")
		}
	}

	s := Student{
		Number:          ns.Number,
		FirstName:       ns.FirstName,
		MiddleName:      null.NewString(ns.MiddleName, ns.MiddleName != ""),
		LastName:        ns.LastName,
		Program:         ns.Program,
		AdviserID:       null.NewString(ns.AdviserID, ns.AdviserID != ""),
		CurrentStanding: ns.CurrentStanding,
		TotalUnitsTaken: ns.TotalUnitsTaken,
	}
	if err := svc.repo.CreateStudent(ctx, s); err != nil {
		return Student{}, err
	}
	return s, nil
}

func (svc *Service) GetStudent(ctx context.Context, number string) (Student, error) {
	return svc.repo.GetStudent(ctx, core.CleanString(number))
}

func (svc *Service) CreateAdviser(ctx context.Context, na NewAdviser) (Adviser, error) {
	a := Adviser{
		ID:         na.ID,
		FirstName:  na.FirstName,
		MiddleName: null.NewString(na.MiddleName, na.MiddleName != ""),
		LastName:   na.LastName,
		Program:    na.Program,
	}
	if err := svc.repo.CreateAdviser(ctx, a); err != nil {
		return Adviser{}, err
	}
	return a, nil
}

func (svc *Service) GetAdviser(ctx context.Context, id string) (Adviser, error) {
	return svc.repo.GetAdviser(ctx, core.CleanString(id))
}

// VerifyID resolves an ID against the adviser directory first, then the
// student directory. It answers "who is this", nothing more: no credential
// is checked and nothing session-like is produced.
func (svc *Service) VerifyID(ctx context.Context, id string) (Identity, error) {
	id = core.CleanString(id)
	if id == "" {
		return Identity{}, ErrUnknownID
	}

	if adv, err := svc.repo.GetAdviser(ctx, id); err == nil {
		return Identity{
			ID:       adv.ID,
			Name:     adv.FullName(),
			Position: PositionAdviser,
			Program:  adv.Program,
		}, nil
	} else if errors.Cause(err) != ErrAdviserNotFound {
		return Identity{}, errors.Wrap(err, "looking up adviser")
	}

	if s, err := svc.repo.GetStudent(ctx, id); err == nil {
		return Identity{
			ID:       s.Number,
			Name:     s.FullName(),
			Position: PositionStudent,
			Program:  s.Program,
		}, nil
	} else if errors.Cause(err) != ErrStudentNotFound {
		return Identity{}, errors.Wrap(err, "looking up student")
	}

	return Identity{}, ErrUnknownID
}
