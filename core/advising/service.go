package advising

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core"
	"github.com/acadtrack/advising/core/directory"
	"github.com/acadtrack/advising/core/ledger"
)

type (
	Repository interface {
		// QueryStudentsForAdvising lists a program's students holding at
		// least one pending submission, each with the timestamp of their
		// latest one.
		QueryStudentsForAdvising(ctx context.Context, program string) ([]StudentSubmission, error)
	}

	DirectoryService interface {
		GetAdviser(ctx context.Context, id string) (directory.Adviser, error)
	}

	LedgerService interface {
		Approve(ctx context.Context, studentNumber string) (int64, error)
		Dashboard(ctx context.Context, studentNumber string) (ledger.Dashboard, error)
		CoursesForStudent(ctx context.Context, studentNumber string) (ledger.CourseSelection, error)
	}

	Service struct {
		repo   Repository
		dir    DirectoryService
		ledger LedgerService
	}
)

func NewService(repo Repository, dir DirectoryService, ledger LedgerService) *Service {
	return &Service{repo: repo, dir: dir, ledger: ledger}
}

// ProgramData builds the adviser's advising queue for their program. Each
// queued student carries their full dashboard and the pending course list so
// the adviser reviews from one payload.
func (svc *Service) ProgramData(ctx context.Context, adviserID string) (ProgramData, error) {
	adv, err := svc.dir.GetAdviser(ctx, core.CleanString(adviserID))
	if err != nil {
		return ProgramData{}, err
	}

	subs, err := svc.repo.QueryStudentsForAdvising(ctx, adv.Program)
	if err != nil {
		return ProgramData{}, errors.Wrap(err, "fetching advising queue")
	}

	queue := make([]QueueEntry, 0, len(subs))
	for _, sub := range subs {
		dash, err := svc.ledger.Dashboard(ctx, sub.StudentNumber)
		if err != nil {
			return ProgramData{}, errors.Wrapf(err, "building dashboard for %s", sub.StudentNumber)
		}
		sel, err := svc.ledger.CoursesForStudent(ctx, sub.StudentNumber)
		if err != nil {
			return ProgramData{}, errors.Wrapf(err, "fetching pending courses for %s", sub.StudentNumber)
		}
		queue = append(queue, QueueEntry{
			StudentNumber:      sub.StudentNumber,
			StudentName:        sub.FirstName + " " + sub.LastName,
			CurrentStanding:    sub.CurrentStanding,
			TimeSubmitted:      CombineDateTime(sub.DateSubmitted, sub.TimeSubmitted),
			Student:            dash,
			CoursesForAdvising: sel.CoursesForAdvising,
		})
	}

	return ProgramData{
		AdviserID:   adv.ID,
		AdviserName: adv.FullName(),
		Program:     adv.Program,
		Queue:       queue,
	}, nil
}

// Approve accepts a student's pending course list and reports how many rows
// were flipped to taken. Zero means there was nothing pending.
func (svc *Service) Approve(ctx context.Context, studentNumber string) (int64, error) {
	return svc.ledger.Approve(ctx, studentNumber)
}

// CombineDateTime merges a date column and a "HH:MM:SS" time column into one
// timestamp shifted forward by eight hours. Submission times are stored in
// server time; the shift renders them in Philippine time the same way every
// existing client expects, wall-clock arithmetic with no zone attached.
func CombineDateTime(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		t = time.Time{}
	}
	combined := time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC,
	)
	return combined.Add(8 * time.Hour)
}
