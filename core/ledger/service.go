package ledger

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core"
	"github.com/acadtrack/advising/core/checklist"
	"github.com/acadtrack/advising/core/course"
	"github.com/acadtrack/advising/core/directory"
)

var (
	// errors
	ErrEntryNotFound  = errors.New("course list entry not found")
	ErrEntryExists    = errors.New("this course is already submitted for advising")
	ErrAlreadyTaken   = errors.New("this course is already taken and cannot be changed")
	ErrBatchReplayed  = errors.New("this course list update was already applied")
	ErrNothingToApply = errors.New("nothing to update")
)

type (
	Repository interface {
		// ApplyBatch applies adds and deletes in one transaction and records
		// the batch's idempotency key; a key seen before fails with
		// ErrBatchReplayed and changes nothing. Adding a course already on
		// the ledger fails with ErrEntryExists or ErrAlreadyTaken depending
		// on its status; deleting a taken course fails with ErrAlreadyTaken.
		ApplyBatch(ctx context.Context, bu BatchUpdate, now time.Time) error
		// ApproveForStudent flips the student's pending submissions to taken
		// and reports how many rows changed.
		ApproveForStudent(ctx context.Context, studentNumber string) (int64, error)
		QueryEntriesForStudent(ctx context.Context, studentNumber string) ([]Entry, error)
		QueryEntries(ctx context.Context, studentNumber, courseID string) ([]Entry, error)
		CourseExists(ctx context.Context, courseID string) (bool, error)
	}

	DirectoryService interface {
		GetStudent(ctx context.Context, number string) (directory.Student, error)
		GetAdviser(ctx context.Context, id string) (directory.Adviser, error)
	}

	ChecklistService interface {
		Query(ctx context.Context, program string) ([]checklist.Item, error)
	}

	CourseGetter interface {
		Get(ctx context.Context, id, program string) (course.Course, error)
	}

	Service struct {
		repo       Repository
		dir        DirectoryService
		checklists ChecklistService
		courses    CourseGetter
		mailSvc    core.EmailService
		inbox      mail.Address
		logger     core.Logger
	}
)

func NewService(
	repo Repository,
	dir DirectoryService,
	checklists ChecklistService,
	courses CourseGetter,
	mailSvc core.EmailService,
	inbox mail.Address,
	logger core.Logger,
) *Service {
	return &Service{
		repo:       repo,
		dir:        dir,
		checklists: checklists,
		courses:    courses,
		mailSvc:    mailSvc,
		inbox:      inbox,
		logger:     logger,
	}
}

// SaveCourseList applies a batch of course list changes for a student. The
// whole batch succeeds or fails as one. The returned flag reports whether
// this call applied the batch; a replayed idempotency key returns false with
// no error since the work is already done.
func (svc *Service) SaveCourseList(ctx context.Context, bu BatchUpdate) (applied bool, err error) {
	if len(bu.CoursesToAdd) == 0 && len(bu.CoursesToDelete) == 0 {
		return false, ErrNothingToApply
	}
	if bu.IdempotencyKey == "" {
		bu.IdempotencyKey = uuid.New().String()
	}

	student, err := svc.dir.GetStudent(ctx, bu.StudentNumber)
	if err != nil {
		return false, err
	}

	if err := svc.checkCoursesExist(ctx, bu.CoursesToAdd); err != nil {
		return false, err
	}

	if err := svc.repo.ApplyBatch(ctx, bu, time.Now()); err != nil {
		if errors.Cause(err) == ErrBatchReplayed {
			return false, nil
		}
		return false, err
	}

	if len(bu.CoursesToAdd) > 0 {
		svc.notifySubmission(student, bu.CoursesToAdd)
	}
	return true, nil
}

// Approve flips every pending submission of the student to taken. Approving
// a student with nothing pending is a no-op reporting zero rows.
func (svc *Service) Approve(ctx context.Context, studentNumber string) (int64, error) {
	studentNumber = core.CleanString(studentNumber)
	if _, err := svc.dir.GetStudent(ctx, studentNumber); err != nil {
		return 0, err
	}
	return svc.repo.ApproveForStudent(ctx, studentNumber)
}

// Dashboard assembles the student's advising dashboard: identity, courses
// taken with grade labels, the checklist bounded by standing, and the
// year/semester schedule grid.
func (svc *Service) Dashboard(ctx context.Context, studentNumber string) (Dashboard, error) {
	student, err := svc.dir.GetStudent(ctx, core.CleanString(studentNumber))
	if err != nil {
		return Dashboard{}, err
	}

	adviserName := ""
	if student.AdviserID.Valid {
		adv, err := svc.dir.GetAdviser(ctx, student.AdviserID.String)
		if err != nil {
			return Dashboard{}, errors.Wrap(err, "fetching adviser")
		}
		adviserName = adv.FullName()
	}

	entries, items, err := svc.fetchLedgerAndChecklist(ctx, student)
	if err != nil {
		return Dashboard{}, err
	}

	meta, err := svc.buildMeta(ctx, entries, items, student.Program)
	if err != nil {
		return Dashboard{}, err
	}

	taken := BuildTaken(entries, meta)
	return Dashboard{
		StudentName:      student.FullName(),
		StudentNumber:    student.Number,
		StudentProgram:   student.Program,
		AdviserName:      adviserName,
		CurrentStanding:  student.CurrentStanding,
		TotalUnitsPassed: TotalUnitsPassed(taken),
		CoursesTaken:     taken,
		CourseChecklist:  BoundedChecklist(items, student.CurrentStanding),
		Schedule:         GroupBySchedule(taken),
	}, nil
}

// CoursesForStudent is the course-shopping view: what the student may still
// take, and what is already pending with a running unit total.
func (svc *Service) CoursesForStudent(ctx context.Context, studentNumber string) (CourseSelection, error) {
	student, err := svc.dir.GetStudent(ctx, core.CleanString(studentNumber))
	if err != nil {
		return CourseSelection{}, err
	}

	entries, items, err := svc.fetchLedgerAndChecklist(ctx, student)
	if err != nil {
		return CourseSelection{}, err
	}

	meta, err := svc.buildMeta(ctx, entries, items, student.Program)
	if err != nil {
		return CourseSelection{}, err
	}

	return CourseSelection{
		CourseNotYetTaken:  NotYetTaken(items, entries, student.CurrentStanding),
		CoursesForAdvising: ForAdvisingList(entries, meta),
	}, nil
}

// Query returns raw ledger rows, optionally narrowed to one course.
func (svc *Service) Query(ctx context.Context, studentNumber, courseID string) ([]Entry, error) {
	return svc.repo.QueryEntries(ctx, core.CleanString(studentNumber), core.CleanString(courseID))
}

func (svc *Service) fetchLedgerAndChecklist(ctx context.Context, student directory.Student) ([]Entry, []checklist.Item, error) {
	entries, err := svc.repo.QueryEntriesForStudent(ctx, student.Number)
	if err != nil {
		return nil, nil, errors.Wrap(err, "fetching course list")
	}
	items, err := svc.checklists.Query(ctx, student.Program)
	if err != nil {
		return nil, nil, errors.Wrap(err, "fetching checklist")
	}
	return entries, items, nil
}

// buildMeta joins ledger rows with checklist context, filling in from the
// catalog for courses that sit outside the student's program checklist.
func (svc *Service) buildMeta(ctx context.Context, entries []Entry, items []checklist.Item, program string) (map[string]CourseMeta, error) {
	meta := MetaFromChecklist(items)
	for _, e := range entries {
		if _, ok := meta[e.CourseID]; ok {
			continue
		}
		crs, err := svc.courses.Get(ctx, e.CourseID, program)
		if err != nil {
			return nil, errors.Wrapf(err, "fetching course %s", e.CourseID)
		}
		meta[e.CourseID] = CourseMeta{
			Description:        crs.Description,
			Units:              crs.Units,
			PrescribedYear:     "None",
			PrescribedSemester: "None",
		}
	}
	return meta, nil
}

func (svc *Service) checkCoursesExist(ctx context.Context, courseIDs []string) error {
	for _, id := range courseIDs {
		exists, err := svc.repo.CourseExists(ctx, id)
		if err != nil {
			return errors.Wrap(err, "checking course")
		}
		if !exists {
			return core.NewValidationError(nil, core.FieldError{
				Field: "coursesToAdd",
				Error: fmt.Sprintf("course %s does not exist", id),
			})
		}
	}
	return nil
}

// notifySubmission emails the advising inbox about a new submission. Sending
// is best effort; a failure is the mail service's to log, not a reason to
// fail a batch that already committed.
func (svc *Service) notifySubmission(student directory.Student, courseIDs []string) {
	if svc.mailSvc == nil {
		return
	}
	msg := &core.EmailMessage{
		To:      []mail.Address{svc.inbox},
		Subject: fmt.Sprintf("Course list submitted: %s (%s)", student.FullName(), student.Number),
		BodyStr: fmt.Sprintf(
			"%s (%s, %s) submitted the following courses for advising:\n\n%s\n",
			student.FullName(), student.Number, student.Program,
			strings.Join(courseIDs, "\n"),
		),
	}
	svc.mailSvc.SendMessages(msg)
}
