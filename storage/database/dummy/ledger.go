package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/acadtrack/advising/core/advising"
	"github.com/acadtrack/advising/core/ledger"
)

type ledgerRepository struct {
	db *DB
}

var _ ledger.Repository = (*ledgerRepository)(nil) // interface compliance check

func NewLedgerRepository(db *DB) *ledgerRepository {
	return &ledgerRepository{db: db}
}

// ApplyBatch validates the whole batch before touching the table so it is
// all-or-nothing like its SQL counterpart.
func (repo *ledgerRepository) ApplyBatch(_ context.Context, bu ledger.BatchUpdate, now time.Time) error {
	repo.db.ledger.Lock()
	defer repo.db.ledger.Unlock()

	if repo.db.ledger.batches[bu.IdempotencyKey] {
		return ledger.ErrBatchReplayed
	}

	entries := repo.db.ledger.table[bu.StudentNumber]
	for _, courseID := range bu.CoursesToDelete {
		e, ok := entries[courseID]
		if !ok {
			return ledger.ErrEntryNotFound
		}
		if e.Status == ledger.StatusTaken {
			return ledger.ErrAlreadyTaken
		}
	}
	for _, courseID := range bu.CoursesToAdd {
		if e, ok := entries[courseID]; ok {
			if e.Status == ledger.StatusTaken {
				return ledger.ErrAlreadyTaken
			}
			return ledger.ErrEntryExists
		}
	}

	repo.db.ledger.batches[bu.IdempotencyKey] = true
	if entries == nil {
		entries = make(map[string]*ledger.Entry)
		repo.db.ledger.table[bu.StudentNumber] = entries
	}
	for _, courseID := range bu.CoursesToDelete {
		delete(entries, courseID)
	}
	for _, courseID := range bu.CoursesToAdd {
		entries[courseID] = &ledger.Entry{
			StudentNumber: bu.StudentNumber,
			CourseID:      courseID,
			Status:        ledger.StatusForAdvising,
			Grade:         null.StringFrom(ledger.GradeNotAvailable),
			DateSubmitted: now,
			TimeSubmitted: now.Format("15:04:05"),
		}
	}
	return nil
}

func (repo *ledgerRepository) ApproveForStudent(_ context.Context, studentNumber string) (int64, error) {
	repo.db.ledger.Lock()
	defer repo.db.ledger.Unlock()

	var n int64
	for _, e := range repo.db.ledger.table[studentNumber] {
		if e.Status == ledger.StatusForAdvising {
			e.Status = ledger.StatusTaken
			n++
		}
	}
	return n, nil
}

func (repo *ledgerRepository) QueryEntriesForStudent(_ context.Context, studentNumber string) ([]ledger.Entry, error) {
	repo.db.ledger.RLock()
	defer repo.db.ledger.RUnlock()

	entries := make([]ledger.Entry, 0, len(repo.db.ledger.table[studentNumber]))
	for _, e := range repo.db.ledger.table[studentNumber] {
		entries = append(entries, *e)
	}
	sortEntries(entries)
	return entries, nil
}

func (repo *ledgerRepository) QueryEntries(_ context.Context, studentNumber, courseID string) ([]ledger.Entry, error) {
	repo.db.ledger.RLock()
	defer repo.db.ledger.RUnlock()

	entries := make([]ledger.Entry, 0)
	for number, byCourse := range repo.db.ledger.table {
		if studentNumber != "" && number != studentNumber {
			continue
		}
		for _, e := range byCourse {
			if courseID != "" && e.CourseID != courseID {
				continue
			}
			entries = append(entries, *e)
		}
	}
	sortEntries(entries)
	return entries, nil
}

func (repo *ledgerRepository) CourseExists(_ context.Context, courseID string) (bool, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()
	_, ok := repo.db.course.table[courseID]
	return ok, nil
}

func sortEntries(entries []ledger.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].StudentNumber != entries[j].StudentNumber {
			return entries[i].StudentNumber < entries[j].StudentNumber
		}
		return entries[i].CourseID < entries[j].CourseID
	})
}

type advisingRepository struct {
	db *DB
}

var _ advising.Repository = (*advisingRepository)(nil) // interface compliance check

func NewAdvisingRepository(db *DB) *advisingRepository {
	return &advisingRepository{db: db}
}

func (repo *advisingRepository) QueryStudentsForAdvising(_ context.Context, program string) ([]advising.StudentSubmission, error) {
	repo.db.directory.RLock()
	students := make(map[string]advising.StudentSubmission)
	for _, s := range repo.db.directory.students {
		if s.Program == program {
			students[s.Number] = advising.StudentSubmission{
				StudentNumber:   s.Number,
				FirstName:       s.FirstName,
				LastName:        s.LastName,
				Program:         s.Program,
				CurrentStanding: s.CurrentStanding,
			}
		}
	}
	repo.db.directory.RUnlock()

	repo.db.ledger.RLock()
	subs := make([]advising.StudentSubmission, 0)
	for number, sub := range students {
		latest := sub
		pending := false
		for _, e := range repo.db.ledger.table[number] {
			if e.Status != ledger.StatusForAdvising {
				continue
			}
			pending = true
			if e.DateSubmitted.After(latest.DateSubmitted) ||
				(e.DateSubmitted.Equal(latest.DateSubmitted) && e.TimeSubmitted > latest.TimeSubmitted) {
				latest.DateSubmitted = e.DateSubmitted
				latest.TimeSubmitted = e.TimeSubmitted
			}
		}
		if pending {
			subs = append(subs, latest)
		}
	}
	repo.db.ledger.RUnlock()

	sort.Slice(subs, func(i, j int) bool { return subs[i].StudentNumber < subs[j].StudentNumber })
	return subs, nil
}
