// Package dummydb is an in-memory database for tests and local hacking.
package dummydb

import (
	"sync"

	"github.com/acadtrack/advising/core/checklist"
	"github.com/acadtrack/advising/core/course"
	"github.com/acadtrack/advising/core/directory"
	"github.com/acadtrack/advising/core/ledger"
)

type (
	DB struct {
		course    *courseTable
		checklist *checklistTable
		directory *directoryTable
		ledger    *ledgerTable
	}

	courseTable struct {
		sync.RWMutex
		table   map[string]*course.Course
		prereqs map[string][]string
		coreqs  map[string][]string
	}

	// program -> course ID -> item
	checklistTable struct {
		sync.RWMutex
		table map[string]map[string]*checklist.Item
	}

	directoryTable struct {
		sync.RWMutex
		students map[string]*directory.Student
		advisers map[string]*directory.Adviser
	}

	// student number -> course ID -> entry
	ledgerTable struct {
		sync.RWMutex
		table   map[string]map[string]*ledger.Entry
		batches map[string]bool
	}
)

func Open() (*DB, error) {
	db := &DB{
		course: &courseTable{
			table:   make(map[string]*course.Course),
			prereqs: make(map[string][]string),
			coreqs:  make(map[string][]string),
		},
		checklist: &checklistTable{table: make(map[string]map[string]*checklist.Item)},
		directory: &directoryTable{
			students: make(map[string]*directory.Student),
			advisers: make(map[string]*directory.Adviser),
		},
		ledger: &ledgerTable{
			table:   make(map[string]map[string]*ledger.Entry),
			batches: make(map[string]bool),
		},
	}
	return db, nil
}
