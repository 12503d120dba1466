package advising

import (
	"time"

	"github.com/acadtrack/advising/core/ledger"
)

// StudentSubmission is one student with a pending course list, joined with
// the timestamp of their latest submission.
type StudentSubmission struct {
	StudentNumber   string    `json:"StudentNumber" db:"student_number"`
	FirstName       string    `json:"S_FirstName" db:"s_first_name"`
	LastName        string    `json:"S_LastName" db:"s_last_name"`
	Program         string    `json:"StudentProgram" db:"student_program"`
	CurrentStanding string    `json:"CurrentStanding" db:"current_standing"`
	DateSubmitted   time.Time `json:"-" db:"date_submitted"`
	TimeSubmitted   string    `json:"-" db:"time_submitted"`
}

// QueueEntry is what the adviser's queue renders for one student: who they
// are, their full dashboard, and the pending list under review.
type QueueEntry struct {
	StudentNumber      string                  `json:"StudentNumber"`
	StudentName        string                  `json:"StudentName"`
	CurrentStanding    string                  `json:"CurrentStanding"`
	TimeSubmitted      time.Time               `json:"TimeSubmitted"`
	Student            ledger.Dashboard        `json:"Student"`
	CoursesForAdvising []ledger.AdvisingCourse `json:"CoursesForAdvising"`
}

// ProgramData is the adviser's advising view: who they are, which program
// they advise, and the queue of students waiting on approval.
type ProgramData struct {
	AdviserID   string       `json:"AdviserID"`
	AdviserName string       `json:"AdviserName"`
	Program     string       `json:"AdvisingProgram"`
	Queue       []QueueEntry `json:"StudentsForAdvising"`
}
