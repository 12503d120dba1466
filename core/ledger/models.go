package ledger

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/acadtrack/advising/core"
)

// Course statuses. There are no others: the absence of a ledger row is the
// implicit "not taken" state.
const (
	StatusForAdvising = "For Advising"
	StatusTaken       = "Taken"
)

// GradeNotAvailable is the literal sentinel an ongoing/ungraded course
// carries. Kept verbatim for compatibility with existing records.
const GradeNotAvailable = "Not Available"

// Status labels derived from a grade
const (
	LabelOngoing = "ONGOING"
	LabelFail    = "FAIL"
	LabelInc     = "INC"
	LabelPassed  = "PASSED"
)

// Entry is one ledger row: a course a student has taken or submitted for
// advising. At most one row exists per (student, course) pair.
type Entry struct {
	StudentNumber string      `json:"StudentNumber" db:"student_number"`
	CourseID      string      `json:"CourseId" db:"course_id"`
	Status        string      `json:"CourseStatus" db:"course_status"`
	Grade         null.String `json:"Grade" db:"grade"`
	DateSubmitted time.Time   `json:"DateSubmitted" db:"date_submitted"`
	TimeSubmitted string      `json:"TimeSubmitted" db:"time_submitted"`
}

// BatchUpdate is the "save course list" operation: a set of courses to put
// up for advising and a set of pending submissions to withdraw, applied
// atomically. The idempotency key guards against replays of the same batch;
// when omitted the caller opts out of replay protection.
type BatchUpdate struct {
	StudentNumber   string   `json:"studentNumber" validate:"required"`
	IdempotencyKey  string   `json:"idempotencyKey" validate:"omitempty,uuid4"`
	CoursesToAdd    []string `json:"coursesToAdd" validate:"omitempty,dive,required"`
	CoursesToDelete []string `json:"coursesToDelete" validate:"omitempty,dive,required"`
}

func (bu *BatchUpdate) Validate() error {
	bu.StudentNumber = core.CleanString(bu.StudentNumber)
	bu.IdempotencyKey = core.CleanString(bu.IdempotencyKey)
	for i, id := range bu.CoursesToAdd {
		bu.CoursesToAdd[i] = core.CleanString(id)
	}
	for i, id := range bu.CoursesToDelete {
		bu.CoursesToDelete[i] = core.CleanString(id)
	}
	return core.Validate.Struct(bu)
}

// Projection shapes. These carry the wire names the dashboards expect.

type TakenCourse struct {
	CourseID           string `json:"CourseId"`
	CourseType         string `json:"CourseType"`
	Units              int    `json:"Units"`
	PrescribedYear     string `json:"PrescribedYear"`
	PrescribedSemester string `json:"PrescribedSemester"`
	Grade              string `json:"Grade"`
	Status             string `json:"Status"`
}

type ChecklistCourse struct {
	CourseID           string `json:"CourseId"`
	CourseType         string `json:"CourseType"`
	Units              int    `json:"Units"`
	PrescribedYear     string `json:"PrescribedYear"`
	PrescribedSemester string `json:"PrescribedSemester"`
}

type Dashboard struct {
	StudentName      string            `json:"StudentName"`
	StudentNumber    string            `json:"StudentNumber"`
	StudentProgram   string            `json:"StudentProgram"`
	AdviserName      string            `json:"AdviserName"`
	CurrentStanding  string            `json:"CurrentStanding"`
	TotalUnitsPassed int               `json:"TotalUnitsPassed"`
	CoursesTaken     []TakenCourse     `json:"CoursesTaken"`
	CourseChecklist  []ChecklistCourse `json:"CourseChecklist"`
	Schedule         []YearGroup       `json:"Schedule"`
}

type NotTakenCourse struct {
	Program           string `json:"StudentProgram"`
	CourseID          string `json:"CourseId"`
	CourseDescription string `json:"CourseDescription"`
	CourseType        string `json:"CourseType"`
	Units             int    `json:"Units"`
}

type AdvisingCourse struct {
	CourseID          string `json:"CourseId"`
	CourseDescription string `json:"CourseDescription"`
	CourseType        string `json:"CourseType"`
	Units             int    `json:"Units"`
	RunningUnits      int    `json:"RunningUnits"`
}

// CourseSelection is what the course-shopping view works from.
type CourseSelection struct {
	CourseNotYetTaken  []NotTakenCourse `json:"CourseNotYetTaken"`
	CoursesForAdvising []AdvisingCourse `json:"CoursesForAdvising"`
}

type SemesterGroup struct {
	Semester   string        `json:"Semester"`
	TotalUnits int           `json:"TotalUnits"`
	Courses    []TakenCourse `json:"Courses"`
}

type YearGroup struct {
	Year      string          `json:"Year"`
	Semesters []SemesterGroup `json:"Semesters"`
}
