package checklist

import (
	"time"

	"github.com/acadtrack/advising/core"
)

// Course types a checklist entry may carry
const (
	TypeMajor      = "Major"
	TypeFoundation = "Foundation"
	TypeElective   = "Elective"
	TypeGE         = "GE Requirement"
	TypeOther      = "Other"

	// TypeNotAssigned is the display default when an entry has no type.
	TypeNotAssigned = "Not Assigned"
)

// Item is one program-checklist entry joined with its course attributes.
type Item struct {
	Program            string    `json:"StudentProgram" db:"student_program"`
	CourseID           string    `json:"CourseId" db:"course_id"`
	CourseType         string    `json:"CourseType" db:"course_type"`
	PrescribedYear     string    `json:"PrescribedYear" db:"prescribed_year"`
	PrescribedSemester string    `json:"PrescribedSemester" db:"prescribed_semester"`
	DateLastUpdated    time.Time `json:"DateLastUpdated" db:"date_last_updated"`
	TimeLastUpdated    string    `json:"TimeLastUpdated" db:"time_last_updated"`

	// joined from course
	CourseDescription string `json:"CourseDescription" db:"course_description"`
	Units             int    `json:"Units" db:"units"`
}

// NewItem contains information needed to place a course on a program checklist.
type NewItem struct {
	Program            string `json:"StudentProgram" validate:"required"`
	CourseID           string `json:"CourseID" validate:"required"`
	CourseType         string `json:"CourseType" validate:"required,oneof=Major Foundation Elective 'GE Requirement' Other"`
	PrescribedYear     string `json:"PrescribedYear" validate:"required"`
	PrescribedSemester string `json:"PrescribedSemester" validate:"required,term"`
}

func (ni *NewItem) Validate() error {
	ni.Program = core.CleanString(ni.Program)
	ni.CourseID = core.CleanString(ni.CourseID)
	ni.CourseType = core.CleanString(ni.CourseType)
	ni.PrescribedYear = core.CleanString(ni.PrescribedYear)
	ni.PrescribedSemester = core.CleanString(ni.PrescribedSemester)

	if err := core.Validate.Struct(ni); err != nil {
		return err
	}
	return validatePrescribedYear(ni.PrescribedYear)
}

// UpdateItem defines what may change on an existing checklist entry,
// including moving it to a different program.
type UpdateItem struct {
	NewProgram         string `json:"NewStudentProgram"`
	NewCourseID        string `json:"CourseID"`
	CourseType         string `json:"CourseType" validate:"omitempty,oneof=Major Foundation Elective 'GE Requirement' Other"`
	PrescribedYear     string `json:"PrescribedYear"`
	PrescribedSemester string `json:"PrescribedSemester" validate:"omitempty,term"`
}

func (ui *UpdateItem) Validate(orig Item) error {
	ui.NewProgram = core.CleanString(ui.NewProgram)
	if ui.NewProgram == "" {
		ui.NewProgram = orig.Program
	}
	ui.NewCourseID = core.CleanString(ui.NewCourseID)
	if ui.NewCourseID == "" {
		ui.NewCourseID = orig.CourseID
	}
	ui.CourseType = core.CleanString(ui.CourseType)
	if ui.CourseType == "" {
		ui.CourseType = orig.CourseType
	}
	ui.PrescribedYear = core.CleanString(ui.PrescribedYear)
	if ui.PrescribedYear == "" {
		ui.PrescribedYear = orig.PrescribedYear
	}
	ui.PrescribedSemester = core.CleanString(ui.PrescribedSemester)
	if ui.PrescribedSemester == "" {
		ui.PrescribedSemester = orig.PrescribedSemester
	}

	if err := core.Validate.Struct(ui); err != nil {
		return err
	}
	return validatePrescribedYear(ui.PrescribedYear)
}

func validatePrescribedYear(year string) error {
	if year != "None" && !core.IsValidStanding(year) {
		return core.NewValidationError(nil, core.FieldError{
			Field: "PrescribedYear",
			Error: "must be a year level of the form \"Year N\" or \"None\"",
		})
	}
	return nil
}
