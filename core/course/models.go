package course

import (
	"github.com/acadtrack/advising/core"
)

// Course component types
const (
	ComponentLab     = "Lab"
	ComponentLecture = "Lecture"
)

// Grading bases
const (
	GradingLetter    = "Letter"
	GradingNumerical = "Numerical"
)

type Course struct {
	ID           string `json:"CourseId" db:"course_id"`
	Description  string `json:"CourseDescription" db:"course_description"`
	Units        int    `json:"Units" db:"units"`
	Components   string `json:"CourseComponents" db:"course_components"`
	College      string `json:"College" db:"college"`
	Department   string `json:"Department" db:"department"`
	GradingBasis string `json:"GradingBasis" db:"grading_basis"`

	// CourseType is attached from the program checklist when a course is
	// fetched for a specific program.
	CourseType string `json:"CourseType,omitempty" db:"course_type"`

	Prerequisites []Course `json:"Prerequisites" db:"-"`
	Corequisites  []Course `json:"Corequisites" db:"-"`
}

// ChecklistPlacement positions a course on a program checklist; it rides
// along with NewCourse on the combined "add course" operation.
type ChecklistPlacement struct {
	Program            string `json:"StudentProgram" validate:"required"`
	CourseType         string `json:"CourseType" validate:"required,oneof=Major Foundation Elective 'GE Requirement' Other"`
	PrescribedYear     string `json:"PrescribedYear" validate:"required"`
	PrescribedSemester string `json:"PrescribedSemester" validate:"required,term"`
}

func (cp *ChecklistPlacement) Validate() error {
	cp.Program = core.CleanString(cp.Program)
	cp.CourseType = core.CleanString(cp.CourseType)
	cp.PrescribedYear = core.CleanString(cp.PrescribedYear)
	cp.PrescribedSemester = core.CleanString(cp.PrescribedSemester)

	if err := core.Validate.Struct(cp); err != nil {
		return err
	}
	if cp.PrescribedYear != "None" && !core.IsValidStanding(cp.PrescribedYear) {
		return core.NewValidationError(nil, core.FieldError{
			Field: "PrescribedYear",
			Error: "must be a year level of the form \"Year N\" or \"None\"",
		})
	}
	return nil
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	ID            string   `json:"CourseID" validate:"required"`
	Description   string   `json:"CourseDescription" validate:"required"`
	Units         int      `json:"Units" validate:"required,gt=0"`
	Components    string   `json:"CourseComponents" validate:"required,oneof=Lab Lecture"`
	College       string   `json:"College"`
	Department    string   `json:"Department"`
	GradingBasis  string   `json:"GradingBasis" validate:"required,oneof=Letter Numerical"`
	Prerequisites []string `json:"Prerequisites" validate:"omitempty,dive,required"`
	Corequisites  []string `json:"Corequisites" validate:"omitempty,dive,required"`
}

func (nc *NewCourse) Validate() error {
	nc.ID = core.CleanString(nc.ID)
	nc.Description = core.CleanString(nc.Description)
	nc.College = core.CleanString(nc.College)
	nc.Department = core.CleanString(nc.Department)
	for i, id := range nc.Prerequisites {
		nc.Prerequisites[i] = core.CleanString(id)
	}
	for i, id := range nc.Corequisites {
		nc.Corequisites[i] = core.CleanString(id)
	}

	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	return checkSelfReference(nc.ID, nc.Prerequisites, nc.Corequisites)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// The requisite edge sets are replaced entirely.
type UpdateCourse struct {
	NewID         string   `json:"CourseID" validate:"omitempty"`
	Description   string   `json:"CourseDescription"`
	Units         int      `json:"Units" validate:"omitempty,gt=0"`
	CourseType    string   `json:"CourseType" validate:"omitempty,oneof=Major Foundation Elective 'GE Requirement' Other"`
	Prerequisites []string `json:"Prerequisites" validate:"omitempty,dive,required"`
	Corequisites  []string `json:"Corequisites" validate:"omitempty,dive,required"`
}

func (uc *UpdateCourse) Validate(currentID string, orig Course) error {
	uc.NewID = core.CleanString(uc.NewID)
	if uc.NewID == "" {
		uc.NewID = currentID
	}
	uc.Description = core.CleanString(uc.Description)
	if uc.Description == "" {
		uc.Description = orig.Description
	}
	if uc.Units == 0 {
		uc.Units = orig.Units
	}
	for i, id := range uc.Prerequisites {
		uc.Prerequisites[i] = core.CleanString(id)
	}
	for i, id := range uc.Corequisites {
		uc.Corequisites[i] = core.CleanString(id)
	}

	if err := core.Validate.Struct(uc); err != nil {
		return err
	}
	return checkSelfReference(uc.NewID, uc.Prerequisites, uc.Corequisites)
}

func checkSelfReference(id string, prereqs, coreqs []string) error {
	for _, p := range prereqs {
		if p == id {
			return core.NewValidationError(nil, core.FieldError{
				Field: "Prerequisites",
				Error: "a course cannot be its own prerequisite",
			})
		}
	}
	for _, c := range coreqs {
		if c == id {
			return core.NewValidationError(nil, core.FieldError{
				Field: "Corequisites",
				Error: "a course cannot be its own corequisite",
			})
		}
	}
	return nil
}
