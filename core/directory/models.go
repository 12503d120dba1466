package directory

import (
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/acadtrack/advising/core"
)

// Positions returned by identity lookup
const (
	PositionAdviser = "Adviser"
	PositionStudent = "Student"
)

type Student struct {
	Number          string      `json:"StudentNumber" db:"student_number"`
	FirstName       string      `json:"S_FirstName" db:"s_first_name"`
	MiddleName      null.String `json:"S_MiddleName" db:"s_middle_name"`
	LastName        string      `json:"S_LastName" db:"s_last_name"`
	Program         string      `json:"StudentProgram" db:"student_program"`
	AdviserID       null.String `json:"AdviserID" db:"adviser_id"`
	CurrentStanding string      `json:"CurrentStanding" db:"current_standing"`
	TotalUnitsTaken int         `json:"TotalUnitsTaken" db:"total_units_taken"`
}

func (s Student) FullName() string {
	if s.MiddleName.Valid && s.MiddleName.String != "" {
		return s.FirstName + " " + s.MiddleName.String + " " + s.LastName
	}
	return s.FirstName + " " + s.LastName
}

type Adviser struct {
	ID         string      `json:"AdviserID" db:"adviser_id"`
	FirstName  string      `json:"A_FirstName" db:"a_first_name"`
	MiddleName null.String `json:"A_MiddleName" db:"a_middle_name"`
	LastName   string      `json:"A_LastName" db:"a_last_name"`
	Program    string      `json:"AdvisingProgram" db:"advising_program"`
}

func (a Adviser) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Identity is the result of an ID lookup: who this ID belongs to. It is a
// directory lookup, NOT an authentication credential.
type Identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Program  string `json:"program"`
}

// StandingRank parses the ordinal out of a "Year N" standing; unknown
// formats rank 0 so they never satisfy a standing bound.
func StandingRank(standing string) int {
	if !strings.HasPrefix(standing, "Year ") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(standing, "Year "))
	if err != nil {
		return 0
	}
	return n
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Number          string `json:"StudentNumber" validate:"required"`
	FirstName       string `json:"S_FirstName" validate:"required"`
	MiddleName      string `json:"S_MiddleName"`
	LastName        string `json:"S_LastName" validate:"required"`
	Program         string `json:"StudentProgram" validate:"required"`
	AdviserID       string `json:"AdviserID"`
	CurrentStanding string `json:"CurrentStanding" validate:"required,standing"`
	TotalUnitsTaken int    `json:"TotalUnitsTaken" validate:"gte=0"`
}

func (ns *NewStudent) Validate() error {
	ns.Number = core.CleanString(ns.Number)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.MiddleName = core.CleanString(ns.MiddleName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Program = core.CleanString(ns.Program)
	ns.AdviserID = core.CleanString(ns.AdviserID)
	ns.CurrentStanding = core.CleanString(ns.CurrentStanding)
	return core.Validate.Struct(ns)
}

// NewAdviser contains information needed to register a new Adviser.
type NewAdviser struct {
	ID         string `json:"AdviserID" validate:"required"`
	FirstName  string `json:"A_FirstName" validate:"required"`
	MiddleName string `json:"A_MiddleName"`
	LastName   string `json:"A_LastName" validate:"required"`
	Program    string `json:"AdvisingProgram" validate:"required"`
}

func (na *NewAdviser) Validate() error {
	na.ID = core.CleanString(na.ID)
	na.FirstName = core.CleanString(na.FirstName)
	na.MiddleName = core.CleanString(na.MiddleName)
	na.LastName = core.CleanString(na.LastName)
	na.Program = core.CleanString(na.Program)
	return core.Validate.Struct(na)
}
