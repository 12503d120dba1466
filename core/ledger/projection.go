package ledger

import (
	"sort"
	"strconv"

	"github.com/acadtrack/advising/core/checklist"
	"github.com/acadtrack/advising/core/directory"
)

// CourseMeta is the catalog/checklist context a ledger row is joined with
// when projected into a report. Rows whose course sits outside the student's
// program checklist get a partially filled meta.
type CourseMeta struct {
	Description        string
	Type               string
	Units              int
	PrescribedYear     string
	PrescribedSemester string
	OnChecklist        bool
}

// MetaFromChecklist indexes a program's checklist by course ID.
func MetaFromChecklist(items []checklist.Item) map[string]CourseMeta {
	meta := make(map[string]CourseMeta, len(items))
	for _, itm := range items {
		meta[itm.CourseID] = CourseMeta{
			Description:        itm.CourseDescription,
			Type:               itm.CourseType,
			Units:              itm.Units,
			PrescribedYear:     itm.PrescribedYear,
			PrescribedSemester: itm.PrescribedSemester,
			OnChecklist:        true,
		}
	}
	return meta
}

// EffectiveGrade renders an entry's grade for display; ungraded rows carry
// the "Not Available" sentinel.
func EffectiveGrade(e Entry) string {
	if e.Grade.Valid && e.Grade.String != "" {
		return e.Grade.String
	}
	return GradeNotAvailable
}

// GradeLabel maps a raw grade to its status label. Anything that does not
// parse as a number (including "Not Available") is an ongoing course;
// 1.0-3.0 passed, 4.0 is an incomplete, 5.0 a fail.
func GradeLabel(grade string) string {
	g, err := strconv.ParseFloat(grade, 64)
	if err != nil {
		return LabelOngoing
	}
	switch {
	case g >= 5:
		return LabelFail
	case g >= 4:
		return LabelInc
	default:
		return LabelPassed
	}
}

// BuildTaken projects ledger rows into the dashboard's courses-taken view,
// sorted by course ID. Rows off the checklist fall back to "Not Assigned".
func BuildTaken(entries []Entry, meta map[string]CourseMeta) []TakenCourse {
	taken := make([]TakenCourse, 0, len(entries))
	for _, e := range entries {
		m := meta[e.CourseID]
		tc := TakenCourse{
			CourseID:           e.CourseID,
			CourseType:         m.Type,
			Units:              m.Units,
			PrescribedYear:     m.PrescribedYear,
			PrescribedSemester: m.PrescribedSemester,
			Grade:              EffectiveGrade(e),
		}
		tc.Status = GradeLabel(tc.Grade)
		if !m.OnChecklist {
			tc.CourseType = checklist.TypeNotAssigned
			tc.PrescribedYear = "None"
			tc.PrescribedSemester = "None"
		}
		taken = append(taken, tc)
	}
	sort.Slice(taken, func(i, j int) bool { return taken[i].CourseID < taken[j].CourseID })
	return taken
}

// BoundedChecklist lists the checklist entries prescribed up to and including
// the student's current standing. Entries with no prescribed year ("None")
// are left out of the dashboard view.
func BoundedChecklist(items []checklist.Item, standing string) []ChecklistCourse {
	bound := directory.StandingRank(standing)
	out := make([]ChecklistCourse, 0, len(items))
	for _, itm := range items {
		rank := directory.StandingRank(itm.PrescribedYear)
		if rank < 1 || rank > bound {
			continue
		}
		out = append(out, ChecklistCourse{
			CourseID:           itm.CourseID,
			CourseType:         itm.CourseType,
			Units:              itm.Units,
			PrescribedYear:     itm.PrescribedYear,
			PrescribedSemester: itm.PrescribedSemester,
		})
	}
	sortChecklistCourses(out)
	return out
}

// NotYetTaken lists the checklist entries the student has no ledger row for,
// bounded by standing. Unscheduled entries ("None") are always in reach.
func NotYetTaken(items []checklist.Item, entries []Entry, standing string) []NotTakenCourse {
	onLedger := make(map[string]bool, len(entries))
	for _, e := range entries {
		onLedger[e.CourseID] = true
	}
	bound := directory.StandingRank(standing)

	out := make([]NotTakenCourse, 0, len(items))
	for _, itm := range items {
		if onLedger[itm.CourseID] {
			continue
		}
		if directory.StandingRank(itm.PrescribedYear) > bound {
			continue
		}
		out = append(out, NotTakenCourse{
			Program:           itm.Program,
			CourseID:          itm.CourseID,
			CourseDescription: itm.CourseDescription,
			CourseType:        itm.CourseType,
			Units:             itm.Units,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out
}

// ForAdvisingList projects the pending submissions with a running unit total,
// ordered by course ID so the running total is stable.
func ForAdvisingList(entries []Entry, meta map[string]CourseMeta) []AdvisingCourse {
	pending := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Status == StatusForAdvising {
			pending = append(pending, e)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CourseID < pending[j].CourseID })

	out := make([]AdvisingCourse, 0, len(pending))
	running := 0
	for _, e := range pending {
		m := meta[e.CourseID]
		courseType := m.Type
		if !m.OnChecklist {
			courseType = checklist.TypeNotAssigned
		}
		running += m.Units
		out = append(out, AdvisingCourse{
			CourseID:          e.CourseID,
			CourseDescription: m.Description,
			CourseType:        courseType,
			Units:             m.Units,
			RunningUnits:      running,
		})
	}
	return out
}

// GroupBySchedule arranges taken courses into the year/semester grid the
// dashboard renders, each semester with its unit subtotal. Courses without a
// prescribed year sort last.
func GroupBySchedule(taken []TakenCourse) []YearGroup {
	type key struct{ year, sem string }
	groups := map[key][]TakenCourse{}
	for _, tc := range taken {
		k := key{tc.PrescribedYear, tc.PrescribedSemester}
		groups[k] = append(groups[k], tc)
	}

	byYear := map[string]map[string][]TakenCourse{}
	for k, courses := range groups {
		if byYear[k.year] == nil {
			byYear[k.year] = map[string][]TakenCourse{}
		}
		byYear[k.year][k.sem] = courses
	}

	years := make([]string, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return yearOrder(years[i]) < yearOrder(years[j]) })

	out := make([]YearGroup, 0, len(years))
	for _, y := range years {
		sems := make([]string, 0, len(byYear[y]))
		for s := range byYear[y] {
			sems = append(sems, s)
		}
		sort.Slice(sems, func(i, j int) bool { return semesterOrder(sems[i]) < semesterOrder(sems[j]) })

		yg := YearGroup{Year: y, Semesters: make([]SemesterGroup, 0, len(sems))}
		for _, s := range sems {
			courses := byYear[y][s]
			sort.Slice(courses, func(i, j int) bool { return courses[i].CourseID < courses[j].CourseID })
			total := 0
			for _, tc := range courses {
				total += tc.Units
			}
			yg.Semesters = append(yg.Semesters, SemesterGroup{Semester: s, TotalUnits: total, Courses: courses})
		}
		out = append(out, yg)
	}
	return out
}

// TotalUnitsPassed sums the units of courses carrying a passing grade.
func TotalUnitsPassed(taken []TakenCourse) int {
	total := 0
	for _, tc := range taken {
		if tc.Status == LabelPassed {
			total += tc.Units
		}
	}
	return total
}

func yearOrder(year string) int {
	if rank := directory.StandingRank(year); rank > 0 {
		return rank
	}
	return 1<<31 - 1
}

var semesterRank = map[string]int{"1": 1, "2": 2, "Midyear": 3, "None": 4}

func semesterOrder(sem string) int {
	if rank, ok := semesterRank[sem]; ok {
		return rank
	}
	return 5
}

func sortChecklistCourses(cs []ChecklistCourse) {
	sort.Slice(cs, func(i, j int) bool {
		yi, yj := yearOrder(cs[i].PrescribedYear), yearOrder(cs[j].PrescribedYear)
		if yi != yj {
			return yi < yj
		}
		si, sj := semesterOrder(cs[i].PrescribedSemester), semesterOrder(cs[j].PrescribedSemester)
		if si != sj {
			return si < sj
		}
		return cs[i].CourseID < cs[j].CourseID
	})
}
