package tests

import (
	"net/http"
	"testing"

	"github.com/acadtrack/advising/core/advising"
)

func Test_advisingApi_programData(t *testing.T) {
	env := setup(t)
	_, studentNumber := seedProgram(t, env)

	// a student from another adviser's program must not show up in the queue
	createAdviser(t, env, "A200", "Eli", "Frayn", "BS Mathematics")
	createStudent(t, env, "2021-0003", "Gia", "Han", "BS Mathematics", "A200", "Year 1")

	submitCourses(t, env, studentNumber, "CS101")

	t.Run("unknown adviser", func(t *testing.T) {
		request, rec := newRequest(http.MethodGet, "/adviser/A999")
		env.app.ServeHTTP(rec, request)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		}, rec)
	})

	t.Run("queue lists pending students", func(t *testing.T) {
		request, rec := newRequest(http.MethodGet, "/adviser/A100")
		env.app.ServeHTTP(rec, request)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var data advising.ProgramData
		decodeBody(t, rec, &data)
		if data.AdviserID != "A100" || data.AdviserName != "Ada Reyes" || data.Program != "BS Computer Science" {
			t.Errorf("adviser attributes = %+v", data)
		}
		if len(data.Queue) != 1 {
			t.Fatalf("Queue = %+v, want 1 entry", data.Queue)
		}
		entry := data.Queue[0]
		if entry.StudentNumber != studentNumber || entry.StudentName != "Bea Cruz" || entry.CurrentStanding != "Year 2" {
			t.Errorf("queue entry = %+v", entry)
		}
		if entry.TimeSubmitted.IsZero() {
			t.Error("TimeSubmitted is zero")
		}

		// the entry carries everything the adviser reviews: the student's
		// dashboard and the pending list itself
		if entry.Student.StudentName != "Bea Cruz" || entry.Student.AdviserName != "Ada Reyes" {
			t.Errorf("dashboard names = %q / %q", entry.Student.StudentName, entry.Student.AdviserName)
		}
		if len(entry.Student.CoursesTaken) != 1 || entry.Student.CoursesTaken[0].CourseID != "CS101" {
			t.Errorf("dashboard CoursesTaken = %+v, want [CS101]", entry.Student.CoursesTaken)
		}
		if len(entry.CoursesForAdvising) != 1 {
			t.Fatalf("CoursesForAdvising = %+v, want 1 entry", entry.CoursesForAdvising)
		}
		pending := entry.CoursesForAdvising[0]
		if pending.CourseID != "CS101" || pending.RunningUnits != 3 {
			t.Errorf("pending course = %+v, want CS101 with 3 running units", pending)
		}
	})

	t.Run("empty queue", func(t *testing.T) {
		request, rec := newRequest(http.MethodGet, "/adviser/A200")
		env.app.ServeHTTP(rec, request)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusOK)
		}
		var data advising.ProgramData
		decodeBody(t, rec, &data)
		if len(data.Queue) != 0 {
			t.Errorf("Queue = %+v, want empty", data.Queue)
		}
	})
}

func Test_advisingApi_approve(t *testing.T) {
	env := setup(t)
	_, studentNumber := seedProgram(t, env)

	submitCourses(t, env, studentNumber, "CS101", "CS201")

	approve := func(t *testing.T, number string) (code int, approved int64) {
		t.Helper()
		body := marchallObj(t, map[string]string{"studentNumber": number})
		request, rec := newRequest(http.MethodPost, "/approveStudentCourseList", body)
		env.app.ServeHTTP(rec, request)
		var resp struct {
			Success         string `json:"success"`
			CoursesApproved int64  `json:"coursesApproved"`
		}
		if rec.Code == http.StatusOK {
			decodeBody(t, rec, &resp)
		}
		return rec.Code, resp.CoursesApproved
	}

	t.Run("missing student number", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"studentNumber": ""})
		request, rec := newRequest(http.MethodPost, "/approveStudentCourseList", body)
		env.app.ServeHTTP(rec, request)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"studentNumber": "this field is required"}),
		}, rec)
	})

	t.Run("unknown student", func(t *testing.T) {
		code, _ := approve(t, "9999-9999")
		if code != http.StatusNotFound {
			t.Errorf("code = %v, want %v", code, http.StatusNotFound)
		}
	})

	t.Run("approves all pending courses", func(t *testing.T) {
		code, n := approve(t, studentNumber)
		if code != http.StatusOK {
			t.Fatalf("code = %v, want %v", code, http.StatusOK)
		}
		if n != 2 {
			t.Errorf("coursesApproved = %d, want 2", n)
		}
	})

	t.Run("repeat approval is a no-op", func(t *testing.T) {
		code, n := approve(t, studentNumber)
		if code != http.StatusOK {
			t.Fatalf("code = %v, want %v", code, http.StatusOK)
		}
		if n != 0 {
			t.Errorf("coursesApproved = %d, want 0", n)
		}
	})

	t.Run("taken courses cannot be withdrawn", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{
			"studentNumber": studentNumber, "coursesToDelete": []string{"CS101"},
		})
		request, rec := newRequest(http.MethodPost, "/updateCourseList", body)
		env.app.ServeHTTP(rec, request)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "this course is already taken and cannot be changed"}),
		}, rec)
	})

	t.Run("approved student leaves the queue", func(t *testing.T) {
		request, rec := newRequest(http.MethodGet, "/adviser/A100")
		env.app.ServeHTTP(rec, request)
		var data advising.ProgramData
		decodeBody(t, rec, &data)
		if len(data.Queue) != 0 {
			t.Errorf("Queue = %+v, want empty after approval", data.Queue)
		}
	})
}
