package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/acadtrack/advising/core/ledger"
)

// seedProgram sets up the program used across the ledger tests: two majors
// prescribed in years 1 and 2, a GE course with no prescribed year, an
// adviser and one Year 2 student.
func seedProgram(t *testing.T, env *testEnv) (program, studentNumber string) {
	t.Helper()
	program = "BS Computer Science"

	createCourse(t, env, "CS101", 3)
	createCourse(t, env, "CS201", 3, "CS101")
	createCourse(t, env, "GE1", 3)
	createCourse(t, env, "CS301", 3)
	createChecklistItem(t, env, program, "CS101", "Major", "Year 1", "1")
	createChecklistItem(t, env, program, "CS201", "Major", "Year 2", "1")
	createChecklistItem(t, env, program, "GE1", "GE Requirement", "None", "None")
	createChecklistItem(t, env, program, "CS301", "Major", "Year 3", "1")

	createAdviser(t, env, "A100", "Ada", "Reyes", program)
	createStudent(t, env, "2021-0001", "Bea", "Cruz", program, "A100", "Year 2")
	return program, "2021-0001"
}

func Test_ledgerApi_updateCourseList(t *testing.T) {
	env := setup(t)
	_, studentNumber := seedProgram(t, env)

	key := uuid.New().String()

	tests := []httpTest{
		{
			name: "unknown student", body: marchallObj(t, map[string]interface{}{
				"studentNumber": "9999-9999", "coursesToAdd": []string{"CS101"},
			}),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "nothing to apply", body: marchallObj(t, map[string]interface{}{
				"studentNumber": studentNumber,
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "nothing to update"}),
		},
		{
			name: "unknown course", body: marchallObj(t, map[string]interface{}{
				"studentNumber": studentNumber, "coursesToAdd": []string{"CS999"},
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"coursesToAdd": "course CS999 does not exist"}),
		},
		{
			name: "bad idempotency key", body: marchallObj(t, map[string]interface{}{
				"studentNumber": studentNumber, "idempotencyKey": "lol", "coursesToAdd": []string{"CS101"},
			}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "ok", body: marchallObj(t, map[string]interface{}{
				"studentNumber": studentNumber, "idempotencyKey": key,
				"coursesToAdd": []string{"CS101", "CS201"},
			}),
			wantCode: http.StatusOK, extra: true, /* applied */
		},
		{
			name: "replay is a no-op", body: marchallObj(t, map[string]interface{}{
				"studentNumber": studentNumber, "idempotencyKey": key,
				"coursesToAdd": []string{"CS101", "CS201"},
			}),
			wantCode: http.StatusOK, extra: false, /* applied */
		},
		{
			name: "already submitted", body: marchallObj(t, map[string]interface{}{
				"studentNumber": studentNumber, "coursesToAdd": []string{"CS101"},
			}),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "this course is already submitted for advising"}),
		},
		{
			name: "withdraw", body: marchallObj(t, map[string]interface{}{
				"studentNumber": studentNumber, "coursesToDelete": []string{"CS201"},
			}),
			wantCode: http.StatusOK, extra: true, /* applied */
		},
		{
			name: "withdraw missing entry", body: marchallObj(t, map[string]interface{}{
				"studentNumber": studentNumber, "coursesToDelete": []string{"CS201"},
			}),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/updateCourseList", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if applied, ok := tt.extra.(bool); ok {
				var resp struct {
					Applied bool `json:"applied"`
				}
				decodeBody(t, rec, &resp)
				if resp.Applied != applied {
					t.Errorf("applied = %v, want %v", resp.Applied, applied)
				}
			}
		})
	}

	// only CS101 is left pending
	entries, err := env.ledgerSvc.Query(context.Background(), studentNumber, "")
	if err != nil {
		t.Fatalf("Query(): %v", err)
	}
	if len(entries) != 1 || entries[0].CourseID != "CS101" || entries[0].Status != ledger.StatusForAdvising {
		t.Errorf("entries = %+v, want one pending CS101", entries)
	}
}

// A batch with a failing delete must not apply its adds.
func Test_ledgerApi_updateCourseList_atomic(t *testing.T) {
	env := setup(t)
	_, studentNumber := seedProgram(t, env)

	body := marchallObj(t, map[string]interface{}{
		"studentNumber":   studentNumber,
		"coursesToAdd":    []string{"CS101"},
		"coursesToDelete": []string{"CS201"}, // never submitted
	})
	request, rec := newRequest(http.MethodPost, "/updateCourseList", body)
	env.app.ServeHTTP(rec, request)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %v, want %v", rec.Code, http.StatusNotFound)
	}

	entries, err := env.ledgerSvc.Query(context.Background(), studentNumber, "")
	if err != nil {
		t.Fatalf("Query(): %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want none (batch must roll back)", entries)
	}
}

func Test_ledgerApi_coursesForStudent(t *testing.T) {
	env := setup(t)
	_, studentNumber := seedProgram(t, env)

	submitCourses(t, env, studentNumber, "CS101", "CS201")

	request, rec := newRequest(http.MethodGet, "/getCoursesForStudent/"+studentNumber)
	env.app.ServeHTTP(rec, request)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var sel ledger.CourseSelection
	decodeBody(t, rec, &sel)

	// GE1 has no prescribed year so it is always in reach; CS301 is Year 3,
	// beyond a Year 2 student
	if len(sel.CourseNotYetTaken) != 1 || sel.CourseNotYetTaken[0].CourseID != "GE1" {
		t.Errorf("CourseNotYetTaken = %+v, want [GE1]", sel.CourseNotYetTaken)
	}

	if len(sel.CoursesForAdvising) != 2 {
		t.Fatalf("CoursesForAdvising = %+v, want 2 entries", sel.CoursesForAdvising)
	}
	if sel.CoursesForAdvising[0].RunningUnits != 3 || sel.CoursesForAdvising[1].RunningUnits != 6 {
		t.Errorf("running units = %d, %d; want 3, 6",
			sel.CoursesForAdvising[0].RunningUnits, sel.CoursesForAdvising[1].RunningUnits)
	}
}

func Test_ledgerApi_dashboard(t *testing.T) {
	env := setup(t)
	_, studentNumber := seedProgram(t, env)

	submitCourses(t, env, studentNumber, "CS101")

	request, rec := newRequest(http.MethodGet, "/dashboard/"+studentNumber)
	env.app.ServeHTTP(rec, request)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var dash ledger.Dashboard
	decodeBody(t, rec, &dash)

	if dash.StudentName != "Bea Cruz" || dash.AdviserName != "Ada Reyes" {
		t.Errorf("names = %q / %q, want Bea Cruz / Ada Reyes", dash.StudentName, dash.AdviserName)
	}
	if len(dash.CoursesTaken) != 1 {
		t.Fatalf("CoursesTaken = %+v, want 1 entry", dash.CoursesTaken)
	}
	tc := dash.CoursesTaken[0]
	if tc.Grade != ledger.GradeNotAvailable || tc.Status != ledger.LabelOngoing {
		t.Errorf("grade/status = %q/%q, want %q/%q", tc.Grade, tc.Status, ledger.GradeNotAvailable, ledger.LabelOngoing)
	}

	// checklist bounded by standing: CS101 (Year 1) and CS201 (Year 2) are
	// in; CS301 (Year 3) and GE1 (None) are out
	if len(dash.CourseChecklist) != 2 {
		t.Errorf("CourseChecklist = %+v, want 2 entries", dash.CourseChecklist)
	}

	t.Run("unknown student", func(t *testing.T) {
		request, rec := newRequest(http.MethodGet, "/dashboard/9999-9999")
		env.app.ServeHTTP(rec, request)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		}, rec)
	})

	t.Run("no ledger rows still renders", func(t *testing.T) {
		createStudent(t, env, "2021-0002", "Cid", "Diaz", "BS Computer Science", "", "Year 1")
		request, rec := newRequest(http.MethodGet, "/dashboard/2021-0002")
		env.app.ServeHTTP(rec, request)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusOK)
		}
		var empty ledger.Dashboard
		decodeBody(t, rec, &empty)
		if empty.CoursesTaken == nil || len(empty.CoursesTaken) != 0 {
			t.Errorf("CoursesTaken = %+v, want empty list", empty.CoursesTaken)
		}
	})
}
