package tests

import (
	"net/http"
	"testing"

	"github.com/acadtrack/advising/core/checklist"
)

func Test_checklistApi_create(t *testing.T) {
	env := setup(t)
	program := "BS Computer Science"

	createCourse(t, env, "CS101", 3)
	createChecklistItem(t, env, program, "CS101", "Major", "Year 1", "1")
	createCourse(t, env, "CS102", 3)

	tests := []httpTest{
		{
			name: "unknown course", body: marchallObj(t, map[string]string{
				"StudentProgram": program, "CourseID": "CS999", "CourseType": "Major",
				"PrescribedYear": "Year 1", "PrescribedSemester": "1",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "course not found"}),
		},
		{
			name: "bad semester", body: marchallObj(t, map[string]string{
				"StudentProgram": program, "CourseID": "CS102", "CourseType": "Major",
				"PrescribedYear": "Year 1", "PrescribedSemester": "3",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"PrescribedSemester": "must be one of \"1\", \"2\", \"Midyear\" or \"None\"",
			}),
		},
		{
			name: "bad year", body: marchallObj(t, map[string]string{
				"StudentProgram": program, "CourseID": "CS102", "CourseType": "Major",
				"PrescribedYear": "First", "PrescribedSemester": "1",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"PrescribedYear": "must be a year level of the form \"Year N\" or \"None\"",
			}),
		},
		{
			name: "duplicate", body: marchallObj(t, map[string]string{
				"StudentProgram": program, "CourseID": "CS101", "CourseType": "Major",
				"PrescribedYear": "Year 1", "PrescribedSemester": "1",
			}),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: checklist.ErrDuplicateEntry.Error()}),
		},
		{
			name: "ok", body: marchallObj(t, map[string]string{
				"StudentProgram": program, "CourseID": "CS102", "CourseType": "GE Requirement",
				"PrescribedYear": "None", "PrescribedSemester": "None",
			}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/checklist", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_checklistApi_query(t *testing.T) {
	env := setup(t)
	program := "BS Computer Science"
	other := "BS Mathematics"

	createCourse(t, env, "CS101", 3)
	createCourse(t, env, "MATH101", 5)
	createChecklistItem(t, env, program, "CS101", "Major", "Year 1", "1")
	createChecklistItem(t, env, other, "MATH101", "Major", "Year 1", "1")

	t.Run("by program", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/checklist/"+escapePath(program))
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusOK)
		}
		var items []checklist.Item
		decodeBody(t, rec, &items)
		if len(items) != 1 || items[0].CourseID != "CS101" {
			t.Errorf("items = %+v, want [CS101]", items)
		}
		if items[0].CourseDescription == "" || items[0].Units != 3 {
			t.Errorf("course attributes not joined: %+v", items[0])
		}
	})

	t.Run("all programs", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/checklist")
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusOK)
		}
		var items []checklist.Item
		decodeBody(t, rec, &items)
		if len(items) != 2 {
			t.Errorf("len(items) = %d, want 2", len(items))
		}
	})

	t.Run("unknown program", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/checklist/"+escapePath("BS Alchemy"))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: checklist.ErrProgramNotFound.Error()}),
		}, rec)
	})
}

func Test_checklistApi_update(t *testing.T) {
	env := setup(t)
	program := "BS Computer Science"

	createCourse(t, env, "CS101", 3)
	createCourse(t, env, "CS102", 3)
	createChecklistItem(t, env, program, "CS101", "Major", "Year 1", "1")
	createChecklistItem(t, env, program, "CS102", "Major", "Year 1", "2")

	tests := []httpTest{
		{
			name: "unknown entry", path: "/checklist/" + escapePath(program) + "/CS999",
			body:     marchallObj(t, map[string]string{"CourseType": "Elective"}),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "move onto existing entry", path: "/checklist/" + escapePath(program) + "/CS101",
			body:     marchallObj(t, map[string]string{"CourseID": "CS102"}),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: checklist.ErrDuplicateEntry.Error()}),
		},
		{
			name: "partial update keeps the rest", path: "/checklist/" + escapePath(program) + "/CS101",
			body:     marchallObj(t, map[string]string{"CourseType": "Elective"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPut, tt.path, tt.body)
			env.app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %v, want %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}

	// the untouched fields survived
	var itm checklist.Item
	req, rec := newRequest(http.MethodGet, "/checklist/"+escapePath(program))
	env.app.ServeHTTP(rec, req)
	var items []checklist.Item
	decodeBody(t, rec, &items)
	for _, i := range items {
		if i.CourseID == "CS101" {
			itm = i
		}
	}
	if itm.CourseType != "Elective" || itm.PrescribedYear != "Year 1" || itm.PrescribedSemester != "1" {
		t.Errorf("partial update clobbered fields: %+v", itm)
	}
}

func Test_checklistApi_destroy(t *testing.T) {
	env := setup(t)
	program := "BS Computer Science"

	createCourse(t, env, "CS101", 3)
	createChecklistItem(t, env, program, "CS101", "Major", "Year 1", "1")

	req, rec := newRequest(http.MethodDelete, "/checklist/"+escapePath(program)+"/CS101")
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v, want %v", rec.Code, http.StatusNoContent)
	}

	req, rec = newRequest(http.MethodDelete, "/checklist/"+escapePath(program)+"/CS101")
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %v, want %v", rec.Code, http.StatusNotFound)
	}
}
