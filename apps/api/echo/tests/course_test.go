package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/acadtrack/advising/core/course"
)

func Test_courseApi_create(t *testing.T) {
	env := setup(t)

	createCourse(t, env, "CS101", 3)

	tests := []httpTest{
		{
			name: "missing fields", body: marchallObj(t, map[string]interface{}{"CourseID": "CS102"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"CourseDescription": "this field is required",
				"Units":             "this field is required",
				"CourseComponents":  "this field is required",
				"GradingBasis":      "this field is required",
			}),
		},
		{
			name: "self prerequisite", body: marchallObj(t, map[string]interface{}{
				"CourseID": "CS102", "CourseDescription": "Programming II", "Units": 3,
				"CourseComponents": "Lecture", "GradingBasis": "Numerical",
				"Prerequisites": []string{"CS102"},
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"Prerequisites": "a course cannot be its own prerequisite"}),
		},
		{
			name: "unknown prerequisite", body: marchallObj(t, map[string]interface{}{
				"CourseID": "CS102", "CourseDescription": "Programming II", "Units": 3,
				"CourseComponents": "Lecture", "GradingBasis": "Numerical",
				"Prerequisites": []string{"CS999"},
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"Prerequisites": "prerequisite course CS999 does not exist"}),
		},
		{
			name: "ok", body: marchallObj(t, map[string]interface{}{
				"CourseID": "CS102", "CourseDescription": "Programming II", "Units": 3,
				"CourseComponents": "Lecture", "GradingBasis": "Numerical",
				"Prerequisites": []string{"CS101"},
			}),
			wantCode: http.StatusCreated,
		},
		{
			name: "duplicate ID", body: marchallObj(t, map[string]interface{}{
				"CourseID": "CS102", "CourseDescription": "Programming II", "Units": 3,
				"CourseComponents": "Lecture", "GradingBasis": "Numerical",
			}),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "a course with this ID already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/courses", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_courseApi_addCourseWithChecklist(t *testing.T) {
	env := setup(t)
	program := "BS Computer Science"

	body := marchallObj(t, map[string]interface{}{
		"CourseID": "CS101", "CourseDescription": "Programming I", "Units": 3,
		"CourseComponents": "Lecture", "GradingBasis": "Numerical",
		"StudentProgram": program, "CourseType": "Major",
		"PrescribedYear": "Year 1", "PrescribedSemester": "1",
	})
	req, rec := newRequest(http.MethodPost, "/addCourse", body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("addCourse code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	// both the course and its checklist placement must exist
	crs, err := env.courseSvc.Get(context.Background(), "CS101", program)
	if err != nil {
		t.Fatalf("Get(CS101): %v", err)
	}
	if crs.CourseType != "Major" {
		t.Errorf("CourseType = %s, want Major", crs.CourseType)
	}
	if _, err := env.checklistSvc.GetItem(context.Background(), program, "CS101"); err != nil {
		t.Errorf("GetItem(CS101): %v", err)
	}

	// bad placement must not create the course either
	body = marchallObj(t, map[string]interface{}{
		"CourseID": "CS102", "CourseDescription": "Programming II", "Units": 3,
		"CourseComponents": "Lecture", "GradingBasis": "Numerical",
		"StudentProgram": program, "CourseType": "Major",
		"PrescribedYear": "Year 1", "PrescribedSemester": "lol",
	})
	req, rec = newRequest(http.MethodPost, "/addCourse", body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("addCourse code = %v, want %v", rec.Code, http.StatusBadRequest)
	}
	if _, err := env.courseSvc.Get(context.Background(), "CS102", ""); err == nil {
		t.Error("course CS102 created despite invalid placement")
	}
}

func Test_courseApi_queryByProgram(t *testing.T) {
	env := setup(t)
	program := "BS Computer Science"

	createCourse(t, env, "CS101", 3)
	createCourse(t, env, "CS201", 3, "CS101")
	createChecklistItem(t, env, program, "CS101", "Major", "Year 1", "1")
	createChecklistItem(t, env, program, "CS201", "Major", "Year 2", "1")

	req, rec := newRequest(http.MethodGet, "/courses/"+escapePath(program))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var courses []course.Course
	decodeBody(t, rec, &courses)
	if len(courses) != 2 {
		t.Fatalf("len(courses) = %d, want 2", len(courses))
	}
	if courses[1].ID != "CS201" || len(courses[1].Prerequisites) != 1 || courses[1].Prerequisites[0].ID != "CS101" {
		t.Errorf("CS201 prerequisites not expanded: %+v", courses[1])
	}
	if courses[0].CourseType != "Major" {
		t.Errorf("CourseType = %s, want Major", courses[0].CourseType)
	}
}

func Test_courseApi_requisiteCycle(t *testing.T) {
	env := setup(t)
	program := "BS Computer Science"

	createCourse(t, env, "CS101", 3)
	createCourse(t, env, "CS201", 3, "CS101")
	createChecklistItem(t, env, program, "CS101", "Major", "Year 1", "1")
	createChecklistItem(t, env, program, "CS201", "Major", "Year 2", "1")

	// make CS101 require CS201: the edges now form a cycle and expanding
	// either course must fail instead of recursing forever
	body := marchallObj(t, map[string]interface{}{"Prerequisites": []string{"CS201"}})
	req, rec := newRequest(http.MethodPut, "/courses/CS101", body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusUnprocessableEntity, rec.Body.String())
	}

	req, rec = newRequest(http.MethodGet, "/courses/"+escapePath(program))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("code = %v, want %v", rec.Code, http.StatusUnprocessableEntity)
	}
}

func Test_courseApi_destroy(t *testing.T) {
	env := setup(t)

	createCourse(t, env, "CS101", 3)

	tests := []httpTest{
		{name: "unknown", path: "/courses/CS999", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
		{name: "ok", path: "/courses/CS101", wantCode: http.StatusNoContent},
		{name: "gone", path: "/courses/CS101", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodDelete, tt.path)
			env.app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %v, want %v", rec.Code, tt.wantCode)
			}
		})
	}
}
