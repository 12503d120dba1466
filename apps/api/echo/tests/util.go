package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/acadtrack/advising/apps/api/echo"
	"github.com/acadtrack/advising/core"
	"github.com/acadtrack/advising/core/advising"
	"github.com/acadtrack/advising/core/checklist"
	"github.com/acadtrack/advising/core/course"
	"github.com/acadtrack/advising/core/directory"
	"github.com/acadtrack/advising/core/ledger"
	emailsvc "github.com/acadtrack/advising/services/email"
	dummydb "github.com/acadtrack/advising/storage/database/dummy"
)

type testEnv struct {
	app          Server
	courseSvc    *course.Service
	checklistSvc *checklist.Service
	directorySvc *directory.Service
	ledgerSvc    *ledger.Service
	advisingSvc  *advising.Service
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "AdvisingChecklist",
	}

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	courseSvc := course.NewService(dummydb.NewCourseRepository(db))
	checklistSvc := checklist.NewService(dummydb.NewChecklistRepository(db))
	directorySvc := directory.NewService(dummydb.NewDirectoryRepository(db))
	ledgerSvc := ledger.NewService(
		dummydb.NewLedgerRepository(db),
		directorySvc, checklistSvc, courseSvc,
		mailSvc, conf.AdvisingInbox, testLogger{t},
	)
	advisingSvc := advising.NewService(dummydb.NewAdvisingRepository(db), directorySvc, ledgerSvc)

	// set up server
	app := NewServer(
		ServerDeps{
			Conf:         conf,
			Logger:       testLogger{t},
			CourseSvc:    courseSvc,
			ChecklistSvc: checklistSvc,
			DirectorySvc: directorySvc,
			LedgerSvc:    ledgerSvc,
			AdvisingSvc:  advisingSvc,
		},
	)

	return &testEnv{
		app:          app,
		courseSvc:    courseSvc,
		checklistSvc: checklistSvc,
		directorySvc: directorySvc,
		ledgerSvc:    ledgerSvc,
		advisingSvc:  advisingSvc,
	}
}

type testLogger struct {
	t *testing.T
}

func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Log(msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Log(msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Log(msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Log(msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatal(msg, args) }

// Seeding helpers

func createCourse(t *testing.T, env *testEnv, id string, units int, prereqs ...string) course.Course {
	t.Helper()
	crs, err := env.courseSvc.Create(context.Background(), course.NewCourse{
		ID:            id,
		Description:   id + " description",
		Units:         units,
		Components:    course.ComponentLecture,
		GradingBasis:  course.GradingNumerical,
		Prerequisites: prereqs,
	})
	if err != nil {
		t.Fatalf("createCourse(%s): %v", id, err)
	}
	return crs
}

func createChecklistItem(t *testing.T, env *testEnv, program, courseID, courseType, year, sem string) checklist.Item {
	t.Helper()
	itm, err := env.checklistSvc.AddItem(context.Background(), checklist.NewItem{
		Program:            program,
		CourseID:           courseID,
		CourseType:         courseType,
		PrescribedYear:     year,
		PrescribedSemester: sem,
	})
	if err != nil {
		t.Fatalf("createChecklistItem(%s, %s): %v", program, courseID, err)
	}
	return itm
}

func createAdviser(t *testing.T, env *testEnv, id, first, last, program string) directory.Adviser {
	t.Helper()
	adv, err := env.directorySvc.CreateAdviser(context.Background(), directory.NewAdviser{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Program:   program,
	})
	if err != nil {
		t.Fatalf("createAdviser(%s): %v", id, err)
	}
	return adv
}

func createStudent(t *testing.T, env *testEnv, number, first, last, program, adviserID, standing string) directory.Student {
	t.Helper()
	s, err := env.directorySvc.CreateStudent(context.Background(), directory.NewStudent{
		Number:          number,
		FirstName:       first,
		LastName:        last,
		Program:         program,
		AdviserID:       adviserID,
		CurrentStanding: standing,
	})
	if err != nil {
		t.Fatalf("createStudent(%s): %v", number, err)
	}
	return s
}

func submitCourses(t *testing.T, env *testEnv, studentNumber string, courseIDs ...string) {
	t.Helper()
	if _, err := env.ledgerSvc.SaveCourseList(context.Background(), ledger.BatchUpdate{
		StudentNumber: studentNumber,
		CoursesToAdd:  courseIDs,
	}); err != nil {
		t.Fatalf("submitCourses(%s): %v", studentNumber, err)
	}
}

func escapePath(segment string) string {
	return url.PathEscape(segment)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decodeBody(): %v; body %s", err, rec.Body.String())
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if tt.wantCode == 0 {
		tt.wantCode = http.StatusOK
	}
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
