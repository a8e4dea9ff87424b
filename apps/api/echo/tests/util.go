package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/auth"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/core/week"
	"github.com/trezcool/darasa/services/email"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database/inmem"
	"github.com/trezcool/darasa/storage/session"
)

type testEnv struct {
	conf    *core.Config
	authSvc *auth.Service
	usrSvc  *user.Service
	asgSvc  *assignment.Service
	wkSvc   *week.Service
}

func setup(t *testing.T) (Server, *testEnv) {
	t.Helper()

	conf, err := core.NewConfig()
	if err != nil {
		t.Fatalf("core.NewConfig() failed: %v", err)
	}
	conf.Debug = false
	conf.TestMode = true

	validate, translator := core.NewValidator()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewService(conf, inmemdb.NewUserRepository(db), mailSvc)
	authSvc := auth.NewService(conf, sessionstore.NewMemoryStore(), usrSvc)
	asgSvc := assignment.NewService(inmemdb.NewAssignmentRepository(db))
	wkSvc := week.NewService(inmemdb.NewWeekRepository(db))

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)

	// set up server
	srv := NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		AuthSvc:        authSvc,
		UserSvc:        usrSvc,
		AssignmentSvc:  asgSvc,
		WeekSvc:        wkSvc,
	})
	return srv, &testEnv{conf: conf, authSvc: authSvc, usrSvc: usrSvc, asgSvc: asgSvc, wkSvc: wkSvc}
}

// envelope mirrors the wire format for building expected payloads.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func okResp(data interface{}, msg string) envelope { return envelope{Success: true, Data: data, Message: msg} }
func errResp(e interface{}) envelope               { return envelope{Success: false, Error: e} }

var (
	errPermissionDenied = errResp("permission denied")
	errBadCredentials   = errResp("invalid email or password")
	errMethodNotAllowed = errResp(http.StatusText(http.StatusMethodNotAllowed))
)

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func createStudent(t *testing.T, env *testEnv, studentID, name, email, pwd string) user.User {
	t.Helper()
	usr, err := env.usrSvc.CreateStudent(context.Background(), user.NewStudent{
		StudentID: studentID, Name: name, Email: email, Password: pwd,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return usr
}

func createAdmin(t *testing.T, env *testEnv, name, email, pwd string) user.User {
	t.Helper()
	usr, err := env.usrSvc.CreateAdmin(context.Background(), name, email, pwd)
	if err != nil {
		t.Fatalf("CreateAdmin() failed: %v", err)
	}
	return usr
}

func login(t *testing.T, env *testEnv, email, pwd string) string {
	t.Helper()
	sess, err := env.authSvc.Login(context.Background(), email, pwd)
	if err != nil {
		t.Fatalf("login failed for %s: %v", email, err)
	}
	return sess.Token
}

// studentJSON is the directory view of a user as rendered on the wire.
func studentJSON(usr user.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         usr.ID,
		"student_id": usr.StudentID(),
		"name":       usr.Name,
		"email":      usr.Email,
		"created_at": usr.CreatedAt,
	}
}

// weekJSON renders a week with its external identifier.
func weekJSON(w week.Week) map[string]interface{} {
	return map[string]interface{}{
		"week_id":     w.WeekID(),
		"week_number": w.WeekNumber,
		"title":       w.Title,
		"start_date":  w.StartDate,
		"description": w.Description,
		"links":       w.Links,
		"created_at":  w.CreatedAt,
		"updated_at":  w.UpdatedAt,
	}
}

func weekCommentJSON(c week.Comment) map[string]interface{} {
	return map[string]interface{}{
		"week_id":    week.FormatWeekID(c.WeekNumber),
		"id":         c.ID,
		"author":     c.Author,
		"text":       c.Text,
		"created_at": c.CreatedAt,
	}
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
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
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// parseEnvelope decodes a response body for bespoke assertions.
func parseEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope failed: %v; body: %s", err, rec.Body.String())
	}
	return env
}
