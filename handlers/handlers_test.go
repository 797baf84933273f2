package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kajalsharma987/my-leave-app/database"
	"github.com/kajalsharma987/my-leave-app/models"
	"github.com/kajalsharma987/my-leave-app/routes"
	"github.com/kajalsharma987/my-leave-app/services"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	routes.Register(e, services.New(database.NewMemoryStore()), testSecret)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			// List endpoints return a JSON array; callers decode those
			// themselves.
			decoded = nil
		}
	}
	return rec, decoded
}

func registerUser(t *testing.T, e *echo.Echo, username, role string) {
	t.Helper()
	rec, _ := doJSON(t, e, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"password": "pw",
		"role":     role,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}
}

func login(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec, body := doJSON(t, e, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": "pw",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login %s: no token in %v", username, body)
	}
	return token
}

func decodeLeaves(t *testing.T, rec *httptest.ResponseRecorder) []models.LeaveRequest {
	t.Helper()
	var leaves []models.LeaveRequest
	if err := json.Unmarshal(rec.Body.Bytes(), &leaves); err != nil {
		t.Fatalf("decode leaves from %s: %v", rec.Body.String(), err)
	}
	return leaves
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)
	rec, body := doJSON(t, e, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: %d %v", rec.Code, body)
	}
}

func TestRegisterResponses(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice", "password": "pw", "role": "student",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d", rec.Code)
	}
	if body["title"] != "Success" {
		t.Errorf("title = %v", body["title"])
	}
	if msg, _ := body["message"].(string); !strings.Contains(msg, "registered as a student") {
		t.Errorf("message = %v", body["message"])
	}

	// Case-insensitive duplicate.
	rec, body = doJSON(t, e, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "ALICE", "password": "pw", "role": "teacher",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status %d", rec.Code)
	}
	if body["title"] != "Registration Error" {
		t.Errorf("error body = %v", body)
	}
	if msg, _ := body["message"].(string); !strings.Contains(msg, "already exists") {
		t.Errorf("error message = %v", body["message"])
	}

	// Missing fields.
	rec, _ = doJSON(t, e, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "bob",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: status %d", rec.Code)
	}
}

func TestLoginResponses(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "alice", "student")

	rec, _ := doJSON(t, e, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status %d", rec.Code)
	}

	rec, body := doJSON(t, e, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "ALICE", "password": "pw",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d", rec.Code)
	}
	if msg, _ := body["message"].(string); !strings.Contains(msg, "Logged in as alice (student).") {
		t.Errorf("message = %v", body["message"])
	}
	if body["token"] == "" {
		t.Error("no token issued")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestServer(t)
	for _, path := range []string{"/teachers", "/leaves/mine", "/teacher/leave-requests", "/admin/leave-requests"} {
		rec, _ := doJSON(t, e, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status %d, want 401", path, rec.Code)
		}
	}
}

func TestRoleGates(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "alice", "student")
	registerUser(t, e, "root", "admin")
	alice := login(t, e, "alice")
	root := login(t, e, "root")

	// Students cannot reach approval queues.
	rec, _ := doJSON(t, e, http.MethodGet, "/teacher/leave-requests", alice, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("student on teacher queue: status %d", rec.Code)
	}
	rec, _ = doJSON(t, e, http.MethodGet, "/admin/leave-requests", alice, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("student on admin queue: status %d", rec.Code)
	}

	// Admins do not submit leaves.
	rec, _ = doJSON(t, e, http.MethodPost, "/leaves", root, map[string]string{
		"reason": "sick", "startDate": "2024-01-01", "endDate": "2024-01-02",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("admin submitting leave: status %d", rec.Code)
	}
}

func TestDayCountEndpoint(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "alice", "student")
	alice := login(t, e, "alice")

	rec, body := doJSON(t, e, http.MethodGet, "/leaves/day-count?start=2024-01-01&end=2024-01-03", alice, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if days, _ := body["numberOfDays"].(float64); days != 3 {
		t.Errorf("numberOfDays = %v, want 3", body["numberOfDays"])
	}

	rec, body = doJSON(t, e, http.MethodGet, "/leaves/day-count?start=2024-01-03&end=2024-01-01", alice, nil)
	if days, _ := body["numberOfDays"].(float64); rec.Code != http.StatusOK || days != 0 {
		t.Errorf("reversed range: %d %v", rec.Code, body)
	}
}

func TestTeachersEndpoint(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "alice", "student")
	registerUser(t, e, "bob", "teacher")
	alice := login(t, e, "alice")

	rec, body := doJSON(t, e, http.MethodGet, "/teachers", alice, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	teachers, _ := body["teachers"].([]any)
	if len(teachers) != 1 || teachers[0] != "bob" {
		t.Fatalf("teachers = %v", body["teachers"])
	}
}

func TestSubmitValidationOverHTTP(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "alice", "student")
	registerUser(t, e, "bob", "teacher")
	alice := login(t, e, "alice")

	rec, body := doJSON(t, e, http.MethodPost, "/leaves", alice, map[string]string{
		"reason":             "other",
		"otherReason":        "   ",
		"startDate":          "2024-01-01",
		"endDate":            "2024-01-02",
		"requestedToTeacher": "bob",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	if body["title"] != "Leave Request Error" {
		t.Errorf("error notice = %v", body)
	}
	if text, _ := body["message"].(string); !strings.Contains(text, "Other Reason") {
		t.Errorf("error message = %v", body["message"])
	}
}

func TestLeaveApprovalFlow(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "alice", "student")
	registerUser(t, e, "bob", "teacher")
	registerUser(t, e, "root", "admin")
	alice := login(t, e, "alice")
	bob := login(t, e, "bob")
	root := login(t, e, "root")

	// Alice submits.
	rec, body := doJSON(t, e, http.MethodPost, "/leaves", alice, map[string]string{
		"reason":             "sick",
		"startDate":          "2024-01-01",
		"endDate":            "2024-01-03",
		"requestedToTeacher": "bob",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status %d, body %s", rec.Code, rec.Body.String())
	}
	if body["message"] != "Leave request submitted successfully!" {
		t.Errorf("message = %v", body["message"])
	}
	leave, _ := body["leave"].(map[string]any)
	id, _ := leave["id"].(string)
	if id == "" {
		t.Fatalf("no leave id in %v", body)
	}
	if days, _ := leave["numberOfDays"].(float64); days != 3 {
		t.Errorf("numberOfDays = %v", leave["numberOfDays"])
	}

	// It is pending in bob's queue, invisible to the admin queue.
	rec, _ = doJSON(t, e, http.MethodGet, "/teacher/leave-requests", bob, nil)
	if queue := decodeLeaves(t, rec); len(queue) != 1 || queue[0].ID != id {
		t.Fatalf("bob's queue = %+v", queue)
	}
	rec, _ = doJSON(t, e, http.MethodGet, "/admin/leave-requests", root, nil)
	if queue := decodeLeaves(t, rec); len(queue) != 0 {
		t.Fatalf("admin queue before teacher approval = %+v", queue)
	}

	// Bob approves.
	rec, body = doJSON(t, e, http.MethodPost, "/teacher/leave-requests/"+id+"/approve", bob, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("teacher approve: status %d", rec.Code)
	}
	if body["title"] != "Status Updated" || body["message"] != "Leave request approved." {
		t.Errorf("approve notice = %v", body)
	}

	// Now the admin sees it and rejects.
	rec, _ = doJSON(t, e, http.MethodGet, "/admin/leave-requests", root, nil)
	if queue := decodeLeaves(t, rec); len(queue) != 1 || queue[0].Status != models.StatusApprovedByTeacher {
		t.Fatalf("admin queue = %+v", queue)
	}
	rec, body = doJSON(t, e, http.MethodPost, "/admin/leave-requests/"+id+"/reject", root, nil)
	if rec.Code != http.StatusOK || body["message"] != "Leave request rejected." {
		t.Fatalf("admin reject: %d %v", rec.Code, body)
	}

	// Alice sees the final state in her own queue.
	rec, _ = doJSON(t, e, http.MethodGet, "/leaves/mine", alice, nil)
	mine := decodeLeaves(t, rec)
	if len(mine) != 1 {
		t.Fatalf("alice's leaves = %+v", mine)
	}
	got := mine[0]
	if got.Status != models.StatusRejectedByAdmin || got.AdminApproved {
		t.Errorf("final record = %+v", got)
	}
	if !got.TeacherApproved {
		t.Error("teacher approval lost on admin reject")
	}
}

func TestTransitionUnknownLeaveOverHTTP(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "bob", "teacher")
	bob := login(t, e, "bob")

	rec, _ := doJSON(t, e, http.MethodPost, "/teacher/leave-requests/nope/approve", bob, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestLogoutEndpoint(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "alice", "student")
	alice := login(t, e, "alice")

	rec, body := doJSON(t, e, http.MethodPost, "/auth/logout", alice, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if body["title"] != "Logged Out" || body["message"] != "You have been successfully logged out." {
		t.Errorf("logout notice = %v", body)
	}
}
