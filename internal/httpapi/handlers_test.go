package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/placement-cell/placement_service/internal/config"
	"github.com/placement-cell/placement_service/internal/domain/rbac"
	"github.com/placement-cell/placement_service/internal/storage/memory"
)

func newTestServer(t *testing.T, mutate ...func(*config.Config)) (*gin.Engine, *memory.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"*"}
	for _, m := range mutate {
		m(cfg)
	}

	store := memory.New()
	api := New(cfg, zerolog.Nop(), store, nil)
	return api.Router(), store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func studentBody(n int) map[string]any {
	return map[string]any{
		"first_name":  fmt.Sprintf("Student%d", n),
		"email":       fmt.Sprintf("student%d@college.edu", n),
		"roll_number": fmt.Sprintf("CS%04d", n),
		"branch":      "CSE",
		"cgpa":        8.2,
	}
}

func TestCreateStudentEnvelope(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/students", studentBody(1))
	require.Equal(t, http.StatusCreated, w.Code)

	out := decode(t, w)
	require.Equal(t, true, out["success"])
	require.Equal(t, "student created", out["message"])
	data := out["data"].(map[string]any)
	require.Equal(t, "student1@college.edu", data["email"])
	require.NotZero(t, data["id"])
}

func TestCreateStudentValidation(t *testing.T) {
	r, _ := newTestServer(t)

	body := studentBody(1)
	body["email"] = "not-an-email"
	body["cgpa"] = 12.5

	w := doJSON(t, r, http.MethodPost, "/api/students", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	out := decode(t, w)
	require.Equal(t, false, out["success"])
	require.Contains(t, out["error"], "email")
	require.Contains(t, out["error"], "cgpa")
}

func TestDuplicateStudentEmail(t *testing.T) {
	r, _ := newTestServer(t)

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)).Code)

	dup := studentBody(2)
	dup["email"] = "student1@college.edu"
	w := doJSON(t, r, http.MethodPost, "/api/students", dup)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, decode(t, w)["error"], "already exists")
}

func TestGetStudentNotFound(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/students/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, false, decode(t, w)["success"])
}

func TestDeleteMissingStudent(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodDelete, "/api/students/42", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListStudentsPagination(t *testing.T) {
	r, _ := newTestServer(t)
	for i := 1; i <= 15; i++ {
		require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/students", studentBody(i)).Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/students?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	out := decode(t, w)
	items := out["data"].([]any)
	require.Len(t, items, 5)

	p := out["pagination"].(map[string]any)
	require.EqualValues(t, 2, p["current_page"])
	require.EqualValues(t, 2, p["total_pages"])
	require.EqualValues(t, 15, p["total_count"])
	require.EqualValues(t, 10, p["limit"])
	require.Equal(t, false, p["has_next"])
	require.Equal(t, true, p["has_prev"])
}

func TestListEmptyDataIsArray(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/students", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"data":[]`)
}

func TestPartialUpdateKeepsFields(t *testing.T) {
	r, _ := newTestServer(t)

	created := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	id := int64(created["data"].(map[string]any)["id"].(float64))

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/students/%d", id), map[string]any{"phone": "9998887777"})
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]any)
	require.Equal(t, "9998887777", data["phone"])
	require.Equal(t, "student1@college.edu", data["email"])
	require.EqualValues(t, 8.2, data["cgpa"])
}

func seedJob(t *testing.T, r *gin.Engine, deadline time.Time) int64 {
	t.Helper()
	co := decode(t, doJSON(t, r, http.MethodPost, "/api/companies", map[string]any{"company_name": "Globex"}))
	companyID := int64(co["data"].(map[string]any)["id"].(float64))

	w := doJSON(t, r, http.MethodPost, "/api/jobs", map[string]any{
		"company_id":           companyID,
		"title":                "Platform Engineer",
		"job_type":             "full_time",
		"application_deadline": deadline.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return int64(decode(t, w)["data"].(map[string]any)["id"].(float64))
}

func TestApplicationEligible201(t *testing.T) {
	r, _ := newTestServer(t)

	st := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	studentID := int64(st["data"].(map[string]any)["id"].(float64))
	jobID := seedJob(t, r, time.Now().Add(48*time.Hour))

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/jobs/%d/requirements", jobID), map[string]any{
		"requirement_type": "education",
		"min_cgpa":         7.5,
		"mandatory":        true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/applications", map[string]any{
		"student_id": studentID,
		"job_id":     jobID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	require.Equal(t, "eligible", data["eligibility_status"])
}

func TestApplicationPending202(t *testing.T) {
	r, _ := newTestServer(t)

	st := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	studentID := int64(st["data"].(map[string]any)["id"].(float64))
	jobID := seedJob(t, r, time.Now().Add(48*time.Hour))

	// No CGPA-bearing requirements: stays pending for manual review.
	w := doJSON(t, r, http.MethodPost, "/api/applications", map[string]any{
		"student_id": studentID,
		"job_id":     jobID,
	})
	require.Equal(t, http.StatusAccepted, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	require.Equal(t, "pending", data["eligibility_status"])
}

func TestApplicationDuplicate409(t *testing.T) {
	r, _ := newTestServer(t)

	st := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	studentID := int64(st["data"].(map[string]any)["id"].(float64))
	jobID := seedJob(t, r, time.Now().Add(48*time.Hour))

	body := map[string]any{"student_id": studentID, "job_id": jobID}
	require.Equal(t, http.StatusAccepted, doJSON(t, r, http.MethodPost, "/api/applications", body).Code)

	w := doJSON(t, r, http.MethodPost, "/api/applications", body)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, decode(t, w)["error"], "already exists")
}

func TestApplicationPastDeadline400(t *testing.T) {
	r, _ := newTestServer(t)

	st := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	studentID := int64(st["data"].(map[string]any)["id"].(float64))
	jobID := seedJob(t, r, time.Now().Add(-time.Hour))

	w := doJSON(t, r, http.MethodPost, "/api/applications", map[string]any{
		"student_id": studentID,
		"job_id":     jobID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decode(t, w)["error"], "deadline has passed")
}

func TestApplicationUnknownJob404(t *testing.T) {
	r, _ := newTestServer(t)

	st := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	studentID := int64(st["data"].(map[string]any)["id"].(float64))

	w := doJSON(t, r, http.MethodPost, "/api/applications", map[string]any{
		"student_id": studentID,
		"job_id":     4040,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateApplicationStatus(t *testing.T) {
	r, _ := newTestServer(t)

	st := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	studentID := int64(st["data"].(map[string]any)["id"].(float64))
	jobID := seedJob(t, r, time.Now().Add(48*time.Hour))

	created := decode(t, doJSON(t, r, http.MethodPost, "/api/applications", map[string]any{
		"student_id": studentID,
		"job_id":     jobID,
	}))
	appID := int64(created["data"].(map[string]any)["id"].(float64))

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/applications/%d/status", appID), map[string]any{
		"eligibility_status": "eligible",
		"remarks":            "cleared manual review",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	require.Equal(t, "eligible", data["eligibility_status"])
	require.Equal(t, "cleared manual review", data["remarks"])

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/applications/%d/status", appID), map[string]any{
		"eligibility_status": "approved",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRolePermissionGrantRevoke(t *testing.T) {
	r, _ := newTestServer(t)

	role := decode(t, doJSON(t, r, http.MethodPost, "/api/roles", map[string]any{"role_name": "coordinator"}))
	roleID := int64(role["data"].(map[string]any)["id"].(float64))
	perm := decode(t, doJSON(t, r, http.MethodPost, "/api/permissions", map[string]any{"permission_name": "students:write"}))
	permID := int64(perm["data"].(map[string]any)["id"].(float64))

	grantPath := fmt.Sprintf("/api/roles/%d/permissions/%d", roleID, permID)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, grantPath, nil).Code)
	require.Equal(t, http.StatusConflict, doJSON(t, r, http.MethodPost, grantPath, nil).Code)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/roles/%d/permissions", roleID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode(t, w)["data"].([]any), 1)

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodDelete, grantPath, nil).Code)
	require.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, grantPath, nil).Code)
}

func TestProfileSubResources(t *testing.T) {
	r, _ := newTestServer(t)

	st := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	id := int64(st["data"].(map[string]any)["id"].(float64))

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/students/%d/languages", id), map[string]any{
		"language":    "Hindi",
		"proficiency": "native",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/students/%d/languages", id), map[string]any{
		"language":    "German",
		"proficiency": "expert",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/students/%d/languages", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode(t, w)["data"].([]any), 1)

	// Unknown parent answers 404, not an empty list.
	w = doJSON(t, r, http.MethodGet, "/api/students/999/languages", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRequirementsUnknownJob(t *testing.T) {
	r, _ := newTestServer(t)

	// Unknown parent answers 404, not an empty list.
	w := doJSON(t, r, http.MethodGet, "/api/jobs/999/requirements", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, false, decode(t, w)["success"])
}

func TestUpdateLanguagePartial(t *testing.T) {
	r, _ := newTestServer(t)

	st := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	studentID := int64(st["data"].(map[string]any)["id"].(float64))

	created := decode(t, doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/students/%d/languages", studentID), map[string]any{
		"language":    "Hindi",
		"proficiency": "basic",
	}))
	langID := int64(created["data"].(map[string]any)["id"].(float64))

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/languages/%d", langID), map[string]any{
		"proficiency": "fluent",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	require.Equal(t, "fluent", data["proficiency"])
	require.Equal(t, "Hindi", data["language"])

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/languages/%d", langID), map[string]any{
		"proficiency": "expert",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/languages/999", map[string]any{"proficiency": "fluent"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAddressPartial(t *testing.T) {
	r, _ := newTestServer(t)

	st := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	studentID := int64(st["data"].(map[string]any)["id"].(float64))

	created := decode(t, doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/students/%d/addresses", studentID), map[string]any{
		"address_type": "permanent",
		"line1":        "12 College Road",
		"city":         "Pune",
	}))
	addrID := int64(created["data"].(map[string]any)["id"].(float64))

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/addresses/%d", addrID), map[string]any{
		"city": "Mumbai",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	require.Equal(t, "Mumbai", data["city"])
	require.Equal(t, "12 College Road", data["line1"])
	require.Equal(t, "permanent", data["address_type"])
}

func TestUpdateFamilyMemberPartial(t *testing.T) {
	r, _ := newTestServer(t)

	st := decode(t, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)))
	studentID := int64(st["data"].(map[string]any)["id"].(float64))

	created := decode(t, doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/students/%d/family-members", studentID), map[string]any{
		"name":     "R. Sharma",
		"relation": "father",
	}))
	memberID := int64(created["data"].(map[string]any)["id"].(float64))

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/family-members/%d", memberID), map[string]any{
		"occupation": "teacher",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	require.Equal(t, "teacher", data["occupation"])
	require.Equal(t, "R. Sharma", data["name"])
	require.Equal(t, "father", data["relation"])
}

func TestListStudentsSortBy(t *testing.T) {
	r, _ := newTestServer(t)

	cgpas := []float64{6.1, 9.4, 7.8}
	for i, cgpa := range cgpas {
		body := studentBody(i + 1)
		body["cgpa"] = cgpa
		require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/students", body).Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/students?sort_by=cgpa&sort_order=ASC", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := decode(t, w)["data"].([]any)
	require.Len(t, items, 3)
	got := make([]float64, 0, 3)
	for _, it := range items {
		got = append(got, it.(map[string]any)["cgpa"].(float64))
	}
	require.Equal(t, []float64{6.1, 7.8, 9.4}, got)

	// A key outside the allow-list falls back to identifier order.
	w = doJSON(t, r, http.MethodGet, "/api/students?sort_by=nonsense&sort_order=ASC", nil)
	items = decode(t, w)["data"].([]any)
	require.Equal(t, "student1@college.edu", items[0].(map[string]any)["email"])
}

func TestImportStudentsPartialSuccess(t *testing.T) {
	r, _ := newTestServer(t)

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/students", studentBody(1)).Code)

	rows := []map[string]any{
		studentBody(2),
		{"first_name": "NoEmail", "roll_number": "CS7777", "branch": "ECE"}, // fails validation
		studentBody(1), // duplicate email
		studentBody(3),
	}
	w := doJSON(t, r, http.MethodPost, "/api/students/import", map[string]any{"students": rows})
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]any)
	require.EqualValues(t, 2, data["imported"])
	require.EqualValues(t, 2, data["failed"])
	errs := data["errors"].([]any)
	require.Len(t, errs, 2)
	require.EqualValues(t, 1, errs[0].(map[string]any)["index"])
	require.EqualValues(t, 2, errs[1].(map[string]any)["index"])
}

func TestAuthFlow(t *testing.T) {
	r, store := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.Enabled = true
		cfg.Auth.JWTSecret = "test-secret"
		cfg.Auth.TokenTTL = time.Hour
	})

	// Protected routes reject anonymous access.
	require.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/api/students", nil).Code)
	require.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodPost, "/api/roles", map[string]any{"role_name": "admin"}).Code)

	role, err := store.CreateRole(context.Background(), rbac.Role{RoleName: "admin"})
	require.NoError(t, err)

	// Register and log in through the open auth endpoints.
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "admin@college.edu",
		"password": "correct-horse",
		"role_id":  role.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotContains(t, w.Body.String(), "password_hash")

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "admin@college.edu",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["data"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "admin@college.edu",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthz(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHealthDBWithoutPool(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/health/db", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "placement_service_http")
}

func TestInvalidIDParameter(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/students/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decode(t, w)["error"], "invalid id")
}
