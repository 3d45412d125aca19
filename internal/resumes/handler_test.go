package resumes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"applywise-backend/internal/resumes"
	"applywise-backend/internal/shared/server/middleware"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := resumes.NewHandler(&resumes.Service{Repo: resumes.NewMemoryRepo()})
	h.RegisterRoutes(r.Group("/api/v1"), middleware.NewRateLimiter(nil))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateResumeReturns201(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/resumes", map[string]any{
		"user_id": "user-1",
		"name":    "Jane Doe",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created["_id"] == "" || created["_id"] == nil {
		t.Fatalf("expected _id in response: %v", created)
	}
	if created["user_id"] != "user-1" {
		t.Fatalf("unexpected user_id: %v", created["user_id"])
	}
}

func TestCreateDuplicateResumeReturns400(t *testing.T) {
	r := newTestRouter()

	payload := map[string]any{"user_id": "user-1", "name": "Jane Doe"}
	if w := doJSON(t, r, http.MethodPost, "/api/v1/resumes", payload); w.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/api/v1/resumes", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["detail"] == "" {
		t.Fatalf("expected detail in error body: %s", w.Body.String())
	}
}

func TestCreateResumeMissingFieldsReturns422(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/resumes", map[string]any{"name": "No User"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetResumeErrors(t *testing.T) {
	r := newTestRouter()

	if w := doJSON(t, r, http.MethodGet, "/api/v1/resumes/not-hex", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed id: expected 400, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/v1/resumes/64b2f0c8a5e9d3f1b2c4a6e8", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", w.Code)
	}
}

func TestPatchAndDeleteResume(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/resumes", map[string]any{
		"user_id": "user-1",
		"name":    "Jane Doe",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/v1/resumes/"+created.ID, map[string]any{"starred": true})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var patched struct {
		Name    string `json:"name"`
		Starred bool   `json:"starred"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &patched); err != nil {
		t.Fatalf("decode patched: %v", err)
	}
	if !patched.Starred || patched.Name != "Jane Doe" {
		t.Fatalf("merge semantics violated: %+v", patched)
	}

	if w = doJSON(t, r, http.MethodDelete, "/api/v1/resumes/"+created.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	if w = doJSON(t, r, http.MethodDelete, "/api/v1/resumes/"+created.ID, nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", w.Code)
	}
}

func TestListResumesEnvelope(t *testing.T) {
	r := newTestRouter()

	for _, payload := range []map[string]any{
		{"user_id": "u1", "name": "Alice"},
		{"user_id": "u2", "name": "Bob"},
		{"user_id": "u3", "name": "Carol"},
	} {
		if w := doJSON(t, r, http.MethodPost, "/api/v1/resumes", payload); w.Code != http.StatusCreated {
			t.Fatalf("seed create failed: %d", w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/resumes?page=1&page_size=2&sort_by=name&sort_order=asc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var page struct {
		Total    int64            `json:"total"`
		Page     int              `json:"page"`
		PageSize int              `json:"page_size"`
		Items    []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Total != 3 || page.Page != 1 || page.PageSize != 2 {
		t.Fatalf("unexpected envelope: %+v", page)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if _, hasEducation := page.Items[0]["education"]; hasEducation {
		t.Fatalf("list items should not carry full document fields: %v", page.Items[0])
	}
}

func TestListResumesRejectsBadSortOrder(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/v1/resumes?sort_order=upwards", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}
