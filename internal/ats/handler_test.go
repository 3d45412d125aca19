package ats_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"applywise-backend/internal/ats"
	"applywise-backend/internal/resumes"
	"applywise-backend/internal/shared/server/middleware"
)

type stubLLM struct {
	response string
}

func (s stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return s.response, nil
}

func newTestRouter(t *testing.T, llmResponse string) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resumeRepo := resumes.NewMemoryRepo()
	created, err := (&resumes.Service{Repo: resumeRepo}).Create(context.Background(), resumes.Resume{
		UserID: "user-1",
		Name:   "Jane Doe",
	})
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	svc := &ats.Service{
		Repo:    ats.NewMemoryRepo(),
		Resumes: resumeRepo,
		LLM:     stubLLM{response: llmResponse},
	}
	r := gin.New()
	ats.NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), middleware.NewRateLimiter(nil))
	return r, created.ID.Hex()
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

func analyzePayload(resumeID string) map[string]string {
	return map[string]string{
		"resume_id":       resumeID,
		"job_title":       "Backend Engineer",
		"job_description": "Build APIs",
	}
}

func TestAnalyzeEndpointHappyPath(t *testing.T) {
	r, resumeID := newTestRouter(t, `{"relevance_score":85,"skills":["Python"],"total_years_of_experience":3,"project_categories":["Backend"]}`)

	w := doJSON(t, r, http.MethodPost, "/api/v1/ats/analyze", analyzePayload(resumeID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var output map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &output); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, field := range []string{"relevance_score", "skills", "total_years_of_experience", "project_categories"} {
		if _, ok := output[field]; !ok {
			t.Fatalf("missing %s in response: %v", field, output)
		}
	}
	if _, ok := output["job_description"]; ok {
		t.Fatalf("response must only carry the LLM-derived subset: %v", output)
	}
}

func TestAnalyzeEndpointUnknownResume(t *testing.T) {
	r, _ := newTestRouter(t, `{}`)

	w := doJSON(t, r, http.MethodPost, "/api/v1/ats/analyze", analyzePayload("64b2f0c8a5e9d3f1b2c4a6e8"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeEndpointInvalidProviderJSON(t *testing.T) {
	r, resumeID := newTestRouter(t, "not json at all")

	w := doJSON(t, r, http.MethodPost, "/api/v1/ats/analyze", analyzePayload(resumeID))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["detail"] == "" {
		t.Fatalf("expected detail in error body")
	}
}

func TestAnalyzeEndpointMissingBodyFields(t *testing.T) {
	r, _ := newTestRouter(t, `{}`)

	w := doJSON(t, r, http.MethodPost, "/api/v1/ats/analyze", map[string]string{"job_title": "x"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHistoryEndpoints(t *testing.T) {
	r, resumeID := newTestRouter(t, `{"relevance_score":85,"skills":["Python"],"total_years_of_experience":3,"project_categories":["Backend"]}`)

	if w := doJSON(t, r, http.MethodPost, "/api/v1/ats/analyze", analyzePayload(resumeID)); w.Code != http.StatusOK {
		t.Fatalf("analyze failed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/ats/history?resume_id="+resumeID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", w.Code)
	}
	var analyses []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &analyses); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(analyses) != 1 {
		t.Fatalf("expected 1 analysis, got %d", len(analyses))
	}
	id, _ := analyses[0]["_id"].(string)
	if id == "" {
		t.Fatalf("missing _id in history item: %v", analyses[0])
	}

	w = doJSON(t, r, http.MethodPut, "/api/v1/ats/history/"+id, map[string]string{
		"job_title":       "Staff Engineer",
		"job_description": "Lead the team",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated["job_title"] != "Staff Engineer" {
		t.Fatalf("job_title not updated: %v", updated)
	}

	if w = doJSON(t, r, http.MethodDelete, "/api/v1/ats/history/"+id, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	if w = doJSON(t, r, http.MethodDelete, "/api/v1/ats/history/"+id, nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", w.Code)
	}
}
