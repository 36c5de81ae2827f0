package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"clipsmith/library"
	"clipsmith/planner"
	"clipsmith/processor"
	"clipsmith/types"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	assembler := planner.NewAssembler(
		planner.Config{SpeedFactor: 1.2},
		planner.NewMatcher(library.Static{}, nil, planner.MatcherConfig{}),
		nil,
	)
	proc, err := processor.New(processor.Options{
		Assembler: assembler,
		OutputDir: t.TempDir(),
		PlanOnly:  true,
	})
	if err != nil {
		t.Fatalf("processor.New error: %v", err)
	}
	return NewServer(proc)
}

const jobBody = `{
	"uuid": "api-1",
	"status": "success",
	"segments": [
		{"index": 0, "text": "bitcoin opens higher", "audio_path": "a.mp3", "audio_duration": 3},
		{"index": 1, "text": "markets follow", "audio_path": "b.mp3", "audio_duration": 4.2}
	]
}`

func TestHealth(t *testing.T) {
	router := testServer(t).Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestPlanEndpoint(t *testing.T) {
	router := testServer(t).Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(jobBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}

	var plan types.CompositionPlan
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("response is not a plan: %v", err)
	}
	if plan.VideoID != "api-1" || len(plan.Entries) != 2 {
		t.Fatalf("plan = %+v", plan)
	}
	if plan.SpeedFactor != 1.2 {
		t.Fatalf("speed factor = %v; want 1.2", plan.SpeedFactor)
	}
}

func TestPlanRejectsEmptySegments(t *testing.T) {
	router := testServer(t).Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"uuid":"x","segments":[]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestPlanRejectsFailedStatus(t *testing.T) {
	router := testServer(t).Router()

	body := `{"uuid":"x","status":"failed","segments":[{"index":0,"text":"t","audio_path":"a.mp3","audio_duration":2}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestSubmitAcceptsJob(t *testing.T) {
	router := testServer(t).Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/videos", strings.NewReader(jobBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d; want 202", w.Code)
	}

	var resp SubmitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if !resp.Success || resp.VideoID != "api-1" {
		t.Fatalf("response = %+v", resp)
	}
}
