// ABOUTME: Tests for the HTTP API endpoints
// ABOUTME: Uses httptest with stubbed query, catalog, and session services
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lectern/lectern/internal/models"
	"github.com/lectern/lectern/internal/rag"
)

type stubQueryService struct {
	result       *rag.QueryResult
	err          error
	gotQuery     string
	gotSessionID string
}

func (s *stubQueryService) ProcessQuery(_ context.Context, query, sessionID string) (*rag.QueryResult, error) {
	s.gotQuery = query
	s.gotSessionID = sessionID
	return s.result, s.err
}

type stubCatalog struct {
	titles []string
}

func (s *stubCatalog) Titles() []string { return s.titles }
func (s *stubCatalog) Count() int       { return len(s.titles) }

type stubSessions struct {
	cleared []string
}

func (s *stubSessions) Clear(sessionID string) {
	s.cleared = append(s.cleared, sessionID)
}

func newTestServer(queries *stubQueryService, catalog *stubCatalog, sessions *stubSessions) http.Handler {
	if queries == nil {
		queries = &stubQueryService{result: &rag.QueryResult{}}
	}
	if catalog == nil {
		catalog = &stubCatalog{}
	}
	if sessions == nil {
		sessions = &stubSessions{}
	}
	return NewRouter(NewAPIHandler(queries, catalog, sessions))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestQueryEndpoint(t *testing.T) {
	lesson := 3
	queries := &stubQueryService{result: &rag.QueryResult{
		Answer:    "The answer",
		Sources:   []models.SourceRef{{CourseTitle: "Course X", LessonNumber: &lesson, Link: "http://example.com/3"}},
		SessionID: "session-1",
	}}
	server := newTestServer(queries, nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query": "What is in lesson 3?", "session_id": "session-1"}`))
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if queries.gotQuery != "What is in lesson 3?" || queries.gotSessionID != "session-1" {
		t.Errorf("service called with query=%q session=%q", queries.gotQuery, queries.gotSessionID)
	}

	body := decodeBody(t, rec)
	if body["answer"] != "The answer" {
		t.Errorf("answer = %v", body["answer"])
	}
	if body["session_id"] != "session-1" {
		t.Errorf("session_id = %v", body["session_id"])
	}
	sources, ok := body["sources"].([]any)
	if !ok || len(sources) != 1 {
		t.Fatalf("sources = %v, want one entry", body["sources"])
	}
	source := sources[0].(map[string]any)
	if source["course_title"] != "Course X" || source["lesson_number"] != float64(3) || source["link"] != "http://example.com/3" {
		t.Errorf("source = %v", source)
	}
}

func TestQueryEndpointEmptyQuery(t *testing.T) {
	queries := &stubQueryService{result: &rag.QueryResult{}}
	server := newTestServer(queries, nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query": "   "}`))
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if queries.gotQuery != "" {
		t.Error("service should not be called for an empty query")
	}
}

func TestQueryEndpointInvalidJSON(t *testing.T) {
	server := newTestServer(nil, nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader("{not json"))
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestQueryEndpointModelFailureKeepsSession(t *testing.T) {
	queries := &stubQueryService{
		result: &rag.QueryResult{SessionID: "generated-id"},
		err:    errors.New("model unavailable"),
	}
	server := newTestServer(queries, nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query": "hello"}`))
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["session_id"] != "generated-id" {
		t.Errorf("session_id = %v, want the generated id so retries keep context", body["session_id"])
	}
	if body["error"] == "" {
		t.Error("error message missing")
	}
	if strings.Contains(rec.Body.String(), "model unavailable") {
		t.Error("internal error detail should not leak to clients")
	}
}

func TestCoursesEndpoint(t *testing.T) {
	server := newTestServer(nil, &stubCatalog{titles: []string{"Course A", "Course B"}}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total_courses"] != float64(2) {
		t.Errorf("total_courses = %v, want 2", body["total_courses"])
	}
	titles, ok := body["course_titles"].([]any)
	if !ok || len(titles) != 2 || titles[0] != "Course A" {
		t.Errorf("course_titles = %v", body["course_titles"])
	}
}

func TestCoursesEndpointEmptyCatalog(t *testing.T) {
	server := newTestServer(nil, &stubCatalog{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	server.ServeHTTP(rec, req)

	body := decodeBody(t, rec)
	if titles, ok := body["course_titles"].([]any); !ok || len(titles) != 0 {
		t.Errorf("course_titles = %v, want empty list not null", body["course_titles"])
	}
}

func TestClearSessionEndpoint(t *testing.T) {
	sessions := &stubSessions{}
	server := newTestServer(nil, nil, sessions)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/session-9/clear", nil)
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(sessions.cleared) != 1 || sessions.cleared[0] != "session-9" {
		t.Errorf("cleared = %v, want [session-9]", sessions.cleared)
	}
	body := decodeBody(t, rec)
	if body["session_id"] != "session-9" {
		t.Errorf("session_id = %v", body["session_id"])
	}

	// Clearing again is fine
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/sessions/session-9/clear", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("second clear status = %d, want 200", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(nil, &stubCatalog{titles: []string{"Course A"}}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	if body["total_courses"] != float64(1) {
		t.Errorf("total_courses = %v, want 1", body["total_courses"])
	}
}
