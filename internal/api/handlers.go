// ABOUTME: HTTP handlers for the query, courses, session, and health endpoints
// ABOUTME: JSON in, JSON out; orchestration failures keep the session id in the response
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lectern/lectern/internal/rag"
)

// QueryService runs one orchestrated query
type QueryService interface {
	ProcessQuery(ctx context.Context, query, sessionID string) (*rag.QueryResult, error)
}

// CourseLister exposes the loaded course catalog
type CourseLister interface {
	Titles() []string
	Count() int
}

// SessionClearer drops a session's conversation history
type SessionClearer interface {
	Clear(sessionID string)
}

type APIHandler struct {
	queries  QueryService
	courses  CourseLister
	sessions SessionClearer
}

func NewAPIHandler(queries QueryService, courses CourseLister, sessions SessionClearer) *APIHandler {
	return &APIHandler{queries: queries, courses: courses, sessions: sessions}
}

type QueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

func (h *APIHandler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "Query cannot be empty", http.StatusBadRequest)
		return
	}

	result, err := h.queries.ProcessQuery(r.Context(), req.Query, req.SessionID)
	if err != nil {
		sessionID := req.SessionID
		if result != nil {
			sessionID = result.SessionID
		}
		log.Printf("Error processing query for session %s: %v", sessionID, err)
		// The session id still goes back so a retry keeps its context
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error":      "Failed to process query",
			"session_id": sessionID,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

type CoursesResponse struct {
	TotalCourses int      `json:"total_courses"`
	CourseTitles []string `json:"course_titles"`
}

func (h *APIHandler) CoursesHandler(w http.ResponseWriter, r *http.Request) {
	titles := h.courses.Titles()
	if titles == nil {
		titles = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CoursesResponse{
		TotalCourses: len(titles),
		CourseTitles: titles,
	})
}

func (h *APIHandler) ClearSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.sessions.Clear(sessionID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":    "Session cleared",
		"session_id": sessionID,
	})
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":        "healthy",
		"total_courses": h.courses.Count(),
	})
}
