package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response
type StatusResponse struct {
	Status string `json:"status"`
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports readiness based on backing store connectivity.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Setup endpoint

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req driving.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.userService.Setup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email, password, and name are required")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "setup already complete")
		default:
			writeError(w, http.StatusInternalServerError, "setup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Auth endpoints

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	_ = s.authService.Logout(r.Context(), token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// User endpoints

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.userService.Get(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// Provider data endpoints

func (s *Server) handleMailInbox(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	messages, err := s.mailService.FetchInbox(r.Context(), authCtx.UserID)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

func (s *Server) handleClassroomAnnouncements(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	announcements, err := s.classroomService.FetchAnnouncements(r.Context(), authCtx.UserID)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"announcements": announcements})
}

// writeFetchError maps provider fetch failures onto HTTP statuses. Not
// connected is a client problem, a dead refresh token needs a new
// authorization, and upstream API failures surface as bad gateway.
func writeFetchError(w http.ResponseWriter, err error) {
	var fetchErr *domain.FetchError
	switch {
	case errors.Is(err, domain.ErrNotConnected):
		writeError(w, http.StatusBadRequest, "provider not connected")
	case errors.Is(err, domain.ErrReauthRequired):
		writeError(w, http.StatusUnauthorized, "reconnection required")
	case errors.Is(err, domain.ErrClassroomAPIDisabled):
		writeError(w, http.StatusBadGateway, "google classroom api is not enabled for this project")
	case errors.Is(err, domain.ErrProviderTimeout):
		writeError(w, http.StatusGatewayTimeout, "provider request timed out")
	case errors.As(err, &fetchErr):
		writeError(w, http.StatusBadGateway, fetchErr.Error())
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusInternalServerError, "oauth client is not configured")
	default:
		writeError(w, http.StatusInternalServerError, "fetch failed")
	}
}

// Analysis endpoint

type analyzeRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := s.analysisService.Analyze(r.Context(), req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "content is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// Task endpoints

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	tasks, err := s.taskService.List(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req driving.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := s.taskService.Create(r.Context(), authCtx.UserID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid task")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	id := r.PathValue("id")

	var req driving.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := s.taskService.Update(r.Context(), authCtx.UserID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "task not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid task")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update task")
		}
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	id := r.PathValue("id")

	if err := s.taskService.Delete(r.Context(), authCtx.UserID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Event endpoints

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	events, err := s.eventService.List(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req driving.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := s.eventService.Create(r.Context(), authCtx.UserID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid event")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	id := r.PathValue("id")

	if err := s.eventService.Delete(r.Context(), authCtx.UserID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Bookmark endpoints

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	bookmarks, err := s.bookmarkService.List(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookmarks")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookmarks": bookmarks})
}

func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req driving.CreateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bookmark, err := s.bookmarkService.Create(r.Context(), authCtx.UserID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid bookmark")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create bookmark")
		return
	}

	writeJSON(w, http.StatusCreated, bookmark)
}

func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	id := r.PathValue("id")

	if err := s.bookmarkService.Delete(r.Context(), authCtx.UserID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete bookmark")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
