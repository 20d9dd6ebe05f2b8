package http

import (
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// handleConnectionStart begins an OAuth authorization flow and returns the
// consent URL for the frontend to open in a popup.
func (s *Server) handleConnectionStart(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	provider, err := domain.ParseProvider(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	resp, err := s.oauthService.Connect(r.Context(), driving.ConnectRequest{
		UserID:   authCtx.UserID,
		Provider: provider,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			writeError(w, http.StatusInternalServerError, "oauth client is not configured")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to start authorization")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleConnectionCallback receives the provider redirect. It responds with
// a small HTML page that notifies the opener window and closes itself, so
// the popup-based flow completes without any client-side routing.
func (s *Server) handleConnectionCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := s.oauthService.Callback(r.Context(), driving.CallbackRequest{
		Code:             q.Get("code"),
		State:            q.Get("state"),
		Error:            q.Get("error"),
		ErrorDescription: q.Get("error_description"),
	})
	if err != nil {
		writeCallbackPage(w, callbackStatus(err), "", callbackMessage(err))
		return
	}

	writeCallbackPage(w, http.StatusOK, string(result.Provider), "")
}

func callbackStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrConsentDenied),
		errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrExchangeFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func callbackMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrConsentDenied):
		return "Authorization was denied."
	case errors.Is(err, domain.ErrInvalidState):
		return "This authorization link is invalid or has expired."
	case errors.Is(err, domain.ErrExchangeFailed):
		return "The authorization could not be completed."
	default:
		return "Something went wrong."
	}
}

// writeCallbackPage renders the popup-closing HTML. On success the opener
// gets an oauth-success message with the provider; on failure an
// oauth-error message with a human-readable reason.
func writeCallbackPage(w http.ResponseWriter, status int, provider, errMessage string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if errMessage == "" {
		fmt.Fprintf(w,
			`<html><body><script>if(window.opener){window.opener.postMessage({type:'oauth-success',provider:%q},'*');}window.close();</script><p>Authentication successful! Closing window...</p></body></html>`,
			provider)
		return
	}

	fmt.Fprintf(w,
		`<html><body><script>if(window.opener){window.opener.postMessage({type:'oauth-error',message:%q},'*');}window.close();</script><p>%s You can close this window.</p></body></html>`,
		errMessage, html.EscapeString(errMessage))
}

// handleListConnections returns the user's connections without token
// material.
func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	connections, err := s.oauthService.ListConnections(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list connections")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"connections": connections})
}

// handleDisconnect removes a stored credential. Consent at the provider is
// untouched; the user revokes that from their Google account settings.
func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	provider, err := domain.ParseProvider(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	if err := s.oauthService.Disconnect(r.Context(), authCtx.UserID, provider); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not connected")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to disconnect")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}
