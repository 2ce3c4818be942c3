package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "agrilog/internal/log"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method)

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sessionManager == nil || database == nil {
		applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
		writeJSONError(w, http.StatusServiceUnavailable, "authentication not available")
		return
	}

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid login payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	email := strings.TrimSpace(payload.Email)
	if email == "" || payload.Password == "" {
		applog.Debug(r.Context(), "login missing credentials", "emailPresent", email != "", "passwordPresent", payload.Password != "")
		writeJSONError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if !authenticate(w, r, email, payload.Password) {
		applog.Debug(r.Context(), "authentication failed", "email", strings.ToLower(email))
		message := sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		if message == "" {
			message = "We were unable to sign you in. Please try again."
		}
		writeJSONError(w, http.StatusUnauthorized, message)
		return
	}

	applog.Debug(r.Context(), "authentication succeeded", "email", strings.ToLower(email))
	writeJSON(w, http.StatusOK, sessionResponse{
		ID:    uint(sessionManager.GetInt(r.Context(), sessionUserIDKey)),
		Email: sessionManager.GetString(r.Context(), sessionUserEmailKey),
		Name:  sessionManager.GetString(r.Context(), sessionUserNameKey),
	})
}
