package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	applog "agrilog/internal/log"
	"agrilog/internal/worklog"
	"agrilog/models"
)

type workTemplateRequest struct {
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields"`
}

// WorkTemplateResource handles the named work-log templates an owner
// can apply to the form.
func WorkTemplateResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "work template request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		applog.Debug(r.Context(), "work template request missing authenticated user")
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/templates")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listWorkTemplates(w, r, userID)
		case http.MethodPost:
			createWorkTemplate(w, r, userID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid work template identifier", "identifier", path, "error", err)
		http.NotFound(w, r)
		return
	}
	templateID := uint(idValue)

	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	deleteWorkTemplate(w, r, templateID, userID)
}

func listWorkTemplates(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	var templates []models.WorkTemplate
	err := database.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("name asc").
		Find(&templates).Error
	if err != nil {
		applog.Error(ctx, "failed to list work templates", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load templates")
		return
	}

	writeJSON(w, http.StatusOK, templates)
}

func createWorkTemplate(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()

	var payload workTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid work template payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}

	// Unrecognized patch keys are dropped at save time so a stored
	// template can never write outside the form's field set.
	fields := make(map[string]string, len(payload.Fields))
	for key, value := range payload.Fields {
		if worklog.KnownDraftField(key) {
			fields[key] = value
		}
	}
	if len(fields) == 0 {
		writeJSONError(w, http.StatusBadRequest, "at least one recognized field is required")
		return
	}

	template := models.WorkTemplate{OwnerID: userID, Name: name, Fields: fields}
	if err := database.WithContext(ctx).Create(&template).Error; err != nil {
		applog.Error(ctx, "failed to create work template", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save template")
		return
	}

	writeJSON(w, http.StatusCreated, template)
}

func deleteWorkTemplate(w http.ResponseWriter, r *http.Request, templateID, userID uint) {
	ctx := r.Context()
	var template models.WorkTemplate
	err := database.WithContext(ctx).Where("id = ? AND owner_id = ?", templateID, userID).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "delete denied: work template not found or not owned", "id", templateID, "user", userID)
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load work template for delete", "error", err, "id", templateID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load template")
		return
	}

	if err := database.WithContext(ctx).Delete(&template).Error; err != nil {
		applog.Error(ctx, "failed to delete work template", "error", err, "id", templateID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete template")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
