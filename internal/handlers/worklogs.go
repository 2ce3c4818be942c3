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

type workLogShowResponse struct {
	Record models.WorkLog `json:"record"`
	Draft  worklog.Draft  `json:"draft"`
}

// WorkLogResource handles REST-style interactions for work-log records.
func WorkLogResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "work log request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		applog.Debug(r.Context(), "work log request missing authenticated user")
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/work-logs")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listWorkLogs(w, r, userID)
		case http.MethodPost:
			createWorkLog(w, r, userID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid work log identifier", "identifier", path, "error", err)
		http.NotFound(w, r)
		return
	}
	workLogID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		showWorkLog(w, r, workLogID, userID)
	case http.MethodPut:
		updateWorkLog(w, r, workLogID, userID)
	case http.MethodDelete:
		deleteWorkLog(w, r, workLogID, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listWorkLogs(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	var records []models.WorkLog
	err := database.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("date desc, id desc").
		Find(&records).Error
	if err != nil {
		applog.Error(ctx, "failed to list work logs", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load work logs")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func createWorkLog(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()

	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	owner, _ := currentOwner(r)

	refs, err := worklog.NewLoader(database).Load(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load reference data for create", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save work log")
		return
	}

	id, err := worklog.NewCoordinator(database).Create(ctx, owner, draft, refs)
	if err != nil {
		applog.Error(ctx, "failed to create work log", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save work log")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]uint{"id": id})
}

func showWorkLog(w http.ResponseWriter, r *http.Request, workLogID, userID uint) {
	ctx := r.Context()

	record, ok := ownedWorkLog(w, r, workLogID, userID)
	if !ok {
		return
	}

	draft, err := worklog.NewLoader(database).LoadExisting(ctx, workLogID)
	if err != nil {
		if errors.Is(err, worklog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load work log draft", "error", err, "id", workLogID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load work log")
		return
	}

	writeJSON(w, http.StatusOK, workLogShowResponse{Record: record, Draft: draft})
}

func updateWorkLog(w http.ResponseWriter, r *http.Request, workLogID, userID uint) {
	ctx := r.Context()

	if _, ok := ownedWorkLog(w, r, workLogID, userID); !ok {
		return
	}

	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	owner, _ := currentOwner(r)

	refs, err := worklog.NewLoader(database).Load(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load reference data for update", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save work log")
		return
	}

	if err := worklog.NewCoordinator(database).Update(ctx, workLogID, owner, draft, refs); err != nil {
		if errors.Is(err, worklog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to update work log", "error", err, "id", workLogID)
		writeJSONError(w, http.StatusInternalServerError, "unable to save work log")
		return
	}

	writeJSON(w, http.StatusOK, map[string]uint{"id": workLogID})
}

func deleteWorkLog(w http.ResponseWriter, r *http.Request, workLogID, userID uint) {
	ctx := r.Context()

	if _, ok := ownedWorkLog(w, r, workLogID, userID); !ok {
		return
	}

	if err := worklog.NewCoordinator(database).Delete(ctx, workLogID); err != nil {
		applog.Error(ctx, "failed to delete work log", "error", err, "id", workLogID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete work log")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeDraft reads and validates the request draft. On a validation
// failure the full violation list is returned so the client can show
// every problem at once.
func decodeDraft(w http.ResponseWriter, r *http.Request) (worklog.Draft, bool) {
	draft := worklog.NewDraft()
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		applog.Debug(r.Context(), "invalid work log payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return draft, false
	}
	if draft.WorkerIDs == nil {
		draft.WorkerIDs = []string{}
	}

	if draft.WorkType != "" && !models.ValidWorkType(draft.WorkType) {
		writeJSONError(w, http.StatusBadRequest, "unknown work type")
		return draft, false
	}

	if violations := worklog.Validate(draft); len(violations) > 0 {
		applog.Debug(r.Context(), "work log draft rejected", "violations", len(violations))
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":      strings.Join(violations, "\n"),
			"violations": violations,
		})
		return draft, false
	}

	return draft, true
}

// ownedWorkLog loads the record only when it belongs to the
// authenticated user; anything else is reported as not found so record
// identifiers do not leak across accounts.
func ownedWorkLog(w http.ResponseWriter, r *http.Request, workLogID, userID uint) (models.WorkLog, bool) {
	ctx := r.Context()
	var record models.WorkLog
	err := database.WithContext(ctx).Where("id = ? AND owner_id = ?", workLogID, userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "work log not found or not owned", "id", workLogID, "user", userID)
			http.NotFound(w, r)
			return record, false
		}
		applog.Error(ctx, "failed to load work log", "error", err, "id", workLogID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load work log")
		return record, false
	}
	return record, true
}
