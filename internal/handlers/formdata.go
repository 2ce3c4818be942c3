package handlers

import (
	"net/http"

	applog "agrilog/internal/log"
	"agrilog/internal/worklog"
	"agrilog/models"
)

type formDataResponse struct {
	WorkTypes   []string            `json:"work_types"`
	Fields      []models.Field      `json:"fields"`
	Workers     []models.User       `json:"workers"`
	Fertilizers []models.Fertilizer `json:"fertilizers"`
	Seeds       []models.Seed       `json:"seeds"`
	Pesticides  []models.Pesticide  `json:"pesticides"`
}

// FormData returns the reference data the work-log form needs in one
// response: the work-type list plus every lookup collection the form's
// selectors bind to.
func FormData(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "form data request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		applog.Debug(r.Context(), "form data request missing authenticated user")
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	refs, err := worklog.NewLoader(database).Load(r.Context(), userID)
	if err != nil {
		applog.Error(r.Context(), "failed to load form data", "error", err, "user", userID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load form data")
		return
	}

	writeJSON(w, http.StatusOK, formDataResponse{
		WorkTypes:   models.WorkTypes(),
		Fields:      refs.Fields,
		Workers:     refs.Users,
		Fertilizers: refs.Fertilizers,
		Seeds:       refs.Seeds,
		Pesticides:  refs.Pesticides,
	})
}
