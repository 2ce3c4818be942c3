package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agrilog/models"
)

func TestFormDataRequiresAuthentication(t *testing.T) {
	_, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	req := httptest.NewRequest(http.MethodGet, "/app/api/form-data", nil)
	w := httptest.NewRecorder()

	FormData(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestFormDataReturnsLookupCollections(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	seedWorkLogMasters(t, db, 1)

	other := models.Field{OwnerID: 2, Name: "別圃場"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create foreign field: %v", err)
	}

	req := apiRequest(t, sm, http.MethodGet, "/app/api/form-data", "", 1)
	w := httptest.NewRecorder()

	FormData(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp formDataResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.WorkTypes) != len(models.WorkTypes()) {
		t.Fatalf("expected full work type list, got %v", resp.WorkTypes)
	}
	if len(resp.Fields) != 1 {
		t.Fatalf("expected owner-scoped fields, got %d", len(resp.Fields))
	}
	if len(resp.Workers) != 1 {
		t.Fatalf("expected worker roster, got %d", len(resp.Workers))
	}
	if len(resp.Fertilizers) != 1 {
		t.Fatalf("expected fertilizers, got %d", len(resp.Fertilizers))
	}
}
