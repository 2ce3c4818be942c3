package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"agrilog/models"
)

func TestComplianceReportRequiresAuthentication(t *testing.T) {
	_, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	req := httptest.NewRequest(http.MethodGet, "/app/api/reports/fertilizer-use.xlsx", nil)
	w := httptest.NewRecorder()

	ComplianceReport(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestComplianceReportUnknownKind(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	req := apiRequest(t, sm, http.MethodGet, "/app/api/reports/bogus.xlsx", "", 1)
	w := httptest.NewRecorder()

	ComplianceReport(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestFertilizerUseReport(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	amount := 20.0
	nitrogen := 8.0
	use := models.FertilizerUse{
		WorkLogID:      1,
		OwnerID:        1,
		Date:           "2024-04-10",
		FieldName:      "北圃場",
		FertilizerName: "化成肥料8-8-8",
		Amount:         &amount,
		Unit:           "kg",
		Method:         "全面散布",
		Nitrogen:       &nitrogen,
	}
	if err := db.Create(&use).Error; err != nil {
		t.Fatalf("create fertilizer use: %v", err)
	}
	foreign := models.FertilizerUse{WorkLogID: 2, OwnerID: 2, Date: "2024-04-11", FertilizerName: "他人の肥料"}
	if err := db.Create(&foreign).Error; err != nil {
		t.Fatalf("create foreign fertilizer use: %v", err)
	}

	req := apiRequest(t, sm, http.MethodGet, "/app/api/reports/fertilizer-use.xlsx", "", 1)
	w := httptest.NewRecorder()

	ComplianceReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=fertilizer-use.xlsx" {
		t.Fatalf("unexpected content disposition %q", cd)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer workbook.Close()

	name, err := workbook.GetCellValue(reportSheet, "C2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if name != "化成肥料8-8-8" {
		t.Fatalf("expected snapshot fertilizer name, got %q", name)
	}

	rows, err := workbook.GetRows(reportSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one owner-scoped row, got %d rows", len(rows))
	}
}

func TestPesticideUseReport(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	db, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	dilution := 2000.0
	use := models.PesticideUse{
		WorkLogID:     1,
		OwnerID:       1,
		Date:          "2024-05-01",
		FieldName:     "南圃場",
		PesticideName: "アファーム乳剤",
		TargetPest:    "コナガ",
		DilutionRate:  &dilution,
		Weather:       "晴れ",
	}
	if err := db.Create(&use).Error; err != nil {
		t.Fatalf("create pesticide use: %v", err)
	}

	req := apiRequest(t, sm, http.MethodGet, "/app/api/reports/pesticide-use.xlsx", "", 1)
	w := httptest.NewRecorder()

	ComplianceReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer workbook.Close()

	pest, err := workbook.GetCellValue(reportSheet, "D2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if pest != "コナガ" {
		t.Fatalf("expected target pest, got %q", pest)
	}

	temperature, err := workbook.GetCellValue(reportSheet, "I2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if temperature != "" {
		t.Fatalf("expected empty cell for NULL temperature, got %q", temperature)
	}
}
