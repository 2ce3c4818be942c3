package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"

	applog "agrilog/internal/log"
	"agrilog/models"
)

const reportSheet = "Sheet1"

// ComplianceReport streams one of the derived record collections as an
// xlsx workbook. The report reads the snapshots stored on the derived
// records themselves, so rows reflect the masters as they were at
// write time.
func ComplianceReport(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "report request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		applog.Debug(r.Context(), "report request missing authenticated user")
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	kind := strings.TrimPrefix(r.URL.Path, "/app/api/reports/")
	kind = strings.TrimSuffix(kind, ".xlsx")

	var (
		file *excelize.File
		err  error
	)
	switch kind {
	case "fertilizer-use":
		file, err = fertilizerUseWorkbook(r, userID)
	case "seed-use":
		file, err = seedUseWorkbook(r, userID)
	case "pesticide-use":
		file, err = pesticideUseWorkbook(r, userID)
	default:
		applog.Debug(r.Context(), "unknown report kind", "kind", kind)
		http.NotFound(w, r)
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to build report", "error", err, "kind", kind)
		writeJSONError(w, http.StatusInternalServerError, "unable to build report")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", kind))
	if err := file.Write(w); err != nil {
		applog.Error(r.Context(), "failed to stream report", "error", err, "kind", kind)
	}
}

func fertilizerUseWorkbook(r *http.Request, userID uint) (*excelize.File, error) {
	var uses []models.FertilizerUse
	err := database.WithContext(r.Context()).
		Where("owner_id = ?", userID).
		Order("date asc, id asc").
		Find(&uses).Error
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	writeHeaderRow(file, "年月日", "圃場", "肥料名", "施用量", "単位", "施用方法", "窒素(%)", "りん酸(%)", "加里(%)")
	for i, use := range uses {
		writeRow(file, i+2,
			use.Date,
			use.FieldName,
			use.FertilizerName,
			floatCell(use.Amount),
			use.Unit,
			use.Method,
			floatCell(use.Nitrogen),
			floatCell(use.Phosphorus),
			floatCell(use.Potassium),
		)
	}
	return file, nil
}

func seedUseWorkbook(r *http.Request, userID uint) (*excelize.File, error) {
	var uses []models.SeedUse
	err := database.WithContext(r.Context()).
		Where("owner_id = ?", userID).
		Order("date asc, id asc").
		Find(&uses).Error
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	writeHeaderRow(file, "年月日", "圃場", "種苗名", "播種量", "播種方法")
	for i, use := range uses {
		writeRow(file, i+2,
			use.Date,
			use.FieldName,
			use.SeedName,
			floatCell(use.Amount),
			use.Method,
		)
	}
	return file, nil
}

func pesticideUseWorkbook(r *http.Request, userID uint) (*excelize.File, error) {
	var uses []models.PesticideUse
	err := database.WithContext(r.Context()).
		Where("owner_id = ?", userID).
		Order("date asc, id asc").
		Find(&uses).Error
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	writeHeaderRow(file, "年月日", "圃場", "農薬名", "対象病害虫", "希釈倍率", "散布量", "散布方法", "天候", "気温(℃)", "風速(m/s)")
	for i, use := range uses {
		writeRow(file, i+2,
			use.Date,
			use.FieldName,
			use.PesticideName,
			use.TargetPest,
			floatCell(use.DilutionRate),
			floatCell(use.Amount),
			use.Method,
			use.Weather,
			floatCell(use.Temperature),
			floatCell(use.WindSpeed),
		)
	}
	return file, nil
}

func writeHeaderRow(file *excelize.File, headings ...string) {
	for i, heading := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			continue
		}
		_ = file.SetCellValue(reportSheet, cell, heading)
	}
}

func writeRow(file *excelize.File, row int, values ...any) {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = file.SetCellValue(reportSheet, cell, value)
	}
}

// floatCell keeps NULL columns as empty cells instead of zeroes.
func floatCell(value *float64) any {
	if value == nil {
		return ""
	}
	return *value
}
