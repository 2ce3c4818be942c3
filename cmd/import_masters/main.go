package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"agrilog/internal/config"
	"agrilog/internal/db"
	"agrilog/models"
)

// Master sheets recognized in the workbook. Each maps the Japanese
// header row used by the distributed template.
const (
	sheetFields      = "圃場"
	sheetFertilizers = "肥料"
	sheetSeeds       = "種苗"
	sheetPesticides  = "農薬"
)

func main() {
	workbookPath := "masters.xlsx"
	if len(os.Args) > 1 {
		workbookPath = os.Args[1]
	}

	if err := run(workbookPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(workbookPath string) error {
	if strings.TrimSpace(workbookPath) == "" {
		return fmt.Errorf("workbook path must not be empty")
	}

	if _, err := os.Stat(workbookPath); err != nil {
		return fmt.Errorf("locate workbook: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	ownerID, err := resolveImportOwner(database)
	if err != nil {
		return fmt.Errorf("resolve owner: %w", err)
	}

	imported, err := importWorkbook(database, ownerID, workbookPath)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d master records for owner %d\n", imported, ownerID)
	return nil
}

// resolveImportOwner picks the account the imported masters belong to:
// the user named by AGRILOG_OWNER_EMAIL, or the first registered user.
func resolveImportOwner(database *gorm.DB) (uint, error) {
	var user models.User

	if email := strings.TrimSpace(os.Getenv("AGRILOG_OWNER_EMAIL")); email != "" {
		err := database.Where("lower(email) = ?", strings.ToLower(email)).First(&user).Error
		if err != nil {
			return 0, fmt.Errorf("find owner %q: %w", email, err)
		}
		return user.ID, nil
	}

	if err := database.Order("id asc").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("no users registered, create an account first")
		}
		return 0, err
	}
	return user.ID, nil
}

// importWorkbook upserts every master row in the workbook, keyed by
// owner and name. Sheets absent from the workbook are skipped.
func importWorkbook(database *gorm.DB, ownerID uint, path string) (int, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	imported := 0

	count, err := importSheet(file, database, sheetFields, func(row rowReader) error {
		name := row.value("名称")
		if name == "" {
			return nil
		}
		field := models.Field{
			OwnerID:  ownerID,
			Name:     name,
			Area:     row.number("面積"),
			AreaUnit: row.value("単位"),
			Location: row.value("場所"),
			Crop:     row.value("作付"),
		}
		return upsertByName(database, &models.Field{}, ownerID, name, &field, map[string]any{
			"area":      field.Area,
			"area_unit": field.AreaUnit,
			"location":  field.Location,
			"crop":      field.Crop,
		})
	})
	if err != nil {
		return imported, err
	}
	imported += count

	count, err = importSheet(file, database, sheetFertilizers, func(row rowReader) error {
		name := row.value("名称")
		if name == "" {
			return nil
		}
		fertilizer := models.Fertilizer{
			OwnerID:           ownerID,
			Name:              name,
			Maker:             row.value("メーカー"),
			NitrogenContent:   row.number("窒素"),
			PhosphorusContent: row.number("りん酸"),
			PotassiumContent:  row.number("加里"),
		}
		return upsertByName(database, &models.Fertilizer{}, ownerID, name, &fertilizer, map[string]any{
			"maker":              fertilizer.Maker,
			"nitrogen_content":   fertilizer.NitrogenContent,
			"phosphorus_content": fertilizer.PhosphorusContent,
			"potassium_content":  fertilizer.PotassiumContent,
		})
	})
	if err != nil {
		return imported, err
	}
	imported += count

	count, err = importSheet(file, database, sheetSeeds, func(row rowReader) error {
		name := row.value("名称")
		if name == "" {
			return nil
		}
		seed := models.Seed{
			OwnerID: ownerID,
			Name:    name,
			Variety: row.value("品種"),
			Maker:   row.value("メーカー"),
		}
		return upsertByName(database, &models.Seed{}, ownerID, name, &seed, map[string]any{
			"variety": seed.Variety,
			"maker":   seed.Maker,
		})
	})
	if err != nil {
		return imported, err
	}
	imported += count

	count, err = importSheet(file, database, sheetPesticides, func(row rowReader) error {
		name := row.value("名称")
		if name == "" {
			return nil
		}
		pesticide := models.Pesticide{
			OwnerID:            ownerID,
			Name:               name,
			RegistrationNumber: row.value("登録番号"),
			ActiveIngredient:   row.value("有効成分"),
			Type:               row.value("種別"),
		}
		return upsertByName(database, &models.Pesticide{}, ownerID, name, &pesticide, map[string]any{
			"registration_number": pesticide.RegistrationNumber,
			"active_ingredient":   pesticide.ActiveIngredient,
			"type":                pesticide.Type,
		})
	})
	if err != nil {
		return imported, err
	}
	imported += count

	return imported, nil
}

// rowReader resolves cell values by header name for one data row.
type rowReader struct {
	columns map[string]int
	cells   []string
}

func (r rowReader) value(header string) string {
	index, ok := r.columns[header]
	if !ok || index >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[index])
}

func (r rowReader) number(header string) float64 {
	parsed, err := strconv.ParseFloat(r.value(header), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func importSheet(file *excelize.File, database *gorm.DB, sheet string, apply func(rowReader) error) (int, error) {
	index, err := file.GetSheetIndex(sheet)
	if err != nil || index < 0 {
		return 0, nil
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return 0, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columns[strings.TrimSpace(header)] = i
	}

	imported := 0
	for _, cells := range rows[1:] {
		reader := rowReader{columns: columns, cells: cells}
		if reader.value("名称") == "" {
			continue
		}
		if err := apply(reader); err != nil {
			return imported, fmt.Errorf("import sheet %q: %w", sheet, err)
		}
		imported++
	}
	return imported, nil
}

// upsertByName creates the record or refreshes the existing one with
// the same owner and name, so reruns of the importer stay idempotent.
func upsertByName(database *gorm.DB, model any, ownerID uint, name string, record any, updates map[string]any) error {
	err := database.Where("owner_id = ? AND name = ?", ownerID, name).First(model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Create(record).Error
	}
	if err != nil {
		return err
	}
	return database.Model(model).Updates(updates).Error
}
