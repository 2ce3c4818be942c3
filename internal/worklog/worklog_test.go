package worklog

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrilog/internal/db"
	"agrilog/models"
)

// openTestDatabase returns a migrated in-memory database private to the
// calling test.
func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}

	return database
}

// seedMasters creates one master of each kind for the owner and returns
// the lookup snapshot built from them.
func seedMasters(t *testing.T, database *gorm.DB, ownerID uint) *ReferenceData {
	t.Helper()

	field := models.Field{OwnerID: ownerID, Name: "North Field", Area: 10, AreaUnit: "a"}
	if err := database.Create(&field).Error; err != nil {
		t.Fatalf("create field: %v", err)
	}

	worker := models.User{Name: "Taro", Email: fmt.Sprintf("%s@agrilog.test", t.Name()), PasswordHash: "x"}
	if err := database.Create(&worker).Error; err != nil {
		t.Fatalf("create worker: %v", err)
	}

	fertilizer := models.Fertilizer{OwnerID: ownerID, Name: "NPK-1", NitrogenContent: 14, PhosphorusContent: 10, PotassiumContent: 13}
	if err := database.Create(&fertilizer).Error; err != nil {
		t.Fatalf("create fertilizer: %v", err)
	}

	seed := models.Seed{OwnerID: ownerID, Name: "Spinach A", Variety: "A"}
	if err := database.Create(&seed).Error; err != nil {
		t.Fatalf("create seed: %v", err)
	}

	pesticide := models.Pesticide{OwnerID: ownerID, Name: "Spray-X", Type: "殺虫剤"}
	if err := database.Create(&pesticide).Error; err != nil {
		t.Fatalf("create pesticide: %v", err)
	}

	return &ReferenceData{
		Fields:      []models.Field{field},
		Users:       []models.User{worker},
		Fertilizers: []models.Fertilizer{fertilizer},
		Seeds:       []models.Seed{seed},
		Pesticides:  []models.Pesticide{pesticide},
	}
}
