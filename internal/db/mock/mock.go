package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrilog/internal/db"
	applog "agrilog/internal/log"
	"agrilog/models"
)

// New returns an in-memory sqlite database seeded with a representative
// farm dataset: one owner, two workers, fields, the lookup masters, and
// one fertilizing work log with its derived record.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:agrilog-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte("hatake"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := &models.User{
		Name:         "佐藤 太郎",
		Email:        "taro@agrilog.app",
		PasswordHash: string(password),
	}
	if err := database.WithContext(ctx).Create(owner).Error; err != nil {
		return err
	}

	worker := &models.User{
		Name:         "佐藤 花子",
		Email:        "hanako@agrilog.app",
		PasswordHash: string(password),
	}
	if err := database.WithContext(ctx).Create(worker).Error; err != nil {
		return err
	}

	north := models.Field{OwnerID: owner.ID, Name: "北圃場", Area: 12.5, AreaUnit: "a", Location: "本田北側", Crop: "キャベツ"}
	south := models.Field{OwnerID: owner.ID, Name: "南圃場", Area: 8.0, AreaUnit: "a", Location: "用水路沿い", Crop: "ほうれん草"}
	for _, field := range []*models.Field{&north, &south} {
		if err := database.WithContext(ctx).Create(field).Error; err != nil {
			return err
		}
	}

	fertilizer := models.Fertilizer{
		OwnerID:           owner.ID,
		Name:              "化成肥料8-8-8",
		Maker:             "全農",
		NitrogenContent:   8,
		PhosphorusContent: 8,
		PotassiumContent:  8,
	}
	if err := database.WithContext(ctx).Create(&fertilizer).Error; err != nil {
		return err
	}

	seedMaster := models.Seed{OwnerID: owner.ID, Name: "キャベツ 彩音", Variety: "彩音", Maker: "タキイ種苗"}
	if err := database.WithContext(ctx).Create(&seedMaster).Error; err != nil {
		return err
	}

	pesticide := models.Pesticide{
		OwnerID:            owner.ID,
		Name:               "アファーム乳剤",
		RegistrationNumber: "第18809号",
		ActiveIngredient:   "エマメクチン安息香酸塩",
		Type:               "殺虫剤",
	}
	if err := database.WithContext(ctx).Create(&pesticide).Error; err != nil {
		return err
	}

	amount := 20.0
	unit := "kg"
	method := "全面散布"
	workLog := models.WorkLog{
		OwnerID:          owner.ID,
		Date:             "2024-04-10",
		FieldID:          &north.ID,
		FieldName:        north.Name,
		WorkType:         models.WorkTypeFertilizing,
		WorkerIDs:        []uint{owner.ID, worker.ID},
		WorkerNames:      []string{owner.Name, worker.Name},
		Details:          "元肥施用",
		WorkHours:        2.5,
		FertilizerID:     &fertilizer.ID,
		FertilizerAmount: &amount,
		FertilizerUnit:   &unit,
		FertilizerMethod: &method,
	}
	if err := database.WithContext(ctx).Create(&workLog).Error; err != nil {
		return err
	}

	nitrogen := fertilizer.NitrogenContent
	phosphorus := fertilizer.PhosphorusContent
	potassium := fertilizer.PotassiumContent
	use := models.FertilizerUse{
		WorkLogID:      workLog.ID,
		OwnerID:        owner.ID,
		Date:           workLog.Date,
		FieldName:      workLog.FieldName,
		FertilizerID:   &fertilizer.ID,
		FertilizerName: fertilizer.Name,
		Amount:         &amount,
		Unit:           unit,
		Method:         method,
		Nitrogen:       &nitrogen,
		Phosphorus:     &phosphorus,
		Potassium:      &potassium,
	}
	if err := database.WithContext(ctx).Create(&use).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
