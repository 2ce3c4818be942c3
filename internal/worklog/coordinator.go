package worklog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	applog "agrilog/internal/log"
	"agrilog/models"
)

// Coordinator is the sole writer of work logs and their derived
// records. A save cycle runs in sequential stages: the primary record
// write, then (on update) the derived-record removal, then the
// derived-record recreation. The store offers no cross-record
// transaction, so a failure between stages can leave a primary record
// without derived counterparts; the failure is reported as a
// persistence error either way.
type Coordinator struct {
	db *gorm.DB
}

func NewCoordinator(database *gorm.DB) *Coordinator {
	return &Coordinator{db: database}
}

// Create persists a new work log from a validated draft and writes the
// derived record for its active work type. Returns the generated
// identifier.
func (c *Coordinator) Create(ctx context.Context, owner Owner, draft Draft, refs *ReferenceData) (uint, error) {
	if c.db == nil {
		return 0, fmt.Errorf("%w: %v", ErrSaveFailed, gorm.ErrInvalidDB)
	}

	record := buildWorkLog(owner, draft, refs)
	if err := c.db.WithContext(ctx).Create(&record).Error; err != nil {
		applog.Error(ctx, "work log create failed", "error", err, "owner", owner.ID)
		return 0, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if err := c.createDerived(ctx, record, refs); err != nil {
		applog.Error(ctx, "derived record create failed after primary write", "error", err, "workLogID", record.ID)
		return 0, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	return record.ID, nil
}

// Update overwrites an existing work log in place with the full field
// set built from the draft. Payload columns outside the active work
// type are written as NULL so a work-type change clears the previous
// payload. It then replaces the derived record set: every derived
// record linked to the identifier is removed before the set matching
// the new draft is recreated with fresh identifiers and timestamps.
func (c *Coordinator) Update(ctx context.Context, id uint, owner Owner, draft Draft, refs *ReferenceData) error {
	if c.db == nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, gorm.ErrInvalidDB)
	}

	record := buildWorkLog(owner, draft, refs)
	record.ID = id

	result := c.db.WithContext(ctx).Omit("created_at").Save(&record)
	if result.Error != nil {
		applog.Error(ctx, "work log update failed", "error", result.Error, "id", id)
		return fmt.Errorf("%w: %v", ErrSaveFailed, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	if err := c.RemoveDerived(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if err := c.createDerived(ctx, record, refs); err != nil {
		applog.Error(ctx, "derived record recreate failed after primary update", "error", err, "workLogID", id)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	return nil
}

// Delete removes every derived record linked to the work log, then the
// work log itself.
func (c *Coordinator) Delete(ctx context.Context, id uint) error {
	if c.db == nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, gorm.ErrInvalidDB)
	}

	if err := c.RemoveDerived(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if err := c.db.WithContext(ctx).Delete(&models.WorkLog{}, id).Error; err != nil {
		applog.Error(ctx, "work log delete failed", "error", err, "id", id)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	return nil
}

// createDerived writes the derived record for the record's active work
// type. Work types without a derived collection produce no writes. The
// applicable writes are fired concurrently and jointly awaited.
func (c *Coordinator) createDerived(ctx context.Context, record models.WorkLog, refs *ReferenceData) error {
	var writes []func(context.Context) error

	switch record.WorkType {
	case models.WorkTypeFertilizing:
		use := buildFertilizerUse(record, refs)
		writes = append(writes, func(ctx context.Context) error {
			return c.db.WithContext(ctx).Create(&use).Error
		})
	case models.WorkTypeSeeding:
		use := buildSeedUse(record, refs)
		writes = append(writes, func(ctx context.Context) error {
			return c.db.WithContext(ctx).Create(&use).Error
		})
	case models.WorkTypePestControl:
		use := buildPesticideUse(record, refs)
		writes = append(writes, func(ctx context.Context) error {
			return c.db.WithContext(ctx).Create(&use).Error
		})
	}

	if len(writes) == 0 {
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, write := range writes {
		write := write
		group.Go(func() error {
			return write(groupCtx)
		})
	}
	return group.Wait()
}

// buildWorkLog assembles the full primary record from the draft.
// Display names are resolved against the supplied lookup snapshot; a
// reference with no match resolves to an empty name, never an error.
// Only the active work type's payload columns are populated; the rest
// stay nil and are persisted as NULL.
func buildWorkLog(owner Owner, draft Draft, refs *ReferenceData) models.WorkLog {
	record := models.WorkLog{
		OwnerID:     owner.ID,
		Date:        strings.TrimSpace(draft.Date),
		WorkType:    draft.WorkType,
		Details:     draft.Details,
		WorkerIDs:   []uint{},
		WorkerNames: []string{},
	}

	record.FieldID = parseUintPtr(draft.FieldID)
	if record.FieldID != nil && refs != nil {
		for _, field := range refs.Fields {
			if field.ID == *record.FieldID {
				record.FieldName = field.Name
				break
			}
		}
	}

	for _, raw := range draft.WorkerIDs {
		id, ok := parseUintValue(raw)
		if !ok {
			continue
		}
		record.WorkerIDs = append(record.WorkerIDs, id)
		if refs == nil {
			continue
		}
		for _, user := range refs.Users {
			if user.ID == id {
				record.WorkerNames = append(record.WorkerNames, user.Name)
				break
			}
		}
	}

	if hours, ok := parseFloatValue(draft.WorkHours); ok {
		record.WorkHours = hours
	}
	record.HarvestAmount = parseFloatPtr(draft.HarvestAmount)
	record.WasteAmount = parseFloatPtr(draft.WasteAmount)

	switch draft.WorkType {
	case models.WorkTypeFertilizing:
		record.FertilizerID = parseUintPtr(draft.FertilizerID)
		record.FertilizerAmount = parseFloatPtr(draft.FertilizerAmount)
		record.FertilizerUnit = stringPtr(draft.FertilizerUnit)
		record.FertilizerMethod = stringPtr(draft.FertilizerMethod)
	case models.WorkTypeSeeding:
		record.SeedID = parseUintPtr(draft.SeedID)
		record.SeedAmount = parseFloatPtr(draft.SeedAmount)
		record.SeedMethod = stringPtr(draft.SeedMethod)
	case models.WorkTypePestControl:
		record.PesticideID = parseUintPtr(draft.PesticideID)
		record.TargetPest = stringPtr(draft.TargetPest)
		record.DilutionRate = parseFloatPtr(draft.DilutionRate)
		record.PesticideAmount = parseFloatPtr(draft.PesticideAmount)
		record.PesticideMethod = stringPtr(draft.PesticideMethod)
		record.Weather = stringPtr(draft.Weather)
		record.Temperature = parseFloatPtr(draft.Temperature)
		record.WindSpeed = parseFloatPtr(draft.WindSpeed)
	}

	return record
}

// buildFertilizerUse snapshots the fertilizer master's display name
// and nutrient composition at write time. The copies do not follow
// later edits to the master.
func buildFertilizerUse(record models.WorkLog, refs *ReferenceData) models.FertilizerUse {
	use := models.FertilizerUse{
		WorkLogID:    record.ID,
		OwnerID:      record.OwnerID,
		Date:         record.Date,
		FieldName:    record.FieldName,
		FertilizerID: record.FertilizerID,
		Amount:       record.FertilizerAmount,
		Unit:         stringPtrValue(record.FertilizerUnit),
		Method:       stringPtrValue(record.FertilizerMethod),
	}

	if record.FertilizerID != nil && refs != nil {
		for _, fertilizer := range refs.Fertilizers {
			if fertilizer.ID == *record.FertilizerID {
				use.FertilizerName = fertilizer.Name
				nitrogen := fertilizer.NitrogenContent
				phosphorus := fertilizer.PhosphorusContent
				potassium := fertilizer.PotassiumContent
				use.Nitrogen = &nitrogen
				use.Phosphorus = &phosphorus
				use.Potassium = &potassium
				break
			}
		}
	}

	return use
}

func buildSeedUse(record models.WorkLog, refs *ReferenceData) models.SeedUse {
	use := models.SeedUse{
		WorkLogID: record.ID,
		OwnerID:   record.OwnerID,
		Date:      record.Date,
		FieldName: record.FieldName,
		SeedID:    record.SeedID,
		Amount:    record.SeedAmount,
		Method:    stringPtrValue(record.SeedMethod),
	}

	if record.SeedID != nil && refs != nil {
		for _, seed := range refs.Seeds {
			if seed.ID == *record.SeedID {
				use.SeedName = seed.Name
				break
			}
		}
	}

	return use
}

func buildPesticideUse(record models.WorkLog, refs *ReferenceData) models.PesticideUse {
	use := models.PesticideUse{
		WorkLogID:    record.ID,
		OwnerID:      record.OwnerID,
		Date:         record.Date,
		FieldName:    record.FieldName,
		PesticideID:  record.PesticideID,
		TargetPest:   stringPtrValue(record.TargetPest),
		DilutionRate: record.DilutionRate,
		Amount:       record.PesticideAmount,
		Method:       stringPtrValue(record.PesticideMethod),
		Weather:      stringPtrValue(record.Weather),
		Temperature:  record.Temperature,
		WindSpeed:    record.WindSpeed,
	}

	if record.PesticideID != nil && refs != nil {
		for _, pesticide := range refs.Pesticides {
			if pesticide.ID == *record.PesticideID {
				use.PesticideName = pesticide.Name
				break
			}
		}
	}

	return use
}

func parseUintValue(value string) (uint, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(parsed), true
}

func parseUintPtr(value string) *uint {
	parsed, ok := parseUintValue(value)
	if !ok {
		return nil
	}
	return &parsed
}

func parseFloatValue(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// parseFloatPtr maps blank or non-numeric form values to nil so they
// are persisted as NULL, never as zero.
func parseFloatPtr(value string) *float64 {
	parsed, ok := parseFloatValue(value)
	if !ok {
		return nil
	}
	return &parsed
}

// stringPtr maps blank form values to nil so they are persisted as
// NULL.
func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
