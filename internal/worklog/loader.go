package worklog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	applog "agrilog/internal/log"
	"agrilog/models"
)

// Loader fetches the reference data the work-log form needs and maps
// existing records into edit drafts.
type Loader struct {
	db *gorm.DB
}

func NewLoader(database *gorm.DB) *Loader {
	return &Loader{db: database}
}

// Load issues the five lookup queries concurrently, each scoped to the
// owner except the global worker roster. Any single failure fails the
// whole load with the aggregate ErrLoadFailed; partial results are
// discarded, never exposed. The passed context cancels in-flight
// queries when the caller goes away.
func (l *Loader) Load(ctx context.Context, ownerID uint) (*ReferenceData, error) {
	if l.db == nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, gorm.ErrInvalidDB)
	}

	refs := &ReferenceData{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return l.db.WithContext(groupCtx).
			Where("owner_id = ?", ownerID).
			Order("name asc").
			Find(&refs.Fields).Error
	})
	group.Go(func() error {
		return l.db.WithContext(groupCtx).
			Order("id asc").
			Find(&refs.Users).Error
	})
	group.Go(func() error {
		return l.db.WithContext(groupCtx).
			Where("owner_id = ?", ownerID).
			Order("name asc").
			Find(&refs.Fertilizers).Error
	})
	group.Go(func() error {
		return l.db.WithContext(groupCtx).
			Where("owner_id = ?", ownerID).
			Order("name asc").
			Find(&refs.Seeds).Error
	})
	group.Go(func() error {
		return l.db.WithContext(groupCtx).
			Where("owner_id = ?", ownerID).
			Order("name asc").
			Find(&refs.Pesticides).Error
	})

	if err := group.Wait(); err != nil {
		applog.Error(ctx, "reference data load failed", "error", err, "owner", ownerID)
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	return refs, nil
}

// LoadExisting fetches one work log by identifier and returns its form
// draft. An unresolved identifier yields ErrNotFound so the caller can
// leave the edit flow.
func (l *Loader) LoadExisting(ctx context.Context, id uint) (Draft, error) {
	if l.db == nil {
		return NewDraft(), fmt.Errorf("%w: %v", ErrLoadFailed, gorm.ErrInvalidDB)
	}

	var record models.WorkLog
	if err := l.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewDraft(), fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		applog.Error(ctx, "work log load failed", "error", err, "id", id)
		return NewDraft(), fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	return DraftFromWorkLog(record), nil
}
