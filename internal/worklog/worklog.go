// Package worklog implements the composite work-log synchronization
// subsystem: loading the reference data the work-log form needs,
// validating drafts against work-type-specific rules, and keeping the
// primary work-log record consistent with its derived compliance
// records (fertilizer use, seed use, pesticide use) across create,
// update, and delete flows.
package worklog

import (
	"errors"

	"agrilog/models"
)

// Owner identifies the authenticated account operations run under.
// It is always passed explicitly; the package never reads ambient
// session state.
type Owner struct {
	ID   uint
	Name string
}

// ReferenceData is the immutable lookup snapshot loaded once per form
// session. The coordinator resolves display names against it and never
// mutates it.
type ReferenceData struct {
	Fields      []models.Field
	Users       []models.User
	Fertilizers []models.Fertilizer
	Seeds       []models.Seed
	Pesticides  []models.Pesticide
}

var (
	// ErrNotFound reports that an edit target does not resolve. Callers
	// are expected to leave the edit flow instead of showing a broken
	// form.
	ErrNotFound = errors.New("work log not found")

	// ErrLoadFailed is the aggregate failure for reference-data loads.
	// Partial results are never exposed.
	ErrLoadFailed = errors.New("failed to load data")

	// ErrSaveFailed wraps any store failure during a save cycle. The
	// primary write and the derived writes are separate stages, so a
	// derived-stage failure can leave the primary record persisted
	// without its derived counterparts; the error is still reported,
	// never masked.
	ErrSaveFailed = errors.New("failed to save work log")
)
