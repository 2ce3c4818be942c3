package worklog

import (
	"strconv"
	"strings"

	"agrilog/models"
)

// Validate checks a draft against the common rules and the rules of
// its selected work type. Every violated rule is collected so the form
// can show all problems at once; nothing is short-circuited and the
// store is never contacted.
func Validate(draft Draft) []string {
	var violations []string

	if strings.TrimSpace(draft.Date) == "" {
		violations = append(violations, "date is required")
	}
	if strings.TrimSpace(draft.FieldID) == "" {
		violations = append(violations, "field is required")
	}
	if strings.TrimSpace(draft.WorkType) == "" {
		violations = append(violations, "work type is required")
	}
	if len(draft.WorkerIDs) == 0 {
		violations = append(violations, "at least one worker is required")
	}
	if !positiveNumber(draft.WorkHours) {
		violations = append(violations, "work hours must be a number greater than zero")
	}

	switch draft.WorkType {
	case models.WorkTypeFertilizing:
		if strings.TrimSpace(draft.FertilizerID) == "" {
			violations = append(violations, "fertilizer is required")
		}
		if !positiveNumber(draft.FertilizerAmount) {
			violations = append(violations, "fertilizer amount must be a number greater than zero")
		}
		if strings.TrimSpace(draft.FertilizerMethod) == "" {
			violations = append(violations, "application method is required")
		}
	case models.WorkTypeSeeding:
		// Seeding amount is deliberately optional.
		if strings.TrimSpace(draft.SeedID) == "" {
			violations = append(violations, "seed is required")
		}
		if strings.TrimSpace(draft.SeedMethod) == "" {
			violations = append(violations, "seeding method is required")
		}
	case models.WorkTypePestControl:
		if strings.TrimSpace(draft.PesticideID) == "" {
			violations = append(violations, "pesticide is required")
		}
		if strings.TrimSpace(draft.TargetPest) == "" {
			violations = append(violations, "target pest is required")
		}
		if !positiveNumber(draft.DilutionRate) {
			violations = append(violations, "dilution rate must be a number greater than zero")
		}
		if !positiveNumber(draft.PesticideAmount) {
			violations = append(violations, "spray amount must be a number greater than zero")
		}
		if strings.TrimSpace(draft.PesticideMethod) == "" {
			violations = append(violations, "spraying method is required")
		}
		if strings.TrimSpace(draft.Weather) == "" {
			violations = append(violations, "weather is required")
		}
	}

	return violations
}

// positiveNumber reports whether the string form value parses to a
// number greater than zero. Blank and non-numeric values fail; they
// are never treated as zero.
func positiveNumber(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	return parsed > 0
}
