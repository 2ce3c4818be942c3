package worklog

import (
	"fmt"
	"strconv"

	"agrilog/models"
)

// Draft is the mutable form state of one work log. Every field holds
// the string representation the form works with; numeric fields are
// parsed only at validation and write time so that a blank or
// non-numeric entry is never mistaken for zero.
type Draft struct {
	Date      string   `json:"date"`
	FieldID   string   `json:"field_id"`
	WorkType  string   `json:"work_type"`
	WorkerIDs []string `json:"worker_ids"`
	Details   string   `json:"details"`
	WorkHours string   `json:"work_hours"`

	HarvestAmount string `json:"harvest_amount"`
	WasteAmount   string `json:"waste_amount"`

	FertilizerID     string `json:"fertilizer_id"`
	FertilizerAmount string `json:"fertilizer_amount"`
	FertilizerUnit   string `json:"fertilizer_unit"`
	FertilizerMethod string `json:"fertilizer_method"`

	SeedID     string `json:"seed_id"`
	SeedAmount string `json:"seed_amount"`
	SeedMethod string `json:"seed_method"`

	PesticideID     string `json:"pesticide_id"`
	TargetPest      string `json:"target_pest"`
	DilutionRate    string `json:"dilution_rate"`
	PesticideAmount string `json:"pesticide_amount"`
	PesticideMethod string `json:"pesticide_method"`
	Weather         string `json:"weather"`
	Temperature     string `json:"temperature"`
	WindSpeed       string `json:"wind_speed"`
}

// NewDraft returns a draft with every field at its defined empty
// default, so the form always has a complete shape.
func NewDraft() Draft {
	return Draft{WorkerIDs: []string{}}
}

// Reset returns the draft to its defaults, as after a successful
// create.
func (d *Draft) Reset() {
	*d = NewDraft()
}

// Set applies a single field edit by form field name. Worker selection
// has its own operation because it is the only non-string field.
func (d *Draft) Set(field, value string) error {
	slot := d.fieldSlot(field)
	if slot == nil {
		return fmt.Errorf("unknown draft field %q", field)
	}
	*slot = value
	return nil
}

// SelectWorkers replaces the assigned worker selection. Blank entries
// are dropped so the non-empty check in validation stays meaningful.
func (d *Draft) SelectWorkers(ids []string) {
	selected := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		selected = append(selected, id)
	}
	d.WorkerIDs = selected
}

// ApplyTemplate shallow-merges a named template over the draft: every
// recognized field named in the patch is overwritten, including the
// work type, and every field the patch does not name keeps its current
// value. Unrecognized keys are ignored.
func (d *Draft) ApplyTemplate(patch map[string]string) {
	for field, value := range patch {
		if slot := d.fieldSlot(field); slot != nil {
			*slot = value
		}
	}
}

// KnownDraftField reports whether name is a recognized template-patch
// target.
func KnownDraftField(name string) bool {
	d := Draft{}
	return d.fieldSlot(name) != nil
}

func (d *Draft) fieldSlot(field string) *string {
	switch field {
	case "date":
		return &d.Date
	case "field_id":
		return &d.FieldID
	case "work_type":
		return &d.WorkType
	case "details":
		return &d.Details
	case "work_hours":
		return &d.WorkHours
	case "harvest_amount":
		return &d.HarvestAmount
	case "waste_amount":
		return &d.WasteAmount
	case "fertilizer_id":
		return &d.FertilizerID
	case "fertilizer_amount":
		return &d.FertilizerAmount
	case "fertilizer_unit":
		return &d.FertilizerUnit
	case "fertilizer_method":
		return &d.FertilizerMethod
	case "seed_id":
		return &d.SeedID
	case "seed_amount":
		return &d.SeedAmount
	case "seed_method":
		return &d.SeedMethod
	case "pesticide_id":
		return &d.PesticideID
	case "target_pest":
		return &d.TargetPest
	case "dilution_rate":
		return &d.DilutionRate
	case "pesticide_amount":
		return &d.PesticideAmount
	case "pesticide_method":
		return &d.PesticideMethod
	case "weather":
		return &d.Weather
	case "temperature":
		return &d.Temperature
	case "wind_speed":
		return &d.WindSpeed
	default:
		return nil
	}
}

// DraftFromWorkLog maps a stored record back to its form
// representation: nil columns become empty strings, numeric columns
// their decimal string form.
func DraftFromWorkLog(record models.WorkLog) Draft {
	draft := NewDraft()
	draft.Date = record.Date
	draft.FieldID = uintPtrString(record.FieldID)
	draft.WorkType = record.WorkType
	for _, id := range record.WorkerIDs {
		draft.WorkerIDs = append(draft.WorkerIDs, strconv.FormatUint(uint64(id), 10))
	}
	draft.Details = record.Details
	draft.WorkHours = floatString(record.WorkHours)
	draft.HarvestAmount = floatPtrString(record.HarvestAmount)
	draft.WasteAmount = floatPtrString(record.WasteAmount)

	draft.FertilizerID = uintPtrString(record.FertilizerID)
	draft.FertilizerAmount = floatPtrString(record.FertilizerAmount)
	draft.FertilizerUnit = stringPtrValue(record.FertilizerUnit)
	draft.FertilizerMethod = stringPtrValue(record.FertilizerMethod)

	draft.SeedID = uintPtrString(record.SeedID)
	draft.SeedAmount = floatPtrString(record.SeedAmount)
	draft.SeedMethod = stringPtrValue(record.SeedMethod)

	draft.PesticideID = uintPtrString(record.PesticideID)
	draft.TargetPest = stringPtrValue(record.TargetPest)
	draft.DilutionRate = floatPtrString(record.DilutionRate)
	draft.PesticideAmount = floatPtrString(record.PesticideAmount)
	draft.PesticideMethod = stringPtrValue(record.PesticideMethod)
	draft.Weather = stringPtrValue(record.Weather)
	draft.Temperature = floatPtrString(record.Temperature)
	draft.WindSpeed = floatPtrString(record.WindSpeed)

	return draft
}

func uintPtrString(value *uint) string {
	if value == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*value), 10)
}

func floatString(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func floatPtrString(value *float64) string {
	if value == nil {
		return ""
	}
	return floatString(*value)
}

func stringPtrValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
