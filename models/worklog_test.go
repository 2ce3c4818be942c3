package models

import "testing"

func TestValidWorkType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"fertilizing", WorkTypeFertilizing, true},
		{"seeding", WorkTypeSeeding, true},
		{"pest control", WorkTypePestControl, true},
		{"harvest", WorkTypeHarvest, true},
		{"unknown", "収量調査", false},
		{"empty", "", false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidWorkType(tt.value); got != tt.want {
				t.Fatalf("ValidWorkType(%q) = %t, want %t", tt.value, got, tt.want)
			}
		})
	}
}

func TestWorkTypesAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for _, workType := range WorkTypes() {
		if _, ok := seen[workType]; ok {
			t.Fatalf("duplicate work type %q", workType)
		}
		seen[workType] = struct{}{}
	}
}
