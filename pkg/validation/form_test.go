package validation

import (
	"strings"
	"testing"

	"github.com/iwvelando/house-price/internal/features"
)

func TestValidateSliderValue(t *testing.T) {
	crime, _ := features.Default().Range(features.CrimeRate)

	tests := []struct {
		name        string
		value       string
		expectWarn  bool
		expectError bool
	}{
		{name: "Within range", value: "1.2"},
		{name: "At lower bound", value: "0"},
		{name: "At upper bound", value: "10"},
		{name: "Above range", value: "12.5", expectWarn: true},
		{name: "Below range", value: "-1", expectWarn: true},
		{name: "Not a number", value: "high", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning, err := ValidateSliderValue(crime, tt.value)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q", tt.value)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if tt.expectWarn && warning == "" {
				t.Errorf("Expected warning for %q", tt.value)
			}
			if !tt.expectWarn && warning != "" {
				t.Errorf("Unexpected warning: %s", warning)
			}
		})
	}
}

func TestValidateSelection(t *testing.T) {
	rank, _ := features.Default().Categorical(features.LocalityRank)

	if w := ValidateSelection(rank, "2"); w != "" {
		t.Errorf("Unexpected warning: %s", w)
	}
	for _, value := range []string{"0", "6", "1.5", "premium"} {
		if w := ValidateSelection(rank, value); w == "" {
			t.Errorf("Expected warning for %q", value)
		}
	}
}

func TestValidateFormValues(t *testing.T) {
	warnings := ValidateFormValues(features.Default(), map[string]string{
		features.CrimeRate:      "1.0",
		features.GreenArea:      "150",
		features.AvgRooms:       "many",
		features.RiverProximity: "2",
		features.LocalityRank:   "1",
		"UNKNOWN":               "7",
	})

	if len(warnings) != 3 {
		t.Fatalf("Expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], features.GreenArea) {
		t.Errorf("Expected GREEN_AREA warning first, got %s", warnings[0])
	}
	if !strings.Contains(warnings[1], features.AvgRooms) {
		t.Errorf("Expected AVG_ROOMS warning second, got %s", warnings[1])
	}
	if !strings.Contains(warnings[2], features.RiverProximity) {
		t.Errorf("Expected RIVER_PROXIMITY warning last, got %s", warnings[2])
	}
}
