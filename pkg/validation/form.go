package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/house-price/internal/features"
)

// ValidateSliderValue checks a numeric form value against its slider range.
// Values outside the range produce a warning; the server still accepts them.
func ValidateSliderValue(r features.Range, value string) (string, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", fmt.Errorf("%s value %q is not a number", r.Name, value)
	}

	if !r.Contains(v) {
		return fmt.Sprintf("%s value %s is outside the slider range [%s, %s]",
			r.Name, value, formatBound(r.Min), formatBound(r.Max)), nil
	}

	return "", nil
}

// ValidateSelection checks a categorical form value against its options.
func ValidateSelection(c features.Categorical, value string) string {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err == nil {
		for _, o := range c.Options {
			if o.Value == n {
				return ""
			}
		}
	}
	return fmt.Sprintf("%s value %q is not one of the listed options", c.Name, value)
}

// ValidateFormValues validates every known value and returns warnings
func ValidateFormValues(catalog features.Catalog, values map[string]string) []string {
	var warnings []string

	for _, r := range catalog.Ranges {
		value, ok := values[r.Name]
		if !ok {
			continue
		}
		warning, err := ValidateSliderValue(r, value)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	for _, c := range catalog.Categoricals {
		value, ok := values[c.Name]
		if !ok {
			continue
		}
		if warning := ValidateSelection(c, value); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
