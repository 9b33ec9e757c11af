package features

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Positions of the categorical features within the model input.
const (
	riverProximityIndex = 3
	localityRankIndex   = 8
)

// ModelOrder returns the feature names in the order the model consumes them:
// the numeric features in catalog order with RIVER_PROXIMITY inserted after
// INDUSTRIAL_AREA and LOCALITY_RANK after EMPLOYMENT_DISTANCE.
func (c Catalog) ModelOrder() []string {
	names := make([]string, 0, len(c.Ranges)+2)
	for _, r := range c.Ranges {
		names = append(names, r.Name)
	}
	names = insertAt(names, riverProximityIndex, RiverProximity)
	names = insertAt(names, localityRankIndex, LocalityRank)
	return names
}

// Vector converts submitted form values into the model input. Missing
// features take their defaults; present values may be numbers or numeric
// strings. Numeric features parse as floats and categorical features as
// integers, so "1.5" is rejected for a selector.
func (c Catalog) Vector(values map[string]interface{}) ([]float64, error) {
	vector := make([]float64, 0, len(c.Ranges)+2)
	for _, r := range c.Ranges {
		raw, ok := values[r.Name]
		if !ok {
			vector = append(vector, r.Default)
			continue
		}
		if raw == nil {
			return nil, fmt.Errorf("invalid value for %s: null", r.Name)
		}
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", r.Name, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid value for %s: %v is not finite", r.Name, raw)
		}
		vector = append(vector, v)
	}

	river, err := c.categoricalValue(values, RiverProximity)
	if err != nil {
		return nil, err
	}
	rank, err := c.categoricalValue(values, LocalityRank)
	if err != nil {
		return nil, err
	}

	vector = insertFloatAt(vector, riverProximityIndex, float64(river))
	vector = insertFloatAt(vector, localityRankIndex, float64(rank))
	return vector, nil
}

func (c Catalog) categoricalValue(values map[string]interface{}, name string) (int, error) {
	cat, _ := c.Categorical(name)
	raw, ok := values[name]
	if !ok {
		return cat.Default, nil
	}
	if raw == nil {
		return 0, fmt.Errorf("invalid value for %s: null", name)
	}
	// Strings are decimal integers; cast would read "010" as octal.
	if str, ok := raw.(string); ok {
		v, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return 0, fmt.Errorf("invalid value for %s: %q is not an integer", name, str)
		}
		return v, nil
	}
	if f, ok := raw.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return 0, fmt.Errorf("invalid value for %s: %v is not finite", name, f)
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	return v, nil
}

func insertAt(s []string, idx int, v string) []string {
	if idx > len(s) {
		idx = len(s)
	}
	s = append(s, "")
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

func insertFloatAt(s []float64, idx int, v float64) []float64 {
	if idx > len(s) {
		idx = len(s)
	}
	s = append(s, 0)
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}
