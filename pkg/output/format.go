// Package output provides utilities for formatting and displaying the feature catalog.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/house-price/internal/features"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, catalog features.Catalog) {
	fmt.Fprintf(w, "--- Numeric features (%d) ---\n", len(catalog.Ranges))
	fmt.Fprintf(w, "Name | Min | Max | Step | Default | Description\n")
	fmt.Fprintf(w, "____ | ___ | ___ | ____ | _______ | ___________\n")
	for _, r := range catalog.Ranges {
		fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s\n", r.Name,
			formatFloat(r.Min), formatFloat(r.Max), formatFloat(r.Step), formatFloat(r.Default),
			describe(catalog, r.Name))
	}

	fmt.Fprintf(w, "\n--- Categorical features (%d) ---\n", len(catalog.Categoricals))
	for _, c := range catalog.Categoricals {
		fmt.Fprintf(w, "%s (default %d): %s\n", c.Name, c.Default, describe(catalog, c.Name))
		for _, o := range c.Options {
			fmt.Fprintf(w, "  %d | %s | %s\n", o.Value, o.Label, o.Description)
		}
	}

	if len(catalog.Localities) > 0 {
		fmt.Fprintf(w, "\n--- Localities (%d) ---\n", len(catalog.Localities))
		for _, l := range catalog.Localities {
			fmt.Fprintf(w, "%s | %s\n", l.Name, l.Description)
		}
	}
}

// CsvFormat outputs in comma-separated value format, one row per numeric
// feature and one per categorical option.
func CsvFormat(w io.Writer, catalog features.Catalog) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"name", "kind", "min", "max", "step", "default", "value", "label", "description"}}

	for _, r := range catalog.Ranges {
		rows = append(rows, []string{
			r.Name, "numeric",
			formatFloat(r.Min), formatFloat(r.Max), formatFloat(r.Step), formatFloat(r.Default),
			"", "", describe(catalog, r.Name),
		})
	}
	for _, c := range catalog.Categoricals {
		for _, o := range c.Options {
			rows = append(rows, []string{
				c.Name, "categorical",
				"", "", "", strconv.Itoa(c.Default),
				strconv.Itoa(o.Value), o.Label, o.Description,
			})
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func describe(catalog features.Catalog, name string) string {
	if d, ok := catalog.Descriptions[name]; ok {
		return d
	}
	return features.UnknownDescription
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
