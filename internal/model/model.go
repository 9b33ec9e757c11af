// Package model evaluates house prices from a model input vector.
package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/house-price/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Predictor estimates a price in lakhs from a model input vector.
type Predictor interface {
	Predict(ctx context.Context, input []float64) (float64, error)
}

// Constant always predicts the same price. It serves estimates when no model
// file is configured.
type Constant float64

// Fallback returns the Constant used when no model file is configured.
func Fallback() Constant {
	return Constant(constants.FallbackPrediction)
}

// Predict returns the constant.
func (c Constant) Predict(_ context.Context, _ []float64) (float64, error) {
	return float64(c), nil
}

// Scaler standardises inputs as (x - mean) / scale.
type Scaler struct {
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
}

// Linear is a fitted linear regression over standardised inputs.
type Linear struct {
	Features     []string  `yaml:"features"`
	Intercept    float64   `yaml:"intercept"`
	Coefficients []float64 `yaml:"coefficients"`
	Scaler       *Scaler   `yaml:"scaler,omitempty"`
}

// LoadLinear reads a linear model from a YAML file.
func LoadLinear(path string) (*Linear, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	return LoadLinearFromReader(bytes.NewReader(data))
}

// LoadLinearFromReader reads a linear model from YAML.
func LoadLinearFromReader(r io.Reader) (*Linear, error) {
	var m Linear
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("model file is empty")
		}
		return nil, fmt.Errorf("failed to parse model file: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that coefficients and scaler agree in width.
func (m *Linear) Validate() error {
	n := len(m.Coefficients)
	if n == 0 {
		return errors.New("model has no coefficients")
	}
	if len(m.Features) > 0 && len(m.Features) != n {
		return fmt.Errorf("model lists %d features for %d coefficients", len(m.Features), n)
	}
	if m.Scaler != nil {
		if len(m.Scaler.Mean) != n || len(m.Scaler.Scale) != n {
			return fmt.Errorf("scaler width (mean %d, scale %d) does not match %d coefficients",
				len(m.Scaler.Mean), len(m.Scaler.Scale), n)
		}
	}
	return nil
}

// CheckFeatures verifies the feature order the model was fitted with, when
// the file records one.
func (m *Linear) CheckFeatures(order []string) error {
	if len(m.Features) == 0 {
		return nil
	}
	if len(order) != len(m.Features) {
		return fmt.Errorf("model expects %d features, form provides %d", len(m.Features), len(order))
	}
	for i, name := range order {
		if m.Features[i] != name {
			return fmt.Errorf("model feature %d is %s, expected %s", i, m.Features[i], name)
		}
	}
	return nil
}

// Predict evaluates the regression. A zero scale leaves the centred value
// unscaled.
func (m *Linear) Predict(ctx context.Context, input []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(input) != len(m.Coefficients) {
		return 0, fmt.Errorf("model expects %d inputs, got %d", len(m.Coefficients), len(input))
	}

	y := m.Intercept
	for i, x := range input {
		if m.Scaler != nil {
			x -= m.Scaler.Mean[i]
			if scale := m.Scaler.Scale[i]; scale != 0 {
				x /= scale
			}
		}
		y += m.Coefficients[i] * x
	}
	return y, nil
}
