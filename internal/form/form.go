// Package form holds the current values of the estimate form, mirrors them
// onto a rendering surface and collects them for submission.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/iwvelando/house-price/internal/features"
)

// Suffixes of the surface elements that accompany each input.
const (
	ValueLabelSuffix  = "_value"
	DescriptionSuffix = "_desc"
)

// ErrUnknownField is returned when an input id is not part of the form.
var ErrUnknownField = errors.New("unknown form field")

// ErrWrongKind is returned when a slider operation targets a selector or
// vice versa.
var ErrWrongKind = errors.New("form field has a different kind")

// FieldSet maps field names to their current values.
type FieldSet map[string]interface{}

// Surface is the display the form writes labels and descriptions to.
type Surface interface {
	SetText(elementID, text string)
}

type fieldKind int

const (
	kindSlider fieldKind = iota
	kindSelect
)

// Form tracks the current value of every input. It is safe for concurrent use.
type Form struct {
	catalog features.Catalog
	surface Surface

	mu     sync.Mutex
	kinds  map[string]fieldKind
	values map[string]string
}

// New creates a form with every input at its default value and initialises
// the slider labels and selector descriptions on the surface.
func New(catalog features.Catalog, surface Surface) *Form {
	f := &Form{
		catalog: catalog,
		surface: surface,
		kinds:   make(map[string]fieldKind),
		values:  make(map[string]string),
	}

	for _, r := range catalog.Ranges {
		value := strconv.FormatFloat(r.Default, 'f', -1, 64)
		f.kinds[r.Name] = kindSlider
		f.values[r.Name] = value
		f.surface.SetText(r.Name+ValueLabelSuffix, value)
	}
	for _, cat := range catalog.Categoricals {
		value := strconv.Itoa(cat.Default)
		f.kinds[cat.Name] = kindSelect
		f.values[cat.Name] = value
		f.surface.SetText(cat.Name+DescriptionSuffix, catalog.Describe(cat.Name, cat.Default))
	}

	return f
}

// MoveSlider sets a slider to value and updates its label to exactly that value.
func (f *Form) MoveSlider(id, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkKind(id, kindSlider); err != nil {
		return err
	}
	f.values[id] = value
	f.surface.SetText(id+ValueLabelSuffix, value)
	return nil
}

// Select chooses a selector value and updates its description.
func (f *Form) Select(id, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkKind(id, kindSelect); err != nil {
		return err
	}
	f.values[id] = value
	f.surface.SetText(id+DescriptionSuffix, f.describe(id, value))
	return nil
}

// Set dispatches to MoveSlider or Select depending on the field kind.
func (f *Form) Set(id, value string) error {
	f.mu.Lock()
	kind, ok := f.kinds[id]
	f.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	if kind == kindSlider {
		return f.MoveSlider(id, value)
	}
	return f.Select(id, value)
}

// Value returns the current value of an input.
func (f *Form) Value(id string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[id]
	return v, ok
}

// Collect returns the current values of every input. Values are strings, as
// browser form data is.
func (f *Form) Collect() FieldSet {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields := make(FieldSet, len(f.values))
	for id, v := range f.values {
		fields[id] = v
	}
	return fields
}

func (f *Form) checkKind(id string, want fieldKind) error {
	kind, ok := f.kinds[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	if kind != want {
		return fmt.Errorf("%w: %s", ErrWrongKind, id)
	}
	return nil
}

func (f *Form) describe(id, value string) string {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return features.UnknownDescription
	}
	return f.catalog.Describe(id, n)
}
