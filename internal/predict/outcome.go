// Package predict sends collected form values to the prediction endpoint and
// decodes the server's verdict.
package predict

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTransport marks failures where no usable response was received: the
// request could not complete or the body could not be understood.
var ErrTransport = errors.New("prediction request failed")

// Outcome is the server's verdict for one submission. It is either a Success
// or a Failure.
type Outcome interface {
	outcome()
}

// Success carries the predicted price exactly as the server sent it.
type Success struct {
	Price json.Number
}

// Failure carries the server-supplied message.
type Failure struct {
	Message string
}

func (Success) outcome() {}
func (Failure) outcome() {}

// Response is the JSON envelope exchanged on the prediction route.
type Response struct {
	Success        *bool       `json:"success"`
	PredictedPrice json.Number `json:"predicted_price,omitempty"`
	Message        string      `json:"message,omitempty"`
	Error          string      `json:"error,omitempty"`
}

// Outcome converts the envelope into its variant. A missing success flag or a
// success without a numeric price is malformed.
func (r Response) Outcome() (Outcome, error) {
	if r.Success == nil {
		return nil, fmt.Errorf("%w: response has no success indicator", ErrTransport)
	}
	if !*r.Success {
		return Failure{Message: r.Message}, nil
	}
	if r.PredictedPrice == "" {
		return nil, fmt.Errorf("%w: success response has no predicted price", ErrTransport)
	}
	if _, err := r.PredictedPrice.Float64(); err != nil {
		return nil, fmt.Errorf("%w: predicted price %q is not a number", ErrTransport, r.PredictedPrice)
	}
	return Success{Price: r.PredictedPrice}, nil
}
