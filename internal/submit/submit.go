// Package submit coordinates one estimate submission: collect the form,
// show the pending view, dispatch the request and render the verdict.
package submit

import (
	"context"
	"errors"
	"sync"

	"github.com/iwvelando/house-price/internal/form"
	"github.com/iwvelando/house-price/internal/predict"
	"github.com/iwvelando/house-price/internal/render"
	"go.uber.org/zap"
)

// ErrSuperseded is returned by a submission that was replaced by a newer one
// before its response arrived. Its result is discarded without rendering.
var ErrSuperseded = errors.New("submission superseded by a newer one")

// Collector provides the current form values.
type Collector interface {
	Collect() form.FieldSet
}

// Dispatcher sends form values to the prediction endpoint.
type Dispatcher interface {
	Predict(ctx context.Context, fields form.FieldSet) (predict.Outcome, error)
}

// Submitter runs submissions with at most one active at a time. Starting a
// submission cancels the one in flight.
type Submitter struct {
	collector  Collector
	dispatcher Dispatcher
	renderer   *render.Renderer
	logger     *zap.Logger

	mu     sync.Mutex
	token  uint64
	cancel context.CancelFunc
}

// New creates a submitter.
func New(collector Collector, dispatcher Dispatcher, renderer *render.Renderer, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{
		collector:  collector,
		dispatcher: dispatcher,
		renderer:   renderer,
		logger:     logger,
	}
}

// Submit blocks until the exchange resolves and the verdict is rendered.
// Server failures are rendered and returned as an outcome; transport failures
// render the generic error and return an error wrapping predict.ErrTransport.
func (s *Submitter) Submit(ctx context.Context) (predict.Outcome, error) {
	fields := s.collector.Collect()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.token++
	token := s.token
	s.cancel = cancel
	s.renderer.Pending()
	s.mu.Unlock()

	outcome, err := s.dispatcher.Predict(ctx, fields)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		s.logger.Debug("discarding superseded prediction",
			zap.String("op", "submit.Submit"),
			zap.Uint64("token", token),
		)
		return nil, ErrSuperseded
	}
	s.cancel = nil

	if err != nil {
		s.logger.Warn("prediction request failed",
			zap.String("op", "submit.Submit"),
			zap.Error(err),
		)
		s.renderer.TransportFailure()
		if !errors.Is(err, predict.ErrTransport) {
			err = errors.Join(predict.ErrTransport, err)
		}
		return nil, err
	}

	s.renderer.Outcome(outcome)
	return outcome, nil
}
