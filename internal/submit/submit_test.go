package submit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/iwvelando/house-price/internal/features"
	"github.com/iwvelando/house-price/internal/form"
	"github.com/iwvelando/house-price/internal/predict"
	"github.com/iwvelando/house-price/internal/render"
)

type stubDispatcher struct {
	outcome predict.Outcome
	err     error
	fields  form.FieldSet
}

func (s *stubDispatcher) Predict(_ context.Context, fields form.FieldSet) (predict.Outcome, error) {
	s.fields = fields
	return s.outcome, s.err
}

// blockingDispatcher answers the first call only once released; later calls
// answer immediately.
type blockingDispatcher struct {
	started chan struct{}
	release chan struct{}
	calls   int
}

func (b *blockingDispatcher) Predict(ctx context.Context, _ form.FieldSet) (predict.Outcome, error) {
	b.calls++
	if b.calls == 1 {
		close(b.started)
		select {
		case <-b.release:
			return predict.Success{Price: json.Number("1")}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return predict.Success{Price: json.Number("2")}, nil
}

func newSubmitter(d Dispatcher) (*Submitter, *render.Recorder, *form.Form) {
	recorder := &render.Recorder{}
	f := form.New(features.Default(), form.NewMemorySurface())
	return New(f, d, render.NewRenderer(recorder), nil), recorder, f
}

func TestSubmitSuccess(t *testing.T) {
	dispatcher := &stubDispatcher{outcome: predict.Success{Price: json.Number("42.5")}}
	s, recorder, f := newSubmitter(dispatcher)

	if err := f.MoveSlider(features.CrimeRate, "1.2"); err != nil {
		t.Fatalf("MoveSlider() error = %v", err)
	}

	outcome, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if _, ok := outcome.(predict.Success); !ok {
		t.Fatalf("expected Success, got %T", outcome)
	}
	if dispatcher.fields[features.CrimeRate] != "1.2" {
		t.Fatalf("expected collected CRIME_RATE 1.2, got %v", dispatcher.fields[features.CrimeRate])
	}

	views := recorder.Views()
	if len(views) != 2 {
		t.Fatalf("expected pending and result views, got %d", len(views))
	}
	if views[0].State != render.StatePending {
		t.Fatalf("expected pending first, got %s", views[0].State)
	}
	if views[1].State != render.StateSuccess || views[1].Value != "₹42.5" {
		t.Fatalf("unexpected result view %+v", views[1])
	}
}

func TestSubmitServerFailure(t *testing.T) {
	s, recorder, _ := newSubmitter(&stubDispatcher{outcome: predict.Failure{Message: "Invalid input"}})

	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	last, _ := recorder.Last()
	if last.State != render.StateFailure || last.Detail != "Invalid input" {
		t.Fatalf("unexpected view %+v", last)
	}
}

func TestSubmitTransportFailureHidesCause(t *testing.T) {
	causes := []error{
		errors.New("dial tcp: connection refused"),
		context.DeadlineExceeded,
		predict.ErrTransport,
	}

	for _, cause := range causes {
		s, recorder, _ := newSubmitter(&stubDispatcher{err: cause})

		_, err := s.Submit(context.Background())
		if !errors.Is(err, predict.ErrTransport) {
			t.Fatalf("expected ErrTransport, got %v", err)
		}

		last, _ := recorder.Last()
		if last.Title != render.NetworkErrorTitle || last.Detail != render.NetworkErrorText {
			t.Fatalf("expected generic error view for %v, got %+v", cause, last)
		}
	}
}

func TestNewerSubmissionSupersedesInFlight(t *testing.T) {
	dispatcher := &blockingDispatcher{started: make(chan struct{}), release: make(chan struct{})}
	s, recorder, _ := newSubmitter(dispatcher)

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		firstErr <- err
	}()

	select {
	case <-dispatcher.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the dispatcher")
	}

	outcome, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("second Submit() error = %v", err)
	}
	if got := outcome.(predict.Success).Price.String(); got != "2" {
		t.Fatalf("expected second price, got %s", got)
	}

	select {
	case err := <-firstErr:
		if !errors.Is(err, ErrSuperseded) {
			t.Fatalf("expected ErrSuperseded for first submission, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first submission was not cancelled")
	}

	last, _ := recorder.Last()
	if last.Value != "₹2" {
		t.Fatalf("stale response must not be rendered, last view %+v", last)
	}
	for _, v := range recorder.Views() {
		if v.State == render.StateNetworkError {
			t.Fatalf("cancelled submission must not render an error, got %+v", v)
		}
	}
}
