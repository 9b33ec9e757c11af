// Package render turns prediction outcomes into what the user sees in the
// result region.
package render

import (
	"github.com/iwvelando/house-price/internal/predict"
	"github.com/iwvelando/house-price/pkg/constants"
)

// State identifies which kind of view is displayed.
type State string

const (
	StatePending      State = "pending"
	StateSuccess      State = "success"
	StateFailure      State = "failure"
	StateNetworkError State = "network-error"
)

// Static texts of the result region.
const (
	PendingTitle      = "Calculating..."
	SuccessTitle      = "Estimated Price"
	SuccessNote       = "Based on current market trends"
	FailureTitle      = "Error"
	NetworkErrorTitle = "Network Error"
	NetworkErrorText  = "Please try again"
)

// View is the content of the result region.
type View struct {
	State  State
	Icon   string
	Title  string
	Value  string
	Unit   string
	Detail string
}

// Display is the region a view is shown in.
type Display interface {
	Show(View)
}

// Renderer shows views on a display.
type Renderer struct {
	display Display
}

// NewRenderer creates a renderer for display.
func NewRenderer(display Display) *Renderer {
	return &Renderer{display: display}
}

// Pending shows the in-progress view.
func (r *Renderer) Pending() View {
	return r.show(PendingView())
}

// Outcome shows the view for a server verdict.
func (r *Renderer) Outcome(outcome predict.Outcome) View {
	return r.show(OutcomeView(outcome))
}

// TransportFailure shows the generic error view. The cause is never displayed.
func (r *Renderer) TransportFailure() View {
	return r.show(NetworkErrorView())
}

func (r *Renderer) show(v View) View {
	r.display.Show(v)
	return v
}

// PendingView is displayed while a submission is in flight.
func PendingView() View {
	return View{State: StatePending, Icon: "spinner", Title: PendingTitle}
}

// NetworkErrorView is displayed when no usable response was received.
func NetworkErrorView() View {
	return View{
		State:  StateNetworkError,
		Icon:   "exclamation-triangle",
		Title:  NetworkErrorTitle,
		Detail: NetworkErrorText,
	}
}

// OutcomeView maps a server verdict to its view. Prices are shown as received.
func OutcomeView(outcome predict.Outcome) View {
	switch o := outcome.(type) {
	case predict.Success:
		return View{
			State:  StateSuccess,
			Icon:   "home",
			Title:  SuccessTitle,
			Value:  constants.CurrencySymbol + o.Price.String(),
			Unit:   constants.PriceUnit,
			Detail: SuccessNote,
		}
	case predict.Failure:
		return View{
			State:  StateFailure,
			Icon:   "exclamation-triangle",
			Title:  FailureTitle,
			Detail: o.Message,
		}
	default:
		return NetworkErrorView()
	}
}
