package action

// Phase marks which lifecycle stage an emitted action belongs to.
// It is how downstream consumers tell lifecycle traffic apart from
// arbitrary actions flowing through the same pipeline.
type Phase string

const (
	// PhaseLoading tags the action dispatched before the transport call settles.
	PhaseLoading Phase = "LOADING"
	// PhaseSuccess tags the action carrying a resolved response payload.
	PhaseSuccess Phase = "SUCCESS"
	// PhaseError tags the action carrying a transport failure.
	PhaseError Phase = "ERROR"
)

// Action is a single lifecycle message emitted for one intercepted API call.
// Nothing in the pipeline retains an Action beyond its dispatch; there is no
// persisted state behind it.
type Action struct {
	// Type is the action type string taken from the descriptor's action set.
	Type string `json:"type"`
	// Phase is the lifecycle stage marker.
	Phase Phase `json:"apiActionType"`
	// Response holds the decoded response payload on success.
	Response any `json:"response,omitempty"`
	// RawError preserves the original transport error verbatim.
	RawError error `json:"-"`
	// Error is the human-readable form of RawError.
	Error string `json:"error,omitempty"`
	// Meta carries caller-supplied metadata attached to every lifecycle
	// action of the same call.
	Meta map[string]any `json:"meta,omitempty"`
}

// Dispatcher forwards an action to the next stage of the pipeline and
// returns that stage's result.
type Dispatcher func(a any) (any, error)

// MiddlewareFunc decorates a Dispatcher with additional behavior.
type MiddlewareFunc func(next Dispatcher) Dispatcher

// NewLoading builds the action announcing that a call is in flight.
func NewLoading(actionType string, meta map[string]any) *Action {
	return &Action{
		Type:  actionType,
		Phase: PhaseLoading,
		Meta:  meta,
	}
}

// NewSuccess builds the action carrying a resolved response payload.
func NewSuccess(actionType string, response any, meta map[string]any) *Action {
	return &Action{
		Type:     actionType,
		Phase:    PhaseSuccess,
		Response: response,
		Meta:     meta,
	}
}

// NewError builds the action carrying a transport failure.
// The original error is kept under RawError; Error holds its string form.
func NewError(actionType string, err error, meta map[string]any) *Action {
	var message string
	if err != nil {
		message = err.Error()
	}

	return &Action{
		Type:     actionType,
		Phase:    PhaseError,
		RawError: err,
		Error:    message,
		Meta:     meta,
	}
}

// IsLifecycle reports whether the action carries a known phase marker.
func (a *Action) IsLifecycle() bool {
	switch a.Phase {
	case PhaseLoading, PhaseSuccess, PhaseError:
		return true
	default:
		return false
	}
}
