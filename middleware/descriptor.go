package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/oshokin/apiflow/action"
	"github.com/oshokin/apiflow/apicall"
)

// Static error definitions for better error handling.
var (
	// ErrMissingURL indicates that a descriptor has no target URL.
	ErrMissingURL = errors.New("descriptor URL cannot be empty")
	// ErrMissingActions indicates that a descriptor has no action set.
	ErrMissingActions = errors.New("descriptor has no action set")
)

// Descriptor declares a remote HTTP call to be performed by the middleware.
// A Descriptor dispatched into the pipeline is intercepted; it never reaches
// downstream stages itself, only its lifecycle actions do.
type Descriptor struct {
	// URL is the target of the call. Required.
	URL string
	// Body is the optional request payload, JSON-encoded by the transport.
	Body any
	// Method is the HTTP method; empty means GET.
	Method string
	// Options carries transport options such as extra headers or query values.
	// The middleware never mutates it.
	Options *apicall.Options
	// Authenticated controls Bearer-header attachment; nil means true.
	Authenticated *bool
	// Meta is attached to every lifecycle action emitted for this call.
	Meta map[string]any
	// Actions names the three lifecycle action types. Required.
	Actions action.Set
	// Context, when set, bounds the underlying HTTP call.
	// Defaults to context.Background(); an in-flight call cannot be aborted
	// through the pipeline itself.
	Context context.Context
}

// Validate checks the descriptor shape. Violations are programmer errors:
// they surface immediately from the dispatch and nothing is emitted.
func (d *Descriptor) Validate() error {
	if d.URL == "" {
		return ErrMissingURL
	}

	if d.Actions.IsZero() {
		return ErrMissingActions
	}

	if err := d.Actions.Validate(); err != nil {
		return fmt.Errorf("invalid action set: %w", err)
	}

	return nil
}

// IsAuthenticated reports whether the call should carry a Bearer header.
// Only an explicit false opts out.
func (d *Descriptor) IsAuthenticated() bool {
	return d.Authenticated == nil || *d.Authenticated
}

// method returns the effective HTTP method.
func (d *Descriptor) method() string {
	if d.Method == "" {
		return http.MethodGet
	}

	return d.Method
}

// context returns the effective call context.
func (d *Descriptor) context() context.Context {
	if d.Context != nil {
		return d.Context
	}

	return context.Background()
}
