package middleware

import (
	"context"

	"github.com/oshokin/apiflow/action"
	"github.com/oshokin/apiflow/apicall"
	"github.com/oshokin/apiflow/internal/logger"
)

// Call tracks one in-flight intercepted API call. It is the completion
// handle returned from the dispatch: the caller can wait for the terminal
// lifecycle action, but cannot abort the call once started.
type Call struct {
	descriptor *Descriptor
	done       chan struct{}
	result     *action.Action
}

func newCall(descriptor *Descriptor) *Call {
	return &Call{
		descriptor: descriptor,
		done:       make(chan struct{}),
	}
}

// Done returns a channel that is closed once the terminal lifecycle action
// has been dispatched.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Result returns the terminal success or error action, or nil while the call
// is still in flight.
func (c *Call) Result() *action.Action {
	select {
	case <-c.done:
		return c.result
	default:
		return nil
	}
}

// Wait blocks until the call settles or ctx is done.
func (c *Call) Wait(ctx context.Context) (*action.Action, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return c.result, nil
	}
}

// run performs the transport call and dispatches the terminal lifecycle action.
// It resumes exactly once, on either the success or the error path, never both.
func (c *Call) run(
	ctx context.Context,
	cfg *Config,
	next action.Dispatcher,
	opts *apicall.Options,
	callID string,
) {
	defer close(c.done)

	descriptor := c.descriptor

	payload, err := cfg.Caller.Call(ctx, descriptor.URL, descriptor.Body, descriptor.method(), opts)
	if err == nil {
		c.result = action.NewSuccess(descriptor.Actions.Success, payload, descriptor.Meta)

		logger.DebugKV(ctx, "API call succeeded", "call_id", callID, "url", descriptor.URL)
		c.dispatch(ctx, next, c.result)

		return
	}

	// Transport failures never propagate as errors from the pipeline;
	// they surface exactly once, as a dispatched error action.
	c.result = action.NewError(descriptor.Actions.Error, err, descriptor.Meta)

	logger.DebugKV(ctx, "API call failed", "call_id", callID, "url", descriptor.URL, "error", err.Error())
	c.dispatch(ctx, next, c.result)

	if apicall.IsUnauthorized(err) && cfg.OnUnauthorized != nil {
		cfg.OnUnauthorized(ctx, descriptor, err)
	}
}

// dispatch forwards a lifecycle action downstream. A failing downstream stage
// cannot be reported to the original dispatcher anymore, so it is only logged.
func (c *Call) dispatch(ctx context.Context, next action.Dispatcher, a *action.Action) {
	if _, err := next(a); err != nil {
		logger.Warnf(ctx, "Downstream stage rejected %s action: %v", a.Type, err)
	}
}
