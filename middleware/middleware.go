package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/oshokin/apiflow/action"
	"github.com/oshokin/apiflow/apicall"
	"github.com/oshokin/apiflow/internal/logger"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

// Static error definitions for better error handling.
var (
	// ErrNilConfig indicates that the middleware was built without a configuration.
	ErrNilConfig = errors.New("config cannot be nil")
	// ErrNilCaller indicates that the configuration carries no transport caller.
	ErrNilCaller = errors.New("caller cannot be nil")
)

// Config carries the capabilities the middleware depends on.
type Config struct {
	// Caller performs the actual HTTP exchanges. Required.
	Caller apicall.Caller
	// GetAuthToken returns the bearer token for authenticated calls.
	// It is the only token source the middleware consults; a nil function or
	// an empty token leaves requests unauthenticated.
	GetAuthToken func(ctx context.Context) string
	// OnUnauthorized is invoked after the error action for a 401 response was
	// dispatched. The downstream reaction (session invalidation, re-login) is
	// deployment-specific, so it is a hook rather than a hardcoded action.
	// Nil means no reaction.
	OnUnauthorized func(ctx context.Context, descriptor *Descriptor, err error)
}

// New builds the interception middleware.
//
// The returned middleware treats dispatched values as follows:
//   - anything that is not a *Descriptor passes through to the next stage
//     unchanged, and its result is returned as-is;
//   - a malformed *Descriptor returns a validation error synchronously and
//     nothing is dispatched;
//   - a valid *Descriptor emits its loading action synchronously, performs
//     the call in its own goroutine, emits exactly one of the success/error
//     actions once the call settles, and returns a *Call completion handle.
//
// Concurrent descriptors run independently; only the per-call ordering of
// loading before success/error is guaranteed.
func New(cfg *Config) (action.MiddlewareFunc, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Caller == nil {
		return nil, ErrNilCaller
	}

	return func(next action.Dispatcher) action.Dispatcher {
		return func(a any) (any, error) {
			descriptor, ok := a.(*Descriptor)
			if !ok {
				return next(a)
			}

			return intercept(cfg, next, descriptor)
		}
	}, nil
}

// intercept drives one descriptor through its lifecycle.
func intercept(cfg *Config, next action.Dispatcher, descriptor *Descriptor) (*Call, error) {
	if err := descriptor.Validate(); err != nil {
		return nil, err
	}

	ctx := descriptor.context()
	callID := uuid.NewString()
	opts := authorizedOptions(ctx, cfg, descriptor)

	// The loading action always precedes the transport call settling.
	if _, err := next(action.NewLoading(descriptor.Actions.Loading, descriptor.Meta)); err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "API call started",
		"call_id", callID,
		"method", descriptor.method(),
		"url", descriptor.URL)

	call := newCall(descriptor)
	go call.run(ctx, cfg, next, opts, callID)

	return call, nil
}

// authorizedOptions clones the descriptor's transport options and attaches
// the Bearer header when the call is authenticated and a token is available.
// Caller-supplied headers are merged with, never replaced.
func authorizedOptions(ctx context.Context, cfg *Config, descriptor *Descriptor) *apicall.Options {
	opts := descriptor.Options.Clone()

	if !descriptor.IsAuthenticated() || cfg.GetAuthToken == nil {
		return opts
	}

	token := cfg.GetAuthToken(ctx)
	if token == "" {
		return opts
	}

	if opts == nil {
		opts = &apicall.Options{}
	}

	if opts.Headers == nil {
		opts.Headers = http.Header{}
	}

	opts.Headers.Set(authorizationHeader, bearerPrefix+token)

	return opts
}
