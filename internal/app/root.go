package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/oshokin/apiflow/action"
	"github.com/oshokin/apiflow/apicall"
	"github.com/oshokin/apiflow/internal/config"
	"github.com/oshokin/apiflow/internal/logger"
	"github.com/oshokin/apiflow/middleware"
)

// defaultActionName is the base name of the action set used for CLI calls.
const defaultActionName = "API_CALL"

// ExecuteRootCommand is the entry point for the application.
// It builds the interception middleware over an HTTP caller and dispatches
// one call descriptor per URL argument, waiting for each call to settle.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, urls []string) {
	caller := apicall.NewHTTPCaller(
		apicall.WithTimeout(cfg.ParsedRequestTimeout),
		apicall.WithMaxLogLength(cfg.ParsedMaxLogLength))

	interceptor, err := middleware.New(&middleware.Config{
		Caller: caller,
		GetAuthToken: func(context.Context) string {
			return cfg.AuthToken
		},
		OnUnauthorized: func(ctx context.Context, descriptor *middleware.Descriptor, err error) {
			logger.Warnf(ctx, "Server rejected credentials for %s: %v", descriptor.URL, err)
		},
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to build middleware: %v", err)
	}

	body, err := parseRequestBody(cfg.RequestBody)
	if err != nil {
		logger.Fatalf(ctx, "Failed to parse request body: %v", err)
	}

	options, err := parseRequestHeaders(cfg.RequestHeaders)
	if err != nil {
		logger.Fatalf(ctx, "Failed to parse request headers: %v", err)
	}

	dispatch := interceptor(printActions(os.Stdout))

	for _, rawURL := range urls {
		target, resolveErr := cfg.ResolveURL(rawURL)
		if resolveErr != nil {
			logger.Fatalf(ctx, "Failed to resolve URL: %v", resolveErr)
		}

		descriptor := &middleware.Descriptor{
			URL:     target,
			Body:    body,
			Method:  cfg.Method,
			Options: options,
			Meta:    map[string]any{"request_id": uuid.NewString()},
			Actions: action.NewSet(defaultActionName),
			Context: ctx,
		}

		if cfg.Unauthenticated {
			unauthenticated := false
			descriptor.Authenticated = &unauthenticated
		}

		result, dispatchErr := dispatch(descriptor)
		if dispatchErr != nil {
			logger.Fatalf(ctx, "Failed to dispatch call to %s: %v", target, dispatchErr)
		}

		call, ok := result.(*middleware.Call)
		if !ok {
			logger.Fatalf(ctx, "Unexpected dispatch result %T", result)
		}

		if _, waitErr := call.Wait(ctx); waitErr != nil {
			logger.Errorf(ctx, "Interrupted while waiting for %s: %v", target, waitErr)

			return
		}
	}
}

// printActions is the pipeline tail: it renders each lifecycle action as a
// JSON line on the given writer and forwards everything else untouched.
func printActions(out io.Writer) action.Dispatcher {
	return func(a any) (any, error) {
		encoded, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("failed to encode action: %w", err)
		}

		if _, err = fmt.Fprintln(out, string(encoded)); err != nil {
			return nil, err
		}

		return a, nil
	}
}

// parseRequestBody decodes the --data flag value.
func parseRequestBody(raw string) (any, error) {
	if raw == "" {
		return nil, nil //nolint:nilnil // No body means no payload and no error.
	}

	var body any
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return nil, fmt.Errorf("body is not valid JSON: %w", err)
	}

	return body, nil
}

// parseRequestHeaders converts repeated --header flag values into transport options.
func parseRequestHeaders(rawHeaders []string) (*apicall.Options, error) {
	if len(rawHeaders) == 0 {
		return nil, nil //nolint:nilnil // No headers means no options and no error.
	}

	headers := http.Header{}

	for _, raw := range rawHeaders {
		name, value, found := strings.Cut(raw, ":")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("header '%s' is not in 'Name: value' form", raw)
		}

		headers.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	return &apicall.Options{Headers: headers}, nil
}
