package apicall

//go:generate $MOCKGEN -source=caller.go -destination=mocks/caller_mock.go

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	http_transport "github.com/oshokin/apiflow/internal/transport/http"
	"github.com/oshokin/apiflow/internal/utils"
)

const (
	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
)

// Options carries per-call transport options.
type Options struct {
	// Headers are added to the outgoing request.
	Headers http.Header
	// Query is appended to the request URL.
	Query url.Values
}

// Clone returns a deep copy of the options so callers' values are never mutated.
// A nil receiver yields nil.
func (o *Options) Clone() *Options {
	if o == nil {
		return nil
	}

	cloned := &Options{}

	if o.Headers != nil {
		cloned.Headers = o.Headers.Clone()
	}

	if o.Query != nil {
		cloned.Query = url.Values{}
		for key, values := range o.Query {
			cloned.Query[key] = append([]string(nil), values...)
		}
	}

	return cloned
}

// Caller performs a single HTTP exchange and normalizes its outcome.
type Caller interface {
	// Call performs the request and returns the decoded JSON payload.
	// The method defaults to GET when empty; a non-nil body is JSON-encoded.
	Call(ctx context.Context, rawURL string, body any, method string, opts *Options) (any, error)
}

// HTTPCaller implements the Caller interface over a standard *http.Client
// whose transport is decorated with debug logging and default-header injection.
type HTTPCaller struct {
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// timeout bounds each request when the default client is built.
	timeout time.Duration
	// userAgent is injected into requests that carry no User-Agent header.
	userAgent string
	// maxLogLength caps request/response dumps in debug logs.
	maxLogLength uint64
}

// CallerOption configures an HTTPCaller.
type CallerOption func(*HTTPCaller)

// WithHTTPClient replaces the underlying HTTP client entirely,
// bypassing the default transport decoration.
func WithHTTPClient(client *http.Client) CallerOption {
	return func(c *HTTPCaller) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout of the default client.
func WithTimeout(timeout time.Duration) CallerOption {
	return func(c *HTTPCaller) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent injected by the default client.
func WithUserAgent(userAgent string) CallerOption {
	return func(c *HTTPCaller) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithMaxLogLength caps request/response dumps in debug logs.
func WithMaxLogLength(maxLogLength uint64) CallerOption {
	return func(c *HTTPCaller) {
		if maxLogLength > 0 {
			c.maxLogLength = maxLogLength
		}
	}
}

// NewHTTPCaller creates and returns a new instance of HTTPCaller.
func NewHTTPCaller(opts ...CallerOption) *HTTPCaller {
	caller := &HTTPCaller{
		timeout:      http_transport.DefaultTimeout,
		userAgent:    http_transport.DefaultUserAgent,
		maxLogLength: http_transport.DefaultMaxLogLength,
	}

	for _, opt := range opts {
		opt(caller)
	}

	if caller.httpClient == nil {
		caller.httpClient = &http.Client{
			Transport: http_transport.NewHeaderInjector(
				http_transport.NewLogTransport(http.DefaultTransport, caller.maxLogLength),
				utils.NewUserAgentHeaderProvider(caller.userAgent)),
			Timeout: caller.timeout,
		}
	}

	return caller
}

// Call performs the request and returns the decoded JSON payload.
//
// Outcomes:
//   - status in [200,300): the decoded JSON body (nil for an empty body);
//   - status 401: a *StatusError with the Unauthorized flag set;
//   - any other status: a *StatusError carrying the decoded error body.
func (c *HTTPCaller) Call(
	ctx context.Context,
	rawURL string,
	body any,
	method string,
	opts *Options,
) (any, error) {
	if method == "" {
		method = http.MethodGet
	}

	var requestBody io.Reader = http.NoBody

	hasBody := body != nil
	if hasBody {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}

		requestBody = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, rawURL, requestBody)
	if err != nil {
		return nil, err
	}

	if opts != nil {
		for name, values := range opts.Headers {
			for _, value := range values {
				request.Header.Add(name, value)
			}
		}

		if len(opts.Query) > 0 {
			request.URL.RawQuery = opts.Query.Encode()
		}
	}

	if hasBody && request.Header.Get(contentTypeHeader) == "" {
		request.Header.Set(contentTypeHeader, jsonContentType)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	payload, decodeErr := decodeBody(response.Body)

	switch {
	case response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices:
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to decode response body: %w", decodeErr)
		}

		return payload, nil
	case response.StatusCode == http.StatusUnauthorized:
		return nil, &StatusError{
			StatusCode:   response.StatusCode,
			Body:         payload,
			Unauthorized: true,
		}
	default:
		return nil, &StatusError{
			StatusCode: response.StatusCode,
			Body:       payload,
		}
	}
}

// decodeBody reads the whole body and decodes it as JSON.
// An empty body yields nil; a non-JSON body is returned as its raw string
// so error payloads survive even when the server ignores content types.
func decodeBody(body io.Reader) (any, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var payload any
	if err = json.Unmarshal(raw, &payload); err != nil {
		return string(raw), err
	}

	return payload, nil
}
