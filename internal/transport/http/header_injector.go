package http

import (
	"net/http"

	"github.com/oshokin/apiflow/internal/utils"
)

// HeaderInjector is a custom http.RoundTripper that fills in missing request
// headers from a HeaderProvider. It wraps another http.RoundTripper and never
// overrides headers the caller has already set.
type HeaderInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// headerProvider provides the headers to inject.
	headerProvider utils.HeaderProvider
}

// NewHeaderInjector creates and returns a new instance of HeaderInjector.
// It takes an underlying http.RoundTripper and a HeaderProvider to supply the default headers.
func NewHeaderInjector(next http.RoundTripper, headerProvider utils.HeaderProvider) http.RoundTripper {
	return &HeaderInjector{
		next:           next,
		headerProvider: headerProvider,
	}
}

// RoundTrip executes a single HTTP transaction, injecting each provided
// header that is absent from the request.
// It implements the http.RoundTripper interface.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	for name, values := range t.headerProvider.Headers() {
		if req.Header.Get(name) != "" {
			continue
		}

		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	return t.next.RoundTrip(req)
}
