package utils

//go:generate $MOCKGEN -source=header_provider.go -destination=mocks/header_provider_mock.go

import "net/http"

// HeaderProvider is an interface that defines a method for retrieving
// headers to inject into outgoing HTTP requests.
type HeaderProvider interface {
	// Headers returns the headers to inject.
	Headers() http.Header
}

// StaticHeaderProvider is a basic implementation of the HeaderProvider interface.
// It provides a fixed header set supplied during initialization.
type StaticHeaderProvider struct {
	// headers is the header set to return.
	headers http.Header
}

// NewStaticHeaderProvider creates and returns a new instance of StaticHeaderProvider.
func NewStaticHeaderProvider(headers http.Header) HeaderProvider {
	return &StaticHeaderProvider{headers: headers}
}

// NewUserAgentHeaderProvider creates a StaticHeaderProvider carrying only a User-Agent header.
func NewUserAgentHeaderProvider(userAgent string) HeaderProvider {
	headers := http.Header{}
	headers.Set("User-Agent", userAgent)

	return NewStaticHeaderProvider(headers)
}

// Headers returns the headers to inject.
func (p *StaticHeaderProvider) Headers() http.Header {
	return p.headers
}
