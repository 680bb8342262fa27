// Package http provides custom HTTP transport utilities,
// including request/response logging and default-header injection.
// It is designed to enhance HTTP client functionality
// with debugging capabilities and request customization.
package http
