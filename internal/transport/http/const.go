package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent is the default User-Agent string used for HTTP requests.
	DefaultUserAgent = "apiflow/1.0"

	// DefaultMaxLogLength is the default maximum size (in bytes) of a single
	// request or response dump written to the debug log.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB
)
