// Package utils provides small shared helpers: header providers for
// transport decorators, content-type classification for log dumping,
// and safe numeric conversions.
package utils
