// Package logger provides a structured logging solution using the Zap logging library.
// It keeps one process-wide sugared logger with an adjustable level and offers
// context-aware helpers so request-scoped loggers can travel with a context.Context.
package logger
