// Package middleware implements the interception stage of the dispatch
// pipeline. It recognizes call descriptors flowing through the pipeline,
// performs the described HTTP call through an apicall.Caller, and emits the
// three lifecycle actions (loading, success, error) for each call.
// Everything else passes through untouched.
package middleware
