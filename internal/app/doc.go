// Package app provides the main application logic for the apiflow CLI.
// It wires the HTTP caller into the interception middleware, dispatches one
// call descriptor per URL argument and prints every emitted lifecycle action.
package app
