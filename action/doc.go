// Package action defines the vocabulary of the dispatch pipeline:
// action sets naming the three lifecycle stages of a declarative API call,
// the lifecycle actions emitted for those stages,
// and the dispatcher/middleware types the pipeline is built from.
package action
