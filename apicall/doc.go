// Package apicall performs single HTTP exchanges on behalf of the dispatch
// middleware and normalizes the three possible outcomes: a decoded JSON
// payload on 2xx, an unauthorized-flagged error on 401, and a status error
// carrying the server's decoded error body otherwise.
package apicall
