// Package client contains the client-side API for the favkeeper backend.
//
// Client is the transport-agnostic contract; HTTPClient implements it over
// the JSON HTTP API. Token-protected calls take the bearer token that Login
// returns.
//
// # Error Handling
//
// Transport failures and 503 responses yield ErrUnavailable, 401 yields
// ErrUnauthorized. Any other rejection is an *APIError carrying the
// server's message.
package client
