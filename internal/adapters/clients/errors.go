// Package clients provides HTTP client adapters for downstream services.
package clients

import "errors"

// Client errors represent failures in the HTTP client layer.
// Callers translate them to domain errors; both mean no response was read.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open and the
	// request was never sent.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrTransport wraps a failure to obtain any response: refused
	// connection, DNS failure, timeout or cancellation.
	ErrTransport = errors.New("transport failure")
)
