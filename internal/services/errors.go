package services

import "errors"

// The four error classes the payment workflow can surface. Handlers map
// them to HTTP status codes with errors.Is; everything is wrapped with %w
// so the original message survives.
var (
	// ErrInvalidInput: malformed or missing request field. Raised before
	// any store access.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized: missing or empty authorization token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBusinessValidation: domain rule violation (unknown bank account,
	// insufficient balance, downstream subscription failure).
	ErrBusinessValidation = errors.New("business validation failed")

	// ErrProcessing: unexpected failure during the commit sequence. The
	// caller sees a generic message; detail goes to the log.
	ErrProcessing = errors.New("payment processing failed")
)
