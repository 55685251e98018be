package errors

import (
	"context"
	"errors"
)

// ToErrorResponse converts any error into ErrorResponse (transport-agnostic).
// Supported inputs:
// - ErrorResponse / *ErrorResponse anywhere in the chain
// - context.Canceled / context.DeadlineExceeded
// Everything else becomes Internal with the generic message; the underlying
// error text never reaches the client.
func ToErrorResponse(err error) ErrorResponse {
	if err == nil {
		return Internal().WithReason("unexpected_error")
	}

	var e ErrorResponse
	if errors.As(err, &e) {
		return e
	}

	var ep *ErrorResponse
	if errors.As(err, &ep) && ep != nil {
		return *ep
	}

	if errors.Is(err, context.Canceled) {
		return Canceled()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return DeadlineExceeded()
	}

	return Internal().WithReason("unexpected_error")
}
