package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Components wrap them with fmt.Errorf("%w: ...") and callers match them with
// errors.Is, so neither the controller nor the HTTP layer depends on how a
// failure was produced.

var (
	// ErrNetwork signifies that a request to the backend could not complete or
	// returned a non-success status.
	ErrNetwork = errors.New("network error")

	// ErrInvalidSelection signifies that a provider is unknown or unavailable.
	ErrInvalidSelection = errors.New("invalid provider selection")

	// ErrPreconditionNotMet signifies that an operation had nothing to do
	// (empty message, no provider, no score). The controller treats it as a
	// silent no-op and never shows it to the user.
	ErrPreconditionNotMet = errors.New("precondition not met")

	// ErrValidation signifies that input data failed business rule validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrInternal signifies an unexpected error on the server. It keeps
	// implementation details from leaking to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
