package services

// Envelope is the uniform result wrapper returned by every service
// operation. OK=false always pairs with a zero payload and a short
// human-readable message; OK=true always pairs with a populated payload
// (an empty list is a valid success for queries with no matches).
type Envelope[T any] struct {
	OK      bool
	Payload T
	Message string
	Errors  map[string]string // field-level validation errors, nil otherwise
}

// Messages shared across services. Store failures are logged with their
// cause and surfaced to callers only through this generic text.
const (
	msgInternalError    = "Something went wrong !, check logs for details"
	msgValidationFailed = "Validation failed"
)

func success[T any](payload T, message string) Envelope[T] {
	return Envelope[T]{OK: true, Payload: payload, Message: message}
}

func failure[T any](message string) Envelope[T] {
	return Envelope[T]{OK: false, Message: message}
}

func invalid[T any](fieldErrors map[string]string) Envelope[T] {
	return Envelope[T]{OK: false, Message: msgValidationFailed, Errors: fieldErrors}
}
