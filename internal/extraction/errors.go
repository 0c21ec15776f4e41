package extraction

import "fmt"

// ErrorKind classifies an extraction failure so callers can map it to
// a transport status and user-facing message
type ErrorKind int

const (
	// KindInvalidInput means the caller supplied a bad or missing image
	KindInvalidInput ErrorKind = iota

	// KindRateLimited means the gateway rejected the call with a 429
	KindRateLimited

	// KindQuotaExhausted means the gateway rejected the call with a 402
	KindQuotaExhausted

	// KindMalformedModelOutput means the model replied without the
	// forced function call, or with unparseable arguments
	KindMalformedModelOutput

	// KindUpstreamFailure covers any other gateway or network fault
	KindUpstreamFailure

	// KindMisconfigured means the gateway credential is not set
	KindMisconfigured
)

// Error is a classified extraction failure
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError creates a classified extraction error
func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the classification of an extraction error, or
// KindUpstreamFailure for anything unrecognized
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUpstreamFailure
}
