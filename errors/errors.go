package errors

// PlatformError is the error type returned by every entity operation.
//
// Besides the message it carries a code naming the failure kind, a
// classification telling callers whether a retry can help, and context
// fields such as "op" and "path" that name the failing operation and entity.
type PlatformError interface {
	error

	// Code names the failure kind, for example CodeNotFound.
	Code() ErrorCode

	// Classification reports whether the failure is retryable.
	Classification() ErrorClassification

	// Message is the error text without code, path or cause.
	Message() string

	// Context returns a copy of the attached fields, or nil.
	Context() map[string]interface{}

	// Unwrap returns the cause, typically a driver error.
	Unwrap() error
}
