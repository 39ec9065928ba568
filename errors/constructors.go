package errors

import "fmt"

// New returns an error with the given code and message. Its classification
// is the default for code.
//
//	err := errors.New(errors.CodeRootHasNoParent, "path has no parent")
func New(code ErrorCode, message string) PlatformError {
	return newPlatformError(code, message)
}

// Newf is New with a formatted message.
//
//	err := errors.Newf(errors.CodeInvalidInput, "path exceeds %d characters", limit)
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return newPlatformError(code, fmt.Sprintf(format, args...))
}

func newPlatformError(code ErrorCode, message string) *platformError {
	return &platformError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}
