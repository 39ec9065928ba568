package errors

import (
	"fmt"
	"maps"
)

// Wrap wraps an error with additional context while preserving the original error.
// The wrapped error is accessible via Unwrap() and compatible with errors.Is and errors.As.
//
// If the wrapped error is a PlatformError, its classification is preserved.
// Otherwise, the default classification for the error code is used.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := drv.Move(src, dst); err != nil {
//	    return errors.Wrap(err, errors.CodeOperationFailed, "move failed")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	if err == nil {
		return nil
	}
	return &platformError{
		code:           code,
		classification: inheritClassification(err, code),
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps an error with a formatted message while preserving the original error.
//
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps an error and attaches context metadata in a single operation.
// The context map is copied to prevent external mutation.
//
// Returns nil if err is nil.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeOperationFailed, "create failed", map[string]interface{}{
//	    "op":   "create",
//	    "path": path,
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return &platformError{
		code:           code,
		classification: inheritClassification(err, code),
		message:        message,
		context:        maps.Clone(ctx),
		cause:          err,
	}
}

// inheritClassification keeps the classification of a wrapped PlatformError
// and falls back to the default for code.
func inheritClassification(err error, code ErrorCode) ErrorClassification {
	var pe PlatformError
	if As(err, &pe) {
		return pe.Classification()
	}
	return getDefaultClassification(code)
}
