// Package errors provides structured error handling for the entity registry
// and its drivers.
//
// Errors carry a code for categorization, a classification (retryable vs
// permanent), and optional context metadata. They remain compatible with the
// standard library errors package (errors.Is, errors.As, errors.Unwrap).
//
// # Codes
//
// The entity layer reports the following conditions:
//
//   - CodeNotFound: the operation requires an existing entity
//   - CodeAlreadyExists: create on an existing entity, or a reused temporary name
//   - CodeTypeMismatch: a path was requested as a different kind than it is registered as
//   - CodeRootHasNoParent: parent lookup on a root path
//   - CodeOperationFailed: the driver call failed; the driver error is the cause
//
// # Quick Start
//
// Creating errors:
//
//	err := errors.New(errors.CodeNotFound, "entity does not exist")
//	err := errors.Newf(errors.CodeInvalidInput, "path exceeds %d bytes", limit)
//
// Wrapping driver failures:
//
//	if err := drv.DeleteFile(path); err != nil {
//	    return errors.Wrap(err, errors.CodeOperationFailed, "delete failed")
//	}
//
// Adding context:
//
//	err = errors.WithContext(err, "path", "/data/a.txt")
//
// Inspecting errors:
//
//	if errors.HasCode(err, errors.CodeNotFound) {
//	    // entity is gone
//	}
//
// Logging with zap:
//
//	logger.Error("cleanup failed", errors.Field(err))
package errors
