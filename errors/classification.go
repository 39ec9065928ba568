package errors

// ErrorClassification indicates whether an error should trigger a retry.
// The entity layer never retries on its own; the classification lets callers
// decide whether re-issuing an operation can help.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry.
	// Examples: network timeouts, an unavailable object store.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	// Examples: type mismatches, missing entities, permission denials.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeNetwork:     ClassificationRetryable,
	CodeTimeout:     ClassificationRetryable,
	CodeUnavailable: ClassificationRetryable,

	CodeNotFound:         ClassificationPermanent,
	CodeAlreadyExists:    ClassificationPermanent,
	CodeNotEmpty:         ClassificationPermanent,
	CodeTypeMismatch:     ClassificationPermanent,
	CodeRootHasNoParent:  ClassificationPermanent,
	CodeInvalidInput:     ClassificationPermanent,
	CodeInvalidConfig:    ClassificationPermanent,
	CodeOperationFailed:  ClassificationPermanent,
	CodeUnsupported:      ClassificationPermanent,
	CodePermissionDenied: ClassificationPermanent,
	CodeInternal:         ClassificationPermanent,
	CodeUnknown:          ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Returns ClassificationPermanent if the code is not in the map.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
