package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural log encoding.
type ErrorCode string

const (
	// Entity state errors.

	// CodeNotFound indicates the operation requires an entity that does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"
	// CodeAlreadyExists indicates the entity already exists and cannot be created again.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// CodeNotEmpty indicates a non-recursive directory removal found children.
	CodeNotEmpty ErrorCode = "NOT_EMPTY"

	// Contract violations.

	// CodeTypeMismatch indicates a path was requested as a different kind
	// (file vs directory) than the entity registered for it.
	CodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// CodeRootHasNoParent indicates a parent lookup on a root path.
	CodeRootHasNoParent ErrorCode = "ROOT_HAS_NO_PARENT"
	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Driver errors.

	// CodeOperationFailed indicates the underlying driver call failed.
	CodeOperationFailed ErrorCode = "OPERATION_FAILED"
	// CodeUnsupported indicates the driver cannot perform the operation.
	CodeUnsupported ErrorCode = "UNSUPPORTED"
	// CodePermissionDenied indicates the driver was refused access.
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	// CodeNetwork indicates a network operation failed.
	CodeNetwork ErrorCode = "NETWORK_ERROR"
	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"
	// CodeUnavailable indicates the backing service is temporarily unavailable.
	CodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// System errors.

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"
	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
