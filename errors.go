package entity

import (
	platformerrors "github.com/jmgilman/go/fs/entity/errors"
)

// Operation names recorded in error context.
const (
	opGet      = "get"
	opCreate   = "create"
	opDestroy  = "destroy"
	opHide     = "hide"
	opShow     = "show"
	opMove     = "move"
	opCopy     = "copy"
	opParent   = "parent"
	opRefresh  = "refresh"
	opSize     = "size"
	opChildren = "children"
	opTemp     = "temporary"
	opCleanup  = "cleanup"
)

func newError(code platformerrors.ErrorCode, op, path, msg string) error {
	return platformerrors.WithContextMap(platformerrors.New(code, msg), map[string]interface{}{
		"op":   op,
		"path": path,
	})
}

func notFound(op, path string) error {
	return newError(platformerrors.CodeNotFound, op, path, "entity does not exist")
}

func alreadyExists(op, path string) error {
	return newError(platformerrors.CodeAlreadyExists, op, path, "entity already exists")
}

func typeMismatch(op, path string, want, have Kind) error {
	err := newError(platformerrors.CodeTypeMismatch, op, path, "entity kind mismatch")
	return platformerrors.WithContextMap(err, map[string]interface{}{
		"want": want.String(),
		"have": have.String(),
	})
}

func invalidInput(op, path, msg string) error {
	return newError(platformerrors.CodeInvalidInput, op, path, msg)
}

// driverError reports a failed driver call. The cause keeps its
// classification.
func driverError(err error, op, path string) error {
	return platformerrors.WrapWithContext(err, platformerrors.CodeOperationFailed, op+" failed", map[string]interface{}{
		"op":   op,
		"path": path,
	})
}
