package errors_test

import (
	"fmt"

	"github.com/jmgilman/go/fs/entity/errors"
)

func ExampleNew() {
	err := errors.New(errors.CodeNotFound, "entity does not exist")
	fmt.Println(err.Error())
	// Output: [NOT_FOUND] entity does not exist
}

func ExampleWrap() {
	cause := fmt.Errorf("permission denied")
	err := errors.Wrap(cause, errors.CodeOperationFailed, "delete failed")
	fmt.Println(errors.GetCode(err))
	// Output: OPERATION_FAILED
}

func ExampleWithContext() {
	err := errors.New(errors.CodeAlreadyExists, "entity already exists")
	err = errors.WithContext(err, "path", "/tmp/scratch")
	fmt.Println(err.Error())
	// Output: [ALREADY_EXISTS] entity already exists (/tmp/scratch)
}

func ExampleHasCode() {
	child := errors.New(errors.CodeOperationFailed, "delete failed")
	err := errors.Wrap(child, errors.CodeOperationFailed, "destroy aborted")
	fmt.Println(errors.HasCode(err, errors.CodeOperationFailed))
	// Output: true
}
