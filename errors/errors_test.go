package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "entity does not exist")

	require.NotNil(t, err)
	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, "entity does not exist", err.Message())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
	require.Equal(t, "[NOT_FOUND] entity does not exist", err.Error())
}

func TestNew_AllErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		CodeNotFound,
		CodeAlreadyExists,
		CodeNotEmpty,
		CodeTypeMismatch,
		CodeRootHasNoParent,
		CodeInvalidInput,
		CodeInvalidConfig,
		CodeOperationFailed,
		CodeUnsupported,
		CodePermissionDenied,
		CodeNetwork,
		CodeTimeout,
		CodeUnavailable,
		CodeInternal,
		CodeUnknown,
	}

	for _, code := range codes {
		t.Run(string(code), func(t *testing.T) {
			err := New(code, "test message")
			require.Equal(t, code, err.Code())
			require.NotEmpty(t, err.Classification())
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidInput, "path exceeds %d bytes", 4096)

	require.Equal(t, CodeInvalidInput, err.Code())
	require.Equal(t, "path exceeds 4096 bytes", err.Message())
}

func TestDefaultClassification(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want ErrorClassification
	}{
		{CodeNetwork, ClassificationRetryable},
		{CodeTimeout, ClassificationRetryable},
		{CodeUnavailable, ClassificationRetryable},
		{CodeNotFound, ClassificationPermanent},
		{CodeTypeMismatch, ClassificationPermanent},
		{CodeOperationFailed, ClassificationPermanent},
		{ErrorCode("SOMETHING_ELSE"), ClassificationPermanent},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, getDefaultClassification(tt.code))
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := Wrap(cause, CodeOperationFailed, "delete failed")

	require.Equal(t, CodeOperationFailed, err.Code())
	require.Equal(t, "delete failed", err.Message())
	require.Equal(t, cause, err.Unwrap())
	require.True(t, Is(err, cause))
	require.Equal(t, "[OPERATION_FAILED] delete failed: permission denied", err.Error())
}

func TestWrap_NilError(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeNotFound, "test"))
	require.Nil(t, Wrapf(nil, CodeNotFound, "test %s", "arg"))
	require.Nil(t, WrapWithContext(nil, CodeNotFound, "test", nil))
}

func TestWrap_PreservesClassification(t *testing.T) {
	network := New(CodeNetwork, "connection reset")
	require.True(t, network.Classification().IsRetryable())

	wrapped := Wrap(network, CodeOperationFailed, "move failed")

	require.Equal(t, CodeOperationFailed, wrapped.Code())
	require.True(t, wrapped.Classification().IsRetryable())
}

func TestWrapWithContext_CopiesContext(t *testing.T) {
	ctx := map[string]interface{}{"path": "/a"}
	err := WrapWithContext(stderrors.New("boom"), CodeOperationFailed, "create failed", ctx)

	ctx["path"] = "/mutated"

	require.Equal(t, "/a", err.Context()["path"])
	require.Equal(t, "[OPERATION_FAILED] create failed (/a): boom", err.Error())
}

func TestWithContext(t *testing.T) {
	err := New(CodeNotFound, "entity does not exist")
	err = WithContext(err, "op", "destroy")
	err = WithContext(err, "path", "/a/b")

	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, map[string]interface{}{"op": "destroy", "path": "/a/b"}, err.Context())
}

func TestWithContext_StandardError(t *testing.T) {
	cause := stderrors.New("plain")
	err := WithContext(cause, "path", "/x")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, cause, err.Unwrap())
	require.Nil(t, WithContext(nil, "k", "v"))
}

func TestWithContext_DoesNotMutateOriginal(t *testing.T) {
	original := WithContext(New(CodeNotFound, "missing"), "path", "/a")
	_ = WithContextMap(original, map[string]interface{}{"path": "/b", "op": "size"})

	require.Equal(t, map[string]interface{}{"path": "/a"}, original.Context())
}

func TestWithClassification(t *testing.T) {
	err := WithClassification(New(CodeNetwork, "no such bucket"), ClassificationPermanent)

	require.Equal(t, CodeNetwork, err.Code())
	require.False(t, IsRetryable(err))
}

func TestGetCode(t *testing.T) {
	require.Equal(t, CodeUnknown, GetCode(nil))
	require.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	require.Equal(t, CodeTypeMismatch, GetCode(New(CodeTypeMismatch, "kind")))

	wrapped := fmt.Errorf("outer: %w", New(CodeAlreadyExists, "exists"))
	require.Equal(t, CodeAlreadyExists, GetCode(wrapped))
}

func TestHasCode(t *testing.T) {
	child := WithContext(New(CodeOperationFailed, "delete failed"), "path", "/d/a.txt")
	parent := Wrap(child, CodeNotFound, "destroy aborted")

	require.True(t, HasCode(parent, CodeNotFound))
	require.True(t, HasCode(parent, CodeOperationFailed))
	require.False(t, HasCode(parent, CodeTypeMismatch))
	require.False(t, HasCode(nil, CodeNotFound))
}

func TestHasCode_Joined(t *testing.T) {
	joined := stderrors.Join(
		New(CodeOperationFailed, "child destroy failed"),
		fmt.Errorf("release: %w", New(CodeInternal, "cleanup panicked")),
	)

	require.True(t, HasCode(joined, CodeOperationFailed))
	require.True(t, HasCode(joined, CodeInternal))
	require.False(t, HasCode(joined, CodeNotFound))
	require.Equal(t, CodeOperationFailed, GetCode(joined))
}

func TestIsRetryable(t *testing.T) {
	require.True(t, IsRetryable(New(CodeTimeout, "slow")))
	require.False(t, IsRetryable(New(CodeNotFound, "gone")))
	require.False(t, IsRetryable(stderrors.New("plain")))
	require.False(t, IsRetryable(nil))
}
