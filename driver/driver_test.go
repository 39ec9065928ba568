package driver

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeUnknown, "unknown"},
		{TypeLocal, "local"},
		{TypeMemory, "memory"},
		{TypeRemote, "remote"},
		{Type(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestSentinels(t *testing.T) {
	assert.True(t, errors.Is(ErrNotExist, fs.ErrNotExist))
	assert.True(t, errors.Is(ErrExist, fs.ErrExist))
	assert.True(t, errors.Is(ErrPermission, fs.ErrPermission))
	assert.False(t, errors.Is(ErrNotEmpty, ErrUnsupported))
}
