package entity

import (
	"testing"

	platformerrors "github.com/jmgilman/go/fs/entity/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(handles []*Handle) []string {
	out := make([]string, 0, len(handles))
	for _, h := range handles {
		out = append(out, h.Path())
	}
	return out
}

func TestDirectory_Children(t *testing.T) {
	reg, d := newTestRegistry(t)
	mkdir(t, d, "/d", "/d/sub")
	touch(t, d, "/d/a.txt", "/d/sub/b.txt")

	dir, err := reg.Directory("/d")
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	children, err := dir.Children()
	require.NoError(t, err)
	defer func() { _ = ReleaseAll(children) }()

	assert.Equal(t, []string{"/d/a.txt", "/d/sub/"}, paths(children))
	assert.Equal(t, KindFile, children[0].Kind())
	assert.Equal(t, KindDirectory, children[1].Kind())
	assert.True(t, children[0].Exists())
}

func TestDirectory_Children_SharedIdentity(t *testing.T) {
	reg, d := newTestRegistry(t)
	mkdir(t, d, "/d")

	// Cached before it existed on disk
	f, err := reg.File("/d/a.txt")
	require.NoError(t, err)
	defer func() { _ = f.Release() }()
	require.False(t, f.Exists())

	touch(t, d, "/d/a.txt")

	dir, err := reg.Directory("/d")
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	children, err := dir.Children()
	require.NoError(t, err)
	defer func() { _ = ReleaseAll(children) }()

	require.Len(t, children, 1)
	assert.True(t, children[0].Same(f.Handle))
	assert.True(t, f.Exists(), "listing updates cached flags")
}

func TestDirectory_Children_FiltersSpecialEntries(t *testing.T) {
	d := newFaultyDriver(t)
	d.extraNames = []string{".", "..", "./", "../"}
	reg := NewRegistry(d)
	mkdir(t, d, "/d")
	touch(t, d, "/d/only.txt")

	dir, err := reg.Directory("/d")
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	children, err := dir.Children()
	require.NoError(t, err)
	defer func() { _ = ReleaseAll(children) }()

	assert.Equal(t, []string{"/d/only.txt"}, paths(children))
}

func TestDirectory_Children_NotFound(t *testing.T) {
	reg, _ := newTestRegistry(t)

	dir, err := reg.Directory("/nope")
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	_, err = dir.Children()
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))
}

func TestDirectory_Children_KindConflict(t *testing.T) {
	reg, d := newTestRegistry(t)
	mkdir(t, d, "/d", "/d/x")

	// /d/x is registered as a file while a directory sits on disk
	f, err := reg.Get("/d/x", KindFile)
	require.Error(t, err)
	require.Nil(t, f)

	g, err := reg.Get("/d/y", KindFile)
	require.NoError(t, err)
	defer func() { _ = g.Release() }()
	mkdir(t, d, "/d/y")

	dir, err := reg.Directory("/d")
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	_, err = dir.Children()
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeTypeMismatch, platformerrors.GetCode(err))
	assert.Equal(t, 2, reg.Len(), "partially resolved children are released")
}

func TestDirectory_Lookups(t *testing.T) {
	reg, d := newTestRegistry(t)
	mkdir(t, d, "/d", "/d/sub")
	touch(t, d, "/d/a.txt")

	dir, err := reg.Directory("/d")
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	sub, err := dir.Child("sub")
	require.NoError(t, err)
	defer func() { _ = sub.Release() }()
	assert.True(t, sub.IsDirectory())

	a, err := dir.Child("a.txt")
	require.NoError(t, err)
	defer func() { _ = a.Release() }()
	assert.True(t, a.IsFile())

	_, err = dir.Child("missing")
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))

	f, err := dir.File("new.txt")
	require.NoError(t, err)
	defer func() { _ = f.Release() }()
	assert.Equal(t, "/d/new.txt", f.Path())
	assert.False(t, f.Exists())

	nd, err := dir.Directory("nested")
	require.NoError(t, err)
	defer func() { _ = nd.Release() }()
	assert.Equal(t, "/d/nested/", nd.Path())

	_, err = dir.Directory("a.txt")
	assert.Equal(t, platformerrors.CodeTypeMismatch, platformerrors.GetCode(err))
}

func TestDirectory_DestroyRecursive(t *testing.T) {
	reg, d := newTestRegistry(t)
	mkdir(t, d, "/d", "/d/sub")
	touch(t, d, "/d/a.txt", "/d/sub/b.txt")

	dir, err := reg.Directory("/d")
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	require.NoError(t, dir.Destroy())

	assert.False(t, dir.Exists())
	for _, p := range []string{"/d/", "/d/sub/", "/d/a.txt", "/d/sub/b.txt"} {
		assert.False(t, exists(t, d, p), p)
	}
	assert.Equal(t, 1, reg.Len(), "only the directory handle remains registered")
}

func TestDirectory_DestroyUpdatesHeldChildren(t *testing.T) {
	reg, d := newTestRegistry(t)
	mkdir(t, d, "/d")
	touch(t, d, "/d/a.txt")

	a, err := reg.File("/d/a.txt")
	require.NoError(t, err)
	defer func() { _ = a.Release() }()

	dir, err := reg.Directory("/d")
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	require.NoError(t, dir.Destroy())
	assert.False(t, a.Exists())
}

func TestDirectory_DestroyAbortsOnChildFailure(t *testing.T) {
	d := newFaultyDriver(t)
	reg := NewRegistry(d)
	mkdir(t, d, "/d")
	touch(t, d, "/d/a.txt", "/d/b.txt", "/d/c.txt")
	d.failDelete("/d/b.txt", errDisk)

	dir, err := reg.Directory("/d")
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	err = dir.Destroy()
	require.Error(t, err)
	assert.True(t, platformerrors.HasCode(err, platformerrors.CodeOperationFailed))
	assert.ErrorIs(t, err, errDisk)

	var pe platformerrors.PlatformError
	require.True(t, platformerrors.As(err, &pe))
	assert.Equal(t, "/d/b.txt", pe.Context()["child"])
	assert.Equal(t, "/d/", pe.Context()["path"])

	// Children before the failure stay destroyed; the rest are untouched
	assert.False(t, exists(t, d, "/d/a.txt"))
	assert.True(t, exists(t, d, "/d/b.txt"))
	assert.True(t, exists(t, d, "/d/c.txt"))
	assert.True(t, dir.Exists())
	assert.Equal(t, []string{"/d/a.txt"}, d.deleted)
}

func TestDirectory_DestroyNested(t *testing.T) {
	reg, d := newTestRegistry(t)
	mkdir(t, d, "/r", "/r/a", "/r/a/b", "/r/a/b/c")
	touch(t, d, "/r/a/b/c/leaf.txt", "/r/a/mid.txt")

	dir, err := reg.Directory("/r")
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	require.NoError(t, dir.Destroy())
	assert.False(t, exists(t, d, "/r/"))
	assert.Equal(t, 1, reg.Len())
}

func TestDirectory_DestroyJoinsChildReleaseErrors(t *testing.T) {
	d := newFaultyDriver(t)
	reg := NewRegistry(d)

	tmp, err := reg.CreateTemporary("scratch.txt", KindFile)
	require.NoError(t, err)
	d.failDelete(tmp.Path(), errDisk)

	// Drop the caller's reference mid-destroy so the listing holds the last one
	d.onDelete = func(string) { _ = tmp.Release() }

	dir, err := reg.TempDirectory()
	require.NoError(t, err)
	defer func() { _ = dir.Release() }()

	err = dir.Destroy()
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisk)

	var joined interface{ Unwrap() []error }
	require.ErrorAs(t, err, &joined)
	require.Len(t, joined.Unwrap(), 2)

	var pe platformerrors.PlatformError
	require.True(t, platformerrors.As(joined.Unwrap()[0], &pe))
	assert.Equal(t, tmp.Path(), pe.Context()["child"])
	assert.True(t, platformerrors.HasCode(joined.Unwrap()[1], platformerrors.CodeOperationFailed))

	assert.True(t, dir.Exists())
	assert.True(t, exists(t, d, tmp.Path()))
	assert.Equal(t, 1, reg.Len(), "the temporary is evicted after its failed cleanup")
}
