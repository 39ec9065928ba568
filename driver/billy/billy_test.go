package billy

import (
	"io"
	"os"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/jmgilman/go/fs/entity/driver"
	"github.com/jmgilman/go/fs/entity/driver/drivertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemory(t *testing.T) *Driver {
	t.Helper()
	d, err := NewMemory()
	require.NoError(t, err)
	return d
}

func newLocal(t *testing.T) *Driver {
	t.Helper()
	d, err := NewLocal(WithRoot(t.TempDir()))
	require.NoError(t, err)
	return d
}

func TestMemory_Conformance(t *testing.T) {
	drivertest.TestSuiteWithConfig(t, func() driver.Driver {
		return newMemory(t)
	}, drivertest.MemoryConfig())
}

func TestLocal_Conformance(t *testing.T) {
	drivertest.TestSuiteWithConfig(t, func() driver.Driver {
		return newLocal(t)
	}, drivertest.POSIXConfig())
}

func TestNewMemory_Defaults(t *testing.T) {
	d := newMemory(t)

	assert.Equal(t, driver.TypeMemory, d.Type())
	assert.NotNil(t, d.Unwrap())

	tmp, err := d.TempRoot()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/", tmp)

	wd, err := d.CurrentDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/", wd)

	attrs, err := d.QueryAttributes(tmp)
	require.NoError(t, err)
	assert.True(t, attrs.Exists)
	assert.True(t, attrs.IsDir)
}

func TestNewMemory_Options(t *testing.T) {
	d, err := NewMemory(WithTempRoot("/scratch/tmp"), WithWorkDir("/home/me"))
	require.NoError(t, err)

	tmp, err := d.TempRoot()
	require.NoError(t, err)
	assert.Equal(t, "/scratch/tmp/", tmp)

	wd, err := d.CurrentDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/home/me/", wd)

	attrs, err := d.QueryAttributes("/scratch/")
	require.NoError(t, err)
	assert.True(t, attrs.Exists)
}

func TestNewLocal_WithRoot(t *testing.T) {
	root := t.TempDir()
	d, err := NewLocal(WithRoot(root))
	require.NoError(t, err)

	assert.Equal(t, driver.TypeLocal, d.Type())

	wd, err := d.CurrentDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/", wd)

	info, err := os.Stat(root + "/tmp")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewLocal_DefaultRoot(t *testing.T) {
	d, err := NewLocal()
	require.NoError(t, err)

	wd, err := d.CurrentDirectory()
	require.NoError(t, err)
	assert.True(t, len(wd) > 0 && wd[len(wd)-1] == '/')

	tmp, err := d.TempRoot()
	require.NoError(t, err)
	attrs, err := d.QueryAttributes(tmp)
	require.NoError(t, err)
	assert.True(t, attrs.IsDir)
}

func TestQueryAttributes_Size(t *testing.T) {
	for name, d := range map[string]*Driver{"memory": newMemory(t), "local": newLocal(t)} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, util.WriteFile(d.Unwrap(), "/data.bin", []byte("hello"), 0o644))

			attrs, err := d.QueryAttributes("/data.bin")
			require.NoError(t, err)
			assert.Equal(t, int64(5), attrs.Size)
		})
	}
}

func TestQueryAttributes_FileParent(t *testing.T) {
	d := newLocal(t)
	require.NoError(t, d.CreateFile("/f", driver.CreateOptions{Readable: true, Writable: true}))

	attrs, err := d.QueryAttributes("/f/child")
	require.NoError(t, err)
	assert.False(t, attrs.Exists)
}

func TestCopy_PreservesContent(t *testing.T) {
	d := newMemory(t)
	require.NoError(t, d.CreateDirectory("/src/", driver.CreateOptions{Readable: true, Writable: true}))
	require.NoError(t, util.WriteFile(d.Unwrap(), "/src/a.txt", []byte("payload"), 0o644))

	require.NoError(t, d.Copy("/src/", "/dst/"))

	f, err := d.Unwrap().Open("/dst/a.txt")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestDeleteDirectory_Root(t *testing.T) {
	d := newMemory(t)
	err := d.DeleteDirectory("/")
	assert.ErrorIs(t, err, driver.ErrPermission)
}

func TestDeleteFile_Directory(t *testing.T) {
	d := newMemory(t)
	require.NoError(t, d.CreateDirectory("/dir/", driver.CreateOptions{Readable: true, Writable: true}))

	assert.Error(t, d.DeleteFile("/dir"))
}

func TestMemory_HiddenMarks(t *testing.T) {
	d := newMemory(t)
	rw := driver.CreateOptions{Readable: true, Writable: true}
	require.NoError(t, d.CreateDirectory("/d/", rw))
	require.NoError(t, d.CreateFile("/d/x", rw))
	require.NoError(t, d.SetHidden("/d/x", true))

	t.Run("copy keeps marks on both sides", func(t *testing.T) {
		require.NoError(t, d.Copy("/d/", "/c/"))

		for _, p := range []string{"/d/x", "/c/x"} {
			attrs, err := d.QueryAttributes(p)
			require.NoError(t, err)
			assert.True(t, attrs.Hidden, p)
		}
	})

	t.Run("delete drops marks", func(t *testing.T) {
		require.NoError(t, d.DeleteFile("/c/x"))
		require.NoError(t, d.CreateFile("/c/x", rw))

		attrs, err := d.QueryAttributes("/c/x")
		require.NoError(t, err)
		assert.False(t, attrs.Hidden)
	})

	t.Run("dot names cannot be shown", func(t *testing.T) {
		require.NoError(t, d.CreateFile("/d/.dot", rw))
		assert.ErrorIs(t, d.SetHidden("/d/.dot", false), driver.ErrUnsupported)
	})
}

func TestHiddenMarks_Within(t *testing.T) {
	m := newHiddenMarks()
	m.set("/a", true)
	m.set("/a/b", true)
	m.set("/ab", true)

	m.move("/a", "/z")
	assert.True(t, m.has("/z"))
	assert.True(t, m.has("/z/b"))
	assert.True(t, m.has("/ab"))
	assert.False(t, m.has("/a"))

	m.drop("/z")
	assert.False(t, m.has("/z/b"))
	assert.True(t, m.has("/ab"))
}

func TestPerms(t *testing.T) {
	assert.Equal(t, os.FileMode(0o644), filePerm(driver.CreateOptions{Readable: true, Writable: true}))
	assert.Equal(t, os.FileMode(0o444), filePerm(driver.CreateOptions{Readable: true}))
	assert.Equal(t, os.FileMode(0o200), filePerm(driver.CreateOptions{Writable: true}))
	assert.Equal(t, os.FileMode(0o755), dirPerm(driver.CreateOptions{Readable: true, Writable: true}))
}
