package entity

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/jmgilman/go/fs/entity/driver"
	"github.com/jmgilman/go/fs/entity/driver/billy"
	"github.com/stretchr/testify/require"
)

var rw = Readable | Writable

func newMemoryDriver(t *testing.T) *billy.Driver {
	t.Helper()
	d, err := billy.NewMemory()
	require.NoError(t, err)
	return d
}

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *billy.Driver) {
	t.Helper()
	d := newMemoryDriver(t)
	return NewRegistry(d, opts...), d
}

// mkdir creates directories directly through the driver.
func mkdir(t *testing.T, d driver.Driver, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, d.CreateDirectory(Canonicalize(p, KindDirectory), driver.CreateOptions{Readable: true, Writable: true}))
	}
}

// touch creates files directly through the driver.
func touch(t *testing.T, d driver.Driver, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, d.CreateFile(p, driver.CreateOptions{Readable: true, Writable: true}))
	}
}

func writeFile(t *testing.T, d *billy.Driver, p string, data string) {
	t.Helper()
	require.NoError(t, util.WriteFile(d.Unwrap(), p, []byte(data), 0o644))
}

func exists(t *testing.T, d driver.Driver, p string) bool {
	t.Helper()
	attrs, err := d.QueryAttributes(p)
	require.NoError(t, err)
	return attrs.Exists
}

// countingDriver counts attribute queries and can hold them until released.
type countingDriver struct {
	driver.Driver
	queries atomic.Int64
	gate    chan struct{}
}

func (d *countingDriver) QueryAttributes(p string) (driver.Attributes, error) {
	d.queries.Add(1)
	if d.gate != nil {
		<-d.gate
	}
	return d.Driver.QueryAttributes(p)
}

// faultyDriver injects failures into an otherwise working driver.
type faultyDriver struct {
	driver.Driver

	mu            sync.Mutex
	deleteErrs    map[string]error
	queryErr      error
	panicOnDelete bool
	extraNames    []string
	deleted       []string

	// onDelete runs before every DeleteFile call.
	onDelete func(p string)
}

func newFaultyDriver(t *testing.T) *faultyDriver {
	return &faultyDriver{
		Driver:     newMemoryDriver(t),
		deleteErrs: make(map[string]error),
	}
}

func (d *faultyDriver) failDelete(p string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleteErrs[p] = err
}

func (d *faultyDriver) QueryAttributes(p string) (driver.Attributes, error) {
	d.mu.Lock()
	err := d.queryErr
	d.mu.Unlock()
	if err != nil {
		return driver.Attributes{}, err
	}
	return d.Driver.QueryAttributes(p)
}

func (d *faultyDriver) DeleteFile(p string) error {
	if d.onDelete != nil {
		d.onDelete(p)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.panicOnDelete {
		panic("disk on fire")
	}
	if err, ok := d.deleteErrs[p]; ok {
		return err
	}
	d.deleted = append(d.deleted, p)
	return d.Driver.DeleteFile(p)
}

func (d *faultyDriver) ListDirectory(p string) ([]string, error) {
	names, err := d.Driver.ListDirectory(p)
	if err != nil {
		return nil, err
	}
	return append(names, d.extraNames...), nil
}

var errDisk = errors.New("input/output error")

func newMemoryDriverWithWorkDir(t *testing.T, wd string) (*billy.Driver, error) {
	t.Helper()
	return billy.NewMemory(billy.WithWorkDir(wd))
}
