package billy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/jmgilman/go/fs/entity/driver"
	"github.com/jmgilman/go/fs/entity/internal/pathutil"
)

const (
	defaultTempRoot = "/tmp/"
	defaultWorkDir  = "/"
)

// Driver adapts a billy.Filesystem to the driver.Driver contract.
type Driver struct {
	bfs      billy.Filesystem
	typ      driver.Type
	root     string // OS directory behind bfs; empty for memory
	tempRoot string
	workDir  string
	marks    *hiddenMarks // memory only
}

var _ driver.Driver = (*Driver)(nil)

// Option configures driver creation.
type Option func(*options)

type options struct {
	root     string
	tempRoot string
	workDir  string
}

// WithRoot confines a local driver to the given OS directory. Canonical paths
// are resolved beneath it. Ignored by the memory driver.
func WithRoot(dir string) Option {
	return func(o *options) {
		o.root = dir
	}
}

// WithTempRoot sets the directory used for temporary entities. It is created
// if missing.
func WithTempRoot(p string) Option {
	return func(o *options) {
		o.tempRoot = p
	}
}

// WithWorkDir sets the directory relative paths are resolved against.
func WithWorkDir(p string) Option {
	return func(o *options) {
		o.workDir = p
	}
}

// NewLocal creates a disk-backed driver.
//
// Without WithRoot the driver is rooted at "/" and defaults its temp root to
// os.TempDir and its working directory to the process working directory.
// With a root, both default to locations inside it.
func NewLocal(opts ...Option) (*Driver, error) {
	o := options{root: "/"}
	for _, opt := range opts {
		opt(&o)
	}

	if o.tempRoot == "" {
		o.tempRoot = defaultTempRoot
		if o.root == "/" {
			o.tempRoot = filepath.ToSlash(os.TempDir())
		}
	}
	if o.workDir == "" {
		o.workDir = defaultWorkDir
		if o.root == "/" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("resolve working directory: %w", err)
			}
			o.workDir = filepath.ToSlash(wd)
		}
	}

	return newDriver(osfs.New(o.root), driver.TypeLocal, o.root, o, nil)
}

// NewMemory creates an in-memory driver. The filesystem initially holds only
// the temp root.
func NewMemory(opts ...Option) (*Driver, error) {
	o := options{
		tempRoot: defaultTempRoot,
		workDir:  defaultWorkDir,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return newDriver(memfs.New(), driver.TypeMemory, "", o, newHiddenMarks())
}

func newDriver(bfs billy.Filesystem, typ driver.Type, root string, o options, marks *hiddenMarks) (*Driver, error) {
	d := &Driver{
		bfs:      bfs,
		typ:      typ,
		root:     root,
		tempRoot: pathutil.Canonicalize(o.tempRoot, true),
		workDir:  pathutil.Canonicalize(o.workDir, true),
		marks:    marks,
	}

	if err := bfs.MkdirAll(native(d.tempRoot), 0o755); err != nil {
		return nil, fmt.Errorf("create temp root %s: %w", d.tempRoot, err)
	}
	return d, nil
}

// Unwrap returns the underlying billy.Filesystem.
// This allows callers to read and write file contents directly.
func (d *Driver) Unwrap() billy.Filesystem {
	return d.bfs
}

// Type returns driver.TypeLocal or driver.TypeMemory.
func (d *Driver) Type() driver.Type {
	return d.typ
}

// TempRoot returns the canonical temp directory.
func (d *Driver) TempRoot() (string, error) {
	return d.tempRoot, nil
}

// CurrentDirectory returns the canonical working directory.
func (d *Driver) CurrentDirectory() (string, error) {
	return d.workDir, nil
}

// QueryAttributes returns the state of p.
func (d *Driver) QueryAttributes(p string) (driver.Attributes, error) {
	if pathutil.IsRoot(p) {
		return driver.Attributes{Exists: true, IsDir: true, Readable: true, Writable: true}, nil
	}

	info, err := d.stat(p)
	if err != nil {
		return driver.Attributes{}, err
	}
	if info == nil {
		return driver.Attributes{}, nil
	}

	hidden, err := d.hidden(p)
	if err != nil {
		return driver.Attributes{}, err
	}

	perm := info.Mode().Perm()
	attrs := driver.Attributes{
		Exists:   true,
		IsDir:    info.IsDir(),
		Readable: perm&0o400 != 0,
		Writable: perm&0o200 != 0,
		Hidden:   hidden,
	}
	if !attrs.IsDir {
		attrs.Size = info.Size()
	}
	return attrs, nil
}

// CreateFile creates an empty file with permissions matching opts.
func (d *Driver) CreateFile(p string, opts driver.CreateOptions) error {
	if err := d.checkCreate(p); err != nil {
		return err
	}

	perm := filePerm(opts)
	f, err := d.bfs.OpenFile(native(p), os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return d.finishCreate(p, perm, opts)
}

// CreateDirectory creates a single directory with permissions matching opts.
func (d *Driver) CreateDirectory(p string, opts driver.CreateOptions) error {
	if err := d.checkCreate(p); err != nil {
		return err
	}

	perm := dirPerm(opts)
	if err := d.bfs.MkdirAll(native(p), perm); err != nil {
		return err
	}

	return d.finishCreate(p, perm, opts)
}

// DeleteFile removes a file.
func (d *Driver) DeleteFile(p string) error {
	info, err := d.mustStat(p)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "remove", Path: p, Err: syscall.EISDIR}
	}

	if err := d.bfs.Remove(native(p)); err != nil {
		return err
	}
	d.dropMarks(p)
	return nil
}

// DeleteDirectory removes an empty directory.
func (d *Driver) DeleteDirectory(p string) error {
	if pathutil.IsRoot(p) {
		return &fs.PathError{Op: "remove", Path: p, Err: driver.ErrPermission}
	}

	info, err := d.mustStat(p)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "remove", Path: p, Err: syscall.ENOTDIR}
	}

	entries, err := d.bfs.ReadDir(native(p))
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return &fs.PathError{Op: "remove", Path: p, Err: driver.ErrNotEmpty}
	}

	if err := d.bfs.Remove(native(p)); err != nil {
		return err
	}
	d.dropMarks(p)
	return nil
}

// ListDirectory returns the names of the children of p. Directory names
// carry a trailing "/".
func (d *Driver) ListDirectory(p string) ([]string, error) {
	if !pathutil.IsRoot(p) {
		info, err := d.mustStat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, &fs.PathError{Op: "readdir", Path: p, Err: syscall.ENOTDIR}
		}
	}

	infos, err := d.bfs.ReadDir(native(p))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() {
			name += pathutil.Separator
		}
		names = append(names, name)
	}
	return names, nil
}

// Move renames src to dst. The destination must not exist and its parent
// must.
func (d *Driver) Move(src, dst string) error {
	if err := d.checkRelocate(src, dst); err != nil {
		return err
	}

	if err := d.bfs.Rename(native(src), native(dst)); err != nil {
		return err
	}
	if d.marks != nil {
		d.marks.move(pathutil.Key(src), pathutil.Key(dst))
	}
	return nil
}

// Copy duplicates src at dst. Directories are copied recursively.
func (d *Driver) Copy(src, dst string) error {
	if err := d.checkRelocate(src, dst); err != nil {
		return err
	}

	if err := d.copy(native(src), native(dst)); err != nil {
		return err
	}
	if d.marks != nil {
		d.marks.copy(pathutil.Key(src), pathutil.Key(dst))
	}
	return nil
}

// SetHidden toggles the hidden attribute of p.
func (d *Driver) SetHidden(p string, hidden bool) error {
	if _, err := d.mustStat(p); err != nil {
		return err
	}

	current, err := d.hidden(p)
	if err != nil {
		return err
	}
	if current == hidden {
		return nil
	}

	if d.marks != nil {
		if !hidden && dotName(p) {
			return fmt.Errorf("show %s: %w", p, driver.ErrUnsupported)
		}
		d.marks.set(pathutil.Key(p), hidden)
		return nil
	}
	return setOSHidden(d.osPath(p), hidden)
}

// stat returns nil info and nil error when p does not exist.
func (d *Driver) stat(p string) (fs.FileInfo, error) {
	info, err := d.bfs.Stat(native(p))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}
		return nil, err
	}
	return info, nil
}

func (d *Driver) mustStat(p string) (fs.FileInfo, error) {
	info, err := d.stat(p)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: driver.ErrNotExist}
	}
	return info, nil
}

func (d *Driver) checkCreate(p string) error {
	if pathutil.IsRoot(p) {
		return &fs.PathError{Op: "create", Path: p, Err: driver.ErrExist}
	}

	// Check if the path is already occupied
	info, err := d.stat(p)
	if err != nil {
		return err
	}
	if info != nil {
		return &fs.PathError{Op: "create", Path: p, Err: driver.ErrExist}
	}

	return d.checkParent("create", p)
}

func (d *Driver) checkRelocate(src, dst string) error {
	if _, err := d.mustStat(src); err != nil {
		return err
	}

	info, err := d.stat(dst)
	if err != nil {
		return err
	}
	if info != nil || pathutil.IsRoot(dst) {
		return &fs.PathError{Op: "rename", Path: dst, Err: driver.ErrExist}
	}

	return d.checkParent("rename", dst)
}

// checkParent verifies the parent of p exists as a directory. Billy creates
// missing parents implicitly, which the driver contract forbids.
func (d *Driver) checkParent(op, p string) error {
	parent, err := pathutil.Parent(p)
	if err != nil || pathutil.IsRoot(parent) {
		return nil
	}

	info, err := d.stat(parent)
	if err != nil {
		return err
	}
	if info == nil || !info.IsDir() {
		return &fs.PathError{Op: op, Path: parent, Err: driver.ErrNotExist}
	}
	return nil
}

func (d *Driver) finishCreate(p string, perm fs.FileMode, opts driver.CreateOptions) error {
	// Creation modes are filtered through the umask on disk
	if d.typ == driver.TypeLocal {
		if ch, ok := d.bfs.(billy.Change); ok {
			_ = ch.Chmod(native(p), perm)
		}
	}

	if !opts.Hidden {
		return nil
	}
	if err := d.SetHidden(p, true); err != nil {
		_ = d.bfs.Remove(native(p))
		return err
	}
	return nil
}

func (d *Driver) hidden(p string) (bool, error) {
	if dotName(p) {
		return true, nil
	}
	if d.marks != nil {
		return d.marks.has(pathutil.Key(p)), nil
	}
	return isOSHidden(d.osPath(p))
}

func (d *Driver) dropMarks(p string) {
	if d.marks != nil {
		d.marks.drop(pathutil.Key(p))
	}
}

// osPath maps a canonical path onto the OS path behind a local driver.
func (d *Driver) osPath(p string) string {
	return filepath.Join(d.root, filepath.FromSlash(native(p)))
}

// native converts a canonical path to the form billy expects.
func native(p string) string {
	return pathutil.Key(p)
}

func dotName(p string) bool {
	return strings.HasPrefix(pathutil.Base(p), ".")
}

func filePerm(opts driver.CreateOptions) fs.FileMode {
	var perm fs.FileMode
	if opts.Readable {
		perm |= 0o444
	}
	if opts.Writable {
		perm |= 0o200
	}
	return perm
}

func dirPerm(opts driver.CreateOptions) fs.FileMode {
	var perm fs.FileMode
	if opts.Readable {
		perm |= 0o555
	}
	if opts.Writable {
		perm |= 0o300
	}
	return perm
}
