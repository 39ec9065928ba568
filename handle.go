package entity

import (
	"errors"
	"sync/atomic"

	"github.com/jmgilman/go/fs/entity/internal/pathutil"
)

// Handle is one reference to a shared entity. Every handle obtained from a
// Registry must be released exactly once; further Release calls are no-ops.
// A handle must not be used after it is released.
//
// Handles are safe for concurrent use. Operations on the same entity are
// serialized; operations on different entities are not ordered.
type Handle struct {
	e        *entity
	released atomic.Bool
}

func newHandle(e *entity) *Handle {
	return &Handle{e: e}
}

// Path returns the canonical path. Directory paths end in "/".
func (h *Handle) Path() string {
	return h.e.path
}

// Name returns the last path segment. The name of a root is the root.
func (h *Handle) Name() string {
	return pathutil.Base(h.e.path)
}

// Kind returns the entity kind.
func (h *Handle) Kind() Kind {
	return h.e.kind
}

// IsFile reports whether the entity is a file.
func (h *Handle) IsFile() bool {
	return h.e.kind == KindFile
}

// IsDirectory reports whether the entity is a directory.
func (h *Handle) IsDirectory() bool {
	return h.e.kind == KindDirectory
}

// Flags returns the cached flags.
func (h *Handle) Flags() Flags {
	return h.e.loadFlags()
}

// The flag accessors below read cached state only and never call the driver.

// Exists reports whether the entity was present at the last observation.
func (h *Handle) Exists() bool {
	return h.Flags().Has(Exists)
}

// IsHidden reports whether the entity is hidden.
func (h *Handle) IsHidden() bool {
	return h.Flags().Has(Hidden)
}

// IsReadable reports whether the entity is readable.
func (h *Handle) IsReadable() bool {
	return h.Flags().Has(Readable)
}

// IsWritable reports whether the entity is writable.
func (h *Handle) IsWritable() bool {
	return h.Flags().Has(Writable)
}

// IsReadOnly reports whether the entity is readable but not writable.
func (h *Handle) IsReadOnly() bool {
	f := h.Flags()
	return f.Has(Readable) && !f.Has(Writable)
}

// IsWriteOnly reports whether the entity is writable but not readable.
func (h *Handle) IsWriteOnly() bool {
	f := h.Flags()
	return f.Has(Writable) && !f.Has(Readable)
}

// IsTemporary reports whether the entity is destroyed on last release.
func (h *Handle) IsTemporary() bool {
	return h.Flags().Has(Temporary)
}

// Create creates the entity on disk with the given flags. Exists is implied.
// It fails with ALREADY_EXISTS if the entity exists and leaves flags
// unchanged on any failure.
func (h *Handle) Create(flags Flags) error {
	return h.e.create(flags)
}

// Destroy removes the entity from disk. Directories are emptied first,
// child by child; the first child failure aborts the destroy and is
// reported with the child's path in the "child" context field.
func (h *Handle) Destroy() error {
	return h.e.destroy()
}

// Hide sets the hidden attribute.
func (h *Handle) Hide() error {
	return h.e.setHidden(true)
}

// Show clears the hidden attribute.
func (h *Handle) Show() error {
	return h.e.setHidden(false)
}

// Move relocates the entity to path and returns a handle for the
// destination. This entity no longer exists afterward. The destination is
// never temporary.
func (h *Handle) Move(path string) (*Handle, error) {
	return h.e.relocate(opMove, path)
}

// Copy duplicates the entity at path and returns a handle for the copy.
func (h *Handle) Copy(path string) (*Handle, error) {
	return h.e.relocate(opCopy, path)
}

// Parent returns the directory containing the entity. It fails with
// ROOT_HAS_NO_PARENT for roots.
func (h *Handle) Parent() (*Directory, error) {
	p, err := pathutil.Parent(h.e.path)
	if err != nil {
		return nil, err
	}
	return h.e.reg.Directory(p)
}

// Refresh re-queries the driver and replaces the cached flags.
func (h *Handle) Refresh() error {
	return h.e.refresh()
}

// Retain returns a new handle to the same entity.
func (h *Handle) Retain() *Handle {
	return h.e.reg.retain(h.e)
}

// Release drops this handle's reference. Releasing the last handle to a
// temporary entity destroys it; any cleanup failure is returned.
func (h *Handle) Release() error {
	if !h.released.CompareAndSwap(false, true) {
		return nil
	}
	return h.e.reg.release(h.e)
}

// Same reports whether both handles refer to the same entity.
func (h *Handle) Same(other *Handle) bool {
	return other != nil && h.e == other.e
}

// AsFile returns a File view of the handle. It fails with TYPE_MISMATCH for
// directories. The view shares this handle's reference.
func (h *Handle) AsFile() (*File, error) {
	if h.e.kind != KindFile {
		return nil, typeMismatch(opGet, h.e.path, KindFile, h.e.kind)
	}
	return &File{Handle: h}, nil
}

// AsDirectory returns a Directory view of the handle. It fails with
// TYPE_MISMATCH for files. The view shares this handle's reference.
func (h *Handle) AsDirectory() (*Directory, error) {
	if h.e.kind != KindDirectory {
		return nil, typeMismatch(opGet, h.e.path, KindDirectory, h.e.kind)
	}
	return &Directory{Handle: h}, nil
}

// ReleaseAll releases every handle and joins the errors.
func ReleaseAll(handles []*Handle) error {
	var errs []error
	for _, h := range handles {
		if h == nil {
			continue
		}
		if err := h.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
