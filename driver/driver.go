package driver

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a file or directory already exists.
	// Re-exported from io/fs for convenience.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when the backend refuses access.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrNotEmpty is returned when a directory removal finds children.
	ErrNotEmpty = errors.New("directory not empty")

	// ErrUnsupported is returned when an operation is not supported by the
	// backend, for example toggling the hidden attribute on a POSIX disk.
	ErrUnsupported = errors.New("operation not supported")
)

// Type represents the kind of storage behind a Driver.
type Type int

const (
	// TypeUnknown indicates the backend type is unknown or unspecified.
	TypeUnknown Type = iota
	// TypeLocal indicates a disk-backed driver.
	TypeLocal
	// TypeMemory indicates an in-memory driver.
	TypeMemory
	// TypeRemote indicates a remote object store.
	TypeRemote
)

// String returns a string representation of the Type.
func (t Type) String() string {
	switch t {
	case TypeLocal:
		return "local"
	case TypeMemory:
		return "memory"
	case TypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Attributes describes the on-disk state of a path.
//
// When Exists is false the remaining fields are meaningless.
type Attributes struct {
	Exists   bool
	IsDir    bool
	Readable bool
	Writable bool
	Hidden   bool

	// Size is the byte length of a file. Zero for directories.
	Size int64
}

// CreateOptions controls the initial state of a newly created entity.
type CreateOptions struct {
	Readable bool
	Writable bool
	Hidden   bool
}

// Driver is the storage contract used by the entity registry.
//
// All paths are canonical: absolute, forward-slash separated, with
// directories ending in a single "/". Implementations must be safe for
// concurrent use.
type Driver interface {
	// QueryAttributes returns the state of path. A missing path is reported
	// with Exists=false and a nil error.
	QueryAttributes(path string) (Attributes, error)

	// CreateFile creates an empty file. It fails with ErrExist if anything
	// already occupies path and ErrNotExist if the parent is missing.
	CreateFile(path string, opts CreateOptions) error

	// CreateDirectory creates a single directory. The parent must exist.
	CreateDirectory(path string, opts CreateOptions) error

	// DeleteFile removes a file.
	DeleteFile(path string) error

	// DeleteDirectory removes an empty directory. It fails with ErrNotEmpty
	// if children remain.
	DeleteDirectory(path string) error

	// ListDirectory returns the names of the immediate children of path.
	// Names are bare (no parent prefix); directory names may carry a
	// trailing "/".
	ListDirectory(path string) ([]string, error)

	// Move relocates src to dst. Directories move with their contents.
	Move(src, dst string) error

	// Copy duplicates src at dst, recursively for directories.
	Copy(src, dst string) error

	// SetHidden toggles the hidden attribute of path.
	SetHidden(path string, hidden bool) error

	// TempRoot returns the canonical directory used for temporary entities.
	TempRoot() (string, error)

	// CurrentDirectory returns the canonical directory relative paths are
	// resolved against.
	CurrentDirectory() (string, error)

	// Type returns the backend type.
	Type() Type
}
