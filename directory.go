package entity

import (
	"github.com/jmgilman/go/fs/entity/internal/pathutil"
)

// Directory is a handle to a directory entity.
type Directory struct {
	*Handle
}

// Children returns a handle for every entry in the directory. "." and ".."
// are never included. Each child shares identity with any other handle to
// the same path; release them with ReleaseAll.
//
// It fails with NOT_FOUND if the directory does not exist.
func (d *Directory) Children() ([]*Handle, error) {
	if !d.Exists() {
		return nil, notFound(opChildren, d.e.path)
	}
	return d.e.children()
}

// Child returns a handle to name inside the directory, with its kind taken
// from the driver. It fails with NOT_FOUND if nothing exists there.
func (d *Directory) Child(name string) (*Handle, error) {
	return d.e.reg.Lookup(pathutil.Join(d.e.path, name))
}

// File returns a handle to the file name inside the directory.
func (d *Directory) File(name string) (*File, error) {
	return d.e.reg.File(pathutil.Join(d.e.path, name))
}

// Directory returns a handle to the directory name inside the directory.
func (d *Directory) Directory(name string) (*Directory, error) {
	return d.e.reg.Directory(pathutil.Join(d.e.path, name))
}
