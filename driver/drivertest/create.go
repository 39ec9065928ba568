package drivertest

import (
	"errors"
	"testing"

	"github.com/jmgilman/go/fs/entity/driver"
)

// TestCreate tests CreateFile and CreateDirectory contracts.
func TestCreate(t *testing.T, d driver.Driver, config Config) {
	run(t, d, config, "FileAlreadyExists", func(t *testing.T) {
		p := Base + "file.txt"
		mustCreateFile(t, d, p)

		err := d.CreateFile(p, rw)
		if !errors.Is(err, driver.ErrExist) {
			t.Errorf("CreateFile(%s) twice: got error %v, want driver.ErrExist", p, err)
		}
	})

	run(t, d, config, "DirectoryAlreadyExists", func(t *testing.T) {
		p := Base + "dir/"
		mustCreateDir(t, d, p)

		err := d.CreateDirectory(p, rw)
		if !errors.Is(err, driver.ErrExist) {
			t.Errorf("CreateDirectory(%s) twice: got error %v, want driver.ErrExist", p, err)
		}
	})

	run(t, d, config, "FileOverDirectory", func(t *testing.T) {
		mustCreateDir(t, d, Base+"taken/")

		err := d.CreateFile(Base+"taken", rw)
		if !errors.Is(err, driver.ErrExist) {
			t.Errorf("CreateFile over directory: got error %v, want driver.ErrExist", err)
		}
	})

	run(t, d, config, "MissingParent", func(t *testing.T) {
		p := Base + "nope/file.txt"

		err := d.CreateFile(p, rw)
		if !errors.Is(err, driver.ErrNotExist) {
			t.Errorf("CreateFile(%s): got error %v, want driver.ErrNotExist", p, err)
		}
		assertMissing(t, d, p)
	})

	run(t, d, config, "NestedDirectory", func(t *testing.T) {
		mustCreateDir(t, d, Base+"a/")
		mustCreateDir(t, d, Base+"a/b/")
		mustCreateFile(t, d, Base+"a/b/c.txt")

		assertExists(t, d, Base+"a/b/", true)
		assertExists(t, d, Base+"a/b/c.txt", false)
	})

	if !config.Permissions {
		return
	}

	run(t, d, config, "ReadOnlyFile", func(t *testing.T) {
		p := Base + "ro.txt"
		if err := d.CreateFile(p, driver.CreateOptions{Readable: true}); err != nil {
			t.Fatalf("CreateFile(%s): got error %v, want nil", p, err)
		}

		attrs := mustQuery(t, d, p)
		if !attrs.Readable || attrs.Writable {
			t.Errorf("QueryAttributes(%s): Readable=%v Writable=%v, want true/false", p, attrs.Readable, attrs.Writable)
		}
	})

	run(t, d, config, "WriteOnlyFile", func(t *testing.T) {
		p := Base + "wo.txt"
		if err := d.CreateFile(p, driver.CreateOptions{Writable: true}); err != nil {
			t.Fatalf("CreateFile(%s): got error %v, want nil", p, err)
		}

		attrs := mustQuery(t, d, p)
		if attrs.Readable || !attrs.Writable {
			t.Errorf("QueryAttributes(%s): Readable=%v Writable=%v, want false/true", p, attrs.Readable, attrs.Writable)
		}
	})
}
