package drivertest

import (
	"errors"
	"testing"

	"github.com/jmgilman/go/fs/entity/driver"
)

// TestDelete tests DeleteFile and DeleteDirectory contracts.
func TestDelete(t *testing.T, d driver.Driver, config Config) {
	run(t, d, config, "File", func(t *testing.T) {
		p := Base + "file.txt"
		mustCreateFile(t, d, p)

		if err := d.DeleteFile(p); err != nil {
			t.Fatalf("DeleteFile(%s): got error %v, want nil", p, err)
		}
		assertMissing(t, d, p)
	})

	run(t, d, config, "EmptyDirectory", func(t *testing.T) {
		p := Base + "empty/"
		mustCreateDir(t, d, p)

		if err := d.DeleteDirectory(p); err != nil {
			t.Fatalf("DeleteDirectory(%s): got error %v, want nil", p, err)
		}
		assertMissing(t, d, p)
	})

	run(t, d, config, "NonEmptyDirectory", func(t *testing.T) {
		p := Base + "full/"
		mustCreateDir(t, d, p)
		mustCreateFile(t, d, p+"child.txt")

		err := d.DeleteDirectory(p)
		if !errors.Is(err, driver.ErrNotEmpty) {
			t.Fatalf("DeleteDirectory(%s): got error %v, want driver.ErrNotEmpty", p, err)
		}
		assertExists(t, d, p+"child.txt", false)
	})

	run(t, d, config, "MissingFile", func(t *testing.T) {
		err := d.DeleteFile(Base + "missing.txt")
		if !errors.Is(err, driver.ErrNotExist) {
			t.Errorf("DeleteFile(missing): got error %v, want driver.ErrNotExist", err)
		}
	})

	run(t, d, config, "LastChild", func(t *testing.T) {
		dir := Base + "solo/"
		mustCreateDir(t, d, dir)
		mustCreateFile(t, d, dir+"only.txt")

		if err := d.DeleteFile(dir + "only.txt"); err != nil {
			t.Fatalf("DeleteFile(only.txt): got error %v, want nil", err)
		}

		// An explicitly created directory survives its last child, even on
		// prefix-based stores.
		assertExists(t, d, dir, true)
	})
}
