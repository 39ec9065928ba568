package drivertest

import (
	"errors"
	"testing"

	"github.com/jmgilman/go/fs/entity/driver"
)

// TestMove tests Move on files and directories.
func TestMove(t *testing.T, d driver.Driver, config Config) {
	run(t, d, config, "MoveFile", func(t *testing.T) {
		mustCreateFile(t, d, Base+"old.txt")

		if err := d.Move(Base+"old.txt", Base+"new.txt"); err != nil {
			t.Fatalf("Move: got error %v, want nil", err)
		}
		assertMissing(t, d, Base+"old.txt")
		assertExists(t, d, Base+"new.txt", false)
	})

	run(t, d, config, "MoveDirectory", func(t *testing.T) {
		mustCreateDir(t, d, Base+"src/")
		mustCreateDir(t, d, Base+"src/inner/")
		mustCreateFile(t, d, Base+"src/inner/f.txt")

		if err := d.Move(Base+"src/", Base+"dst/"); err != nil {
			t.Fatalf("Move: got error %v, want nil", err)
		}
		assertMissing(t, d, Base+"src/")
		assertExists(t, d, Base+"dst/", true)
		assertExists(t, d, Base+"dst/inner/f.txt", false)
	})

	run(t, d, config, "DestinationExists", func(t *testing.T) {
		mustCreateFile(t, d, Base+"a.txt")
		mustCreateFile(t, d, Base+"b.txt")

		err := d.Move(Base+"a.txt", Base+"b.txt")
		if !errors.Is(err, driver.ErrExist) {
			t.Errorf("Move onto existing: got error %v, want driver.ErrExist", err)
		}
		assertExists(t, d, Base+"a.txt", false)
	})

	run(t, d, config, "MissingSource", func(t *testing.T) {
		err := d.Move(Base+"ghost.txt", Base+"b.txt")
		if !errors.Is(err, driver.ErrNotExist) {
			t.Errorf("Move missing source: got error %v, want driver.ErrNotExist", err)
		}
	})
}

// TestCopy tests Copy on files and directories.
func TestCopy(t *testing.T, d driver.Driver, config Config) {
	run(t, d, config, "CopyFile", func(t *testing.T) {
		mustCreateFile(t, d, Base+"a.txt")

		if err := d.Copy(Base+"a.txt", Base+"b.txt"); err != nil {
			t.Fatalf("Copy: got error %v, want nil", err)
		}
		assertExists(t, d, Base+"a.txt", false)
		assertExists(t, d, Base+"b.txt", false)
	})

	run(t, d, config, "CopyDirectory", func(t *testing.T) {
		mustCreateDir(t, d, Base+"src/")
		mustCreateDir(t, d, Base+"src/inner/")
		mustCreateFile(t, d, Base+"src/inner/f.txt")
		mustCreateFile(t, d, Base+"src/top.txt")

		if err := d.Copy(Base+"src/", Base+"dst/"); err != nil {
			t.Fatalf("Copy: got error %v, want nil", err)
		}
		assertExists(t, d, Base+"src/inner/f.txt", false)
		assertExists(t, d, Base+"dst/inner/f.txt", false)
		assertExists(t, d, Base+"dst/top.txt", false)
	})

	run(t, d, config, "DestinationExists", func(t *testing.T) {
		mustCreateFile(t, d, Base+"a.txt")
		mustCreateFile(t, d, Base+"b.txt")

		err := d.Copy(Base+"a.txt", Base+"b.txt")
		if !errors.Is(err, driver.ErrExist) {
			t.Errorf("Copy onto existing: got error %v, want driver.ErrExist", err)
		}
	})
}
