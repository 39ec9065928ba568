package drivertest

import (
	"slices"
	"testing"

	"github.com/jmgilman/go/fs/entity/driver"
)

// TestList tests ListDirectory.
func TestList(t *testing.T, d driver.Driver, config Config) {
	run(t, d, config, "Children", func(t *testing.T) {
		mustCreateFile(t, d, Base+"a.txt")
		mustCreateFile(t, d, Base+"b.txt")
		mustCreateDir(t, d, Base+"sub/")
		mustCreateFile(t, d, Base+"sub/nested.txt")

		names, err := d.ListDirectory(Base)
		if err != nil {
			t.Fatalf("ListDirectory(%s): got error %v, want nil", Base, err)
		}
		slices.Sort(names)

		want := []string{"a.txt", "b.txt", "sub/"}
		if !slices.Equal(names, want) {
			t.Errorf("ListDirectory(%s) = %v, want %v", Base, names, want)
		}
	})

	run(t, d, config, "Empty", func(t *testing.T) {
		mustCreateDir(t, d, Base+"empty/")

		names, err := d.ListDirectory(Base + "empty/")
		if err != nil {
			t.Fatalf("ListDirectory(empty): got error %v, want nil", err)
		}
		if len(names) != 0 {
			t.Errorf("ListDirectory(empty) = %v, want none", names)
		}
	})

	run(t, d, config, "Missing", func(t *testing.T) {
		if _, err := d.ListDirectory(Base + "missing/"); err == nil {
			t.Error("ListDirectory(missing): got nil error, want error")
		}
	})
}
