package drivertest

import (
	"strings"
	"testing"

	"github.com/jmgilman/go/fs/entity/driver"
)

// TestRoots tests TempRoot and CurrentDirectory.
func TestRoots(t *testing.T, d driver.Driver, config Config) {
	run(t, d, config, "TempRoot", func(t *testing.T) {
		root, err := d.TempRoot()
		if err != nil {
			t.Fatalf("TempRoot(): got error %v, want nil", err)
		}
		if !strings.HasSuffix(root, "/") {
			t.Errorf("TempRoot() = %q, want trailing separator", root)
		}
		assertExists(t, d, root, true)
	})

	run(t, d, config, "CurrentDirectory", func(t *testing.T) {
		wd, err := d.CurrentDirectory()
		if err != nil {
			t.Fatalf("CurrentDirectory(): got error %v, want nil", err)
		}
		if !strings.HasSuffix(wd, "/") {
			t.Errorf("CurrentDirectory() = %q, want trailing separator", wd)
		}
	})
}
