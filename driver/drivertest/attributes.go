package drivertest

import (
	"testing"

	"github.com/jmgilman/go/fs/entity/driver"
)

// TestAttributes tests QueryAttributes on missing, file, directory and root
// paths.
func TestAttributes(t *testing.T, d driver.Driver, config Config) {
	run(t, d, config, "Missing", func(t *testing.T) {
		attrs, err := d.QueryAttributes(Base + "missing.txt")
		if err != nil {
			t.Fatalf("QueryAttributes(missing): got error %v, want nil", err)
		}
		if attrs.Exists {
			t.Error("QueryAttributes(missing): Exists = true, want false")
		}
	})

	run(t, d, config, "File", func(t *testing.T) {
		p := Base + "file.txt"
		mustCreateFile(t, d, p)

		attrs := mustQuery(t, d, p)
		if !attrs.Exists || attrs.IsDir {
			t.Fatalf("QueryAttributes(%s) = %+v, want existing file", p, attrs)
		}
		if !attrs.Readable || !attrs.Writable {
			t.Errorf("QueryAttributes(%s): Readable=%v Writable=%v, want both true", p, attrs.Readable, attrs.Writable)
		}
		if attrs.Size != 0 {
			t.Errorf("QueryAttributes(%s): Size = %d, want 0", p, attrs.Size)
		}
		if attrs.Hidden {
			t.Errorf("QueryAttributes(%s): Hidden = true, want false", p)
		}
	})

	run(t, d, config, "Directory", func(t *testing.T) {
		p := Base + "dir/"
		mustCreateDir(t, d, p)
		assertExists(t, d, p, true)
	})

	run(t, d, config, "Root", func(t *testing.T) {
		assertExists(t, d, "/", true)
	})
}
