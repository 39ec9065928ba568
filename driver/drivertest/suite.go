// Package drivertest provides a conformance test suite for validating
// driver.Driver implementations.
//
// The suite validates the driver contract the entity registry relies on, not
// backend-specific behavior. Backends differ in how directories and the
// hidden attribute are modeled; Config captures those differences.
//
// Example usage:
//
//	func TestMyDriver(t *testing.T) {
//	    drivertest.TestSuite(t, func() driver.Driver {
//	        return mydriver.New()
//	    })
//	}
package drivertest

import (
	"strings"
	"testing"

	"github.com/jmgilman/go/fs/entity/driver"
)

// Base is the directory every conformance test works beneath.
const Base = "/conformance/"

// Config configures the test suite to match driver behavior characteristics.
type Config struct {
	// VirtualDirectories indicates directories are key prefixes (e.g., S3).
	// When true, a directory whose last child is removed may vanish.
	VirtualDirectories bool

	// Permissions indicates the driver stores the readable and writable
	// flags requested at creation.
	Permissions bool

	// Hidden indicates SetHidden works on any name. When false, SetHidden on
	// a name without a leading dot must fail with driver.ErrUnsupported.
	Hidden bool

	// SkipTests lists specific test names to skip.
	// Format: "Group/SubTest" (e.g., "Move/MoveDirectory").
	SkipTests []string
}

// POSIXConfig returns configuration for disk-backed drivers.
func POSIXConfig() Config {
	return Config{
		Permissions: true,
	}
}

// MemoryConfig returns configuration for in-memory drivers.
func MemoryConfig() Config {
	return Config{
		Permissions: true,
		Hidden:      true,
	}
}

// S3Config returns configuration for object-store drivers.
func S3Config() Config {
	return Config{
		VirtualDirectories: true,
		Permissions:        true,
		Hidden:             true,
	}
}

// TestSuite runs all conformance tests using POSIXConfig.
// The newDriver function should return a fresh, empty driver for each group.
func TestSuite(t *testing.T, newDriver func() driver.Driver) {
	TestSuiteWithConfig(t, newDriver, POSIXConfig())
}

// TestSuiteWithConfig runs all conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newDriver func() driver.Driver, config Config) {
	groups := []struct {
		name string
		run  func(*testing.T, driver.Driver, Config)
	}{
		{"Attributes", TestAttributes},
		{"Create", TestCreate},
		{"Delete", TestDelete},
		{"List", TestList},
		{"Move", TestMove},
		{"Copy", TestCopy},
		{"Hidden", TestHidden},
		{"Roots", TestRoots},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.shouldSkip(g.name) {
				t.Skip("Skipped by driver configuration")
				return
			}
			g.run(t, newDriver(), config)
		})
	}
}

// shouldSkip matches name against SkipTests. Names are compared by suffix so
// "Move/MoveDirectory" matches the full subtest name.
func (c Config) shouldSkip(name string) bool {
	for _, skip := range c.SkipTests {
		if name == skip || strings.HasSuffix(name, "/"+skip) {
			return true
		}
	}
	return false
}

// run executes a subtest inside a fresh Base directory.
func run(t *testing.T, d driver.Driver, config Config, name string, fn func(t *testing.T)) {
	t.Helper()

	t.Run(name, func(t *testing.T) {
		if config.shouldSkip(t.Name()) {
			t.Skip("Skipped by driver configuration")
			return
		}
		setupBase(t, d)
		fn(t)
	})
}

// setupBase recreates Base so each subtest starts empty.
func setupBase(t *testing.T, d driver.Driver) {
	t.Helper()

	attrs, err := d.QueryAttributes(Base)
	if err != nil {
		t.Fatalf("QueryAttributes(%s): setup failed: %v", Base, err)
	}
	if attrs.Exists {
		if err := removeAll(d, Base); err != nil {
			t.Fatalf("remove %s: setup failed: %v", Base, err)
		}
	}
	if err := d.CreateDirectory(Base, rw); err != nil {
		t.Fatalf("CreateDirectory(%s): setup failed: %v", Base, err)
	}
}

// removeAll deletes p and its children using only driver primitives.
func removeAll(d driver.Driver, p string) error {
	names, err := d.ListDirectory(p)
	if err != nil {
		return err
	}
	for _, name := range names {
		child := p + name
		if isDirName(name) {
			if err := removeAll(d, child); err != nil {
				return err
			}
			continue
		}
		if err := d.DeleteFile(child); err != nil {
			return err
		}
	}

	attrs, err := d.QueryAttributes(p)
	if err != nil || !attrs.Exists {
		return err
	}
	return d.DeleteDirectory(p)
}

var rw = driver.CreateOptions{Readable: true, Writable: true}

func isDirName(name string) bool {
	return len(name) > 0 && name[len(name)-1] == '/'
}

func mustCreateFile(t *testing.T, d driver.Driver, p string) {
	t.Helper()
	if err := d.CreateFile(p, rw); err != nil {
		t.Fatalf("CreateFile(%s): setup failed: %v", p, err)
	}
}

func mustCreateDir(t *testing.T, d driver.Driver, p string) {
	t.Helper()
	if err := d.CreateDirectory(p, rw); err != nil {
		t.Fatalf("CreateDirectory(%s): setup failed: %v", p, err)
	}
}

func mustQuery(t *testing.T, d driver.Driver, p string) driver.Attributes {
	t.Helper()
	attrs, err := d.QueryAttributes(p)
	if err != nil {
		t.Fatalf("QueryAttributes(%s): got error %v, want nil", p, err)
	}
	return attrs
}

func assertExists(t *testing.T, d driver.Driver, p string, dir bool) {
	t.Helper()
	attrs := mustQuery(t, d, p)
	if !attrs.Exists {
		t.Fatalf("QueryAttributes(%s): Exists = false, want true", p)
	}
	if attrs.IsDir != dir {
		t.Errorf("QueryAttributes(%s): IsDir = %v, want %v", p, attrs.IsDir, dir)
	}
}

func assertMissing(t *testing.T, d driver.Driver, p string) {
	t.Helper()
	if attrs := mustQuery(t, d, p); attrs.Exists {
		t.Errorf("QueryAttributes(%s): Exists = true, want false", p)
	}
}
