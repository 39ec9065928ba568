// Package billy provides go-billy-backed implementations of driver.Driver.
//
// NewLocal wraps billy's osfs for disk access and NewMemory wraps memfs for
// tests and scratch storage. Both share one implementation; they differ only
// in how the hidden attribute is stored.
//
// Usage:
//
//	// Disk-backed driver rooted at the OS root
//	d, err := billy.NewLocal()
//
//	// Disk-backed driver confined to a directory
//	d, err := billy.NewLocal(billy.WithRoot("/srv/data"))
//
//	// In-memory driver
//	d, err := billy.NewMemory()
//
// # Permissions
//
// Readability and writability are derived from the owner permission bits
// (0400 and 0200). Created entities receive permission bits matching the
// requested access.
//
// # Hidden Entities
//
// Names starting with "." are always hidden. On Windows the local driver
// additionally honors FILE_ATTRIBUTE_HIDDEN and can toggle it. On other
// platforms SetHidden on a local path returns driver.ErrUnsupported unless the
// requested state already holds. The memory driver records hidden marks
// itself and moves or copies them along with their entities.
//
// # Thread Safety
//
// Drivers are safe for concurrent use by multiple goroutines.
package billy
