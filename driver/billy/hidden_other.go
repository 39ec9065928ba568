//go:build !windows

package billy

import (
	"fmt"

	"github.com/jmgilman/go/fs/entity/driver"
)

// POSIX has no hidden attribute beyond the leading dot.
func isOSHidden(string) (bool, error) {
	return false, nil
}

func setOSHidden(path string, hidden bool) error {
	return fmt.Errorf("set hidden=%v on %s: %w", hidden, path, driver.ErrUnsupported)
}
