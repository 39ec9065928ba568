package entity

import (
	"github.com/jmgilman/go/fs/entity/internal/pathutil"
)

// Canonicalize returns the canonical form of raw for the given kind:
// forward slashes, cleaned, with exactly one trailing separator for
// directories and none for files. It is idempotent.
func Canonicalize(raw string, kind Kind) string {
	return pathutil.Canonicalize(raw, kind.isDir())
}

// ParentOf returns the canonical directory containing the canonical path p.
// It fails with ROOT_HAS_NO_PARENT when p has no parent.
func ParentOf(p string) (string, error) {
	return pathutil.Parent(p)
}
