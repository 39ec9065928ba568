// Package pathutil canonicalizes filesystem paths into the keys used by the
// entity registry.
//
// Canonical paths always use forward slashes. Directories end in exactly one
// separator and files never do. A root is either "/" or a drive marker such as
// "C:/".
package pathutil

import (
	"path"
	"strings"

	"github.com/jmgilman/go/fs/entity/errors"
)

// Separator is the separator used in every canonical path.
const Separator = "/"

// Normalize converts backslashes to forward slashes and cleans the path
// (resolving "." and ".." and collapsing repeated separators). The result has
// no trailing separator unless it is a root.
// Returns "." for empty paths.
func Normalize(p string) string {
	if p == "" {
		return "."
	}

	p = strings.ReplaceAll(p, "\\", Separator)
	p = path.Clean(p)

	// path.Clean turns "C:/" into "C:".
	if isDrive(p) {
		return p + Separator
	}
	return p
}

// Canonicalize returns the canonical form of p. Directories get exactly one
// trailing separator; files have any trailing separator removed.
//
// Canonicalize is idempotent.
func Canonicalize(p string, dir bool) string {
	p = Normalize(p)
	if IsRoot(p) {
		return p
	}
	if dir {
		return p + Separator
	}
	return p
}

// Key returns the registry identity key of a canonical path: the path without
// its directory separator. A file and a directory at the same location share
// a key.
func Key(p string) string {
	if IsRoot(p) {
		return p
	}
	return strings.TrimSuffix(p, Separator)
}

// IsRoot reports whether p is "/" or a drive root such as "C:/".
func IsRoot(p string) bool {
	return p == Separator || (len(p) == 3 && isDrive(p[:2]) && p[2] == '/')
}

// IsAbs reports whether p is absolute, either rooted at "/" or at a drive.
func IsAbs(p string) bool {
	p = strings.ReplaceAll(p, "\\", Separator)
	if strings.HasPrefix(p, Separator) {
		return true
	}
	return len(p) >= 3 && isDrive(p[:2]) && p[2] == '/'
}

// Join appends name to dir and normalizes the result. The returned path has
// no trailing separator; callers canonicalize it once the kind is known.
func Join(dir, name string) string {
	return Normalize(strings.TrimSuffix(dir, Separator) + Separator + name)
}

// Base returns the last segment of a canonical path. The base of a root is
// the root itself.
func Base(p string) string {
	if IsRoot(p) {
		return p
	}
	p = strings.TrimSuffix(p, Separator)
	if i := strings.LastIndex(p, Separator); i >= 0 {
		return p[i+1:]
	}
	return p
}

// Parent returns the canonical directory path containing p.
// It fails with CodeRootHasNoParent when p is a root or has no separator.
func Parent(p string) (string, error) {
	if IsRoot(p) {
		return "", rootError(p)
	}
	trimmed := strings.TrimSuffix(p, Separator)
	i := strings.LastIndex(trimmed, Separator)
	if i < 0 {
		return "", rootError(p)
	}
	return Canonicalize(trimmed[:i+1], true), nil
}

func rootError(p string) error {
	return errors.WithContext(
		errors.New(errors.CodeRootHasNoParent, "path has no parent"),
		"path", p,
	)
}

func isDrive(p string) bool {
	if len(p) != 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
