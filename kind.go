package entity

import (
	"strings"

	"github.com/jmgilman/go/fs/entity/driver"
)

// Kind identifies whether an entity is a file or a directory.
type Kind int

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDirectory is a directory.
	KindDirectory
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

func (k Kind) isDir() bool {
	return k == KindDirectory
}

func kindOf(attrs driver.Attributes) Kind {
	if attrs.IsDir {
		return KindDirectory
	}
	return KindFile
}

// Flags is the cached attribute set of an entity.
type Flags uint8

const (
	// Exists is set while the entity is present on disk.
	Exists Flags = 1 << iota
	// Hidden marks a hidden entity.
	Hidden
	// Readable marks an entity the owner may read.
	Readable
	// Writable marks an entity the owner may write.
	Writable
	// Temporary marks an entity destroyed when its last handle is released.
	Temporary
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{Exists, "EXISTS"},
	{Hidden, "HIDDEN"},
	{Readable, "READABLE"},
	{Writable, "WRITABLE"},
	{Temporary, "TEMPORARY"},
}

// Has reports whether every bit in mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// String returns the set flags joined by "|", or "NONE".
func (f Flags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// flagsOf converts driver attributes to cached flags. Temporary is never
// reported by a driver.
func flagsOf(attrs driver.Attributes) Flags {
	if !attrs.Exists {
		return 0
	}

	f := Exists
	if attrs.Hidden {
		f |= Hidden
	}
	if attrs.Readable {
		f |= Readable
	}
	if attrs.Writable {
		f |= Writable
	}
	return f
}

func createOptions(f Flags) driver.CreateOptions {
	return driver.CreateOptions{
		Readable: f.Has(Readable),
		Writable: f.Has(Writable),
		Hidden:   f.Has(Hidden),
	}
}
