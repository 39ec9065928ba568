package minio

import (
	"strings"

	"github.com/jmgilman/go/fs/entity/internal/pathutil"
)

const (
	metaHidden = "Hidden"
	metaAccess = "Access"
)

// normalizePrefix converts a configured prefix to key form: forward slashes,
// no leading or trailing separator. Returns "" for empty or "." prefixes.
func normalizePrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	prefix = strings.Trim(pathutil.Normalize(prefix), "/")
	if prefix == "." {
		return ""
	}
	return prefix
}

// objectKey maps a canonical path to an object key. Directory paths keep their
// trailing "/" so they address the marker object.
func (d *Driver) objectKey(p string) string {
	rel := strings.TrimPrefix(p, "/")
	if d.prefix == "" {
		return rel
	}
	return d.prefix + "/" + rel
}

// dirKey returns the marker key (and listing prefix) for the directory at p
// regardless of how p is spelled.
func (d *Driver) dirKey(p string) string {
	key := d.objectKey(pathutil.Key(p))
	if key == "" || strings.HasSuffix(key, "/") {
		return key
	}
	return key + "/"
}

// fileKey returns the object key for the file at p.
func (d *Driver) fileKey(p string) string {
	return strings.TrimSuffix(d.objectKey(p), "/")
}

func accessValue(readable, writable bool) string {
	var b strings.Builder
	if readable {
		b.WriteString("r")
	}
	if writable {
		b.WriteString("w")
	}
	return b.String()
}

// metaValue looks up user metadata case-insensitively.
func metaValue(meta map[string]string, key string) (string, bool) {
	for k, v := range meta {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

func dotName(p string) bool {
	return strings.HasPrefix(pathutil.Base(p), ".")
}
