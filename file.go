package entity

import "strings"

// File is a handle to a file entity.
type File struct {
	*Handle
}

// Extension returns the text after the last "." in the name, or "" if the
// name has none.
func (f *File) Extension() string {
	name := f.Name()
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// Size queries the driver for the file's length in bytes. It fails with
// NOT_FOUND if the file does not exist.
func (f *File) Size() (int64, error) {
	return f.e.size()
}
