package billy

import (
	"io"
	"os"
	"path"
)

// copy duplicates src at dst using billy paths. Directories are recreated with
// their permission bits and populated recursively.
func (d *Driver) copy(src, dst string) error {
	info, err := d.bfs.Stat(src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return d.copyFile(src, dst, info.Mode().Perm())
	}

	if err := d.bfs.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return err
	}

	entries, err := d.bfs.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := d.copy(path.Join(src, entry.Name()), path.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) copyFile(src, dst string, perm os.FileMode) error {
	in, err := d.bfs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := d.bfs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
