package mounts

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// IsMounted reports whether a directory is a mountpoint, by comparing
// its st_dev against its parent's. A symlink is never a mountpoint,
// and the filesystem root has no parent to differ from.
func IsMounted(dir string) (bool, error) {
	var st unix.Stat_t
	if err := unix.Lstat(dir, &st); err != nil {
		return false, err
	}
	if st.Mode&unix.S_IFMT == unix.S_IFLNK {
		return false, nil
	}

	parent := filepath.Dir(dir)
	if parent == dir {
		return false, nil
	}
	var parentSt unix.Stat_t
	if err := unix.Stat(parent, &parentSt); err != nil {
		return false, err
	}
	return st.Dev != parentSt.Dev, nil
}
