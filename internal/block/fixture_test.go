package block

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockinv/blockinv/internal/udev"
)

type fixtureDevice struct {
	name   string
	parent string // disk sysname when this is a partition
	devnum string
	size   string
	props  map[string]string
}

// openFixture builds a sysfs/udev-data tree under a temp dir and opens
// a snapshot over it. DevRoot stays /dev so node paths look real.
func openFixture(t *testing.T, devices []fixtureDevice) *udev.Snapshot {
	t.Helper()
	root := t.TempDir()
	sysRoot := filepath.Join(root, "sys")
	dataDir := filepath.Join(root, "udev")
	require.NoError(t, os.MkdirAll(dataDir, 0755))

	for _, d := range devices {
		var dir string
		if d.parent == "" {
			dir = filepath.Join(sysRoot, "block", d.name)
		} else {
			dir = filepath.Join(sysRoot, "block", d.parent, d.name)
		}
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "dev"), []byte(d.devnum+"\n"), 0644))
		if d.parent != "" {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "partition"), []byte("1\n"), 0644))
		}
		if d.size != "" {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "size"), []byte(d.size+"\n"), 0644))
		}

		data := ""
		for k, v := range d.props {
			data += "E:" + k + "=" + v + "\n"
		}
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, "b"+d.devnum), []byte(data), 0644))
	}

	snap, err := udev.Open(udev.Config{SysRoot: sysRoot, DataDir: dataDir, DevRoot: "/dev"})
	require.NoError(t, err)
	return snap
}

func handleOf(t *testing.T, snap *udev.Snapshot, name string) *udev.Handle {
	t.Helper()
	h, ok := snap.BySysname(name)
	require.True(t, ok, "fixture device %s not found", name)
	return h
}
