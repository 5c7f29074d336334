package block

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func twoDiskFixture(t *testing.T) []fixtureDevice {
	t.Helper()
	return []fixtureDevice{
		{name: "sda", devnum: "8:0", size: "1000", props: map[string]string{
			"DEVTYPE":  "disk",
			"DEVLINKS": "/dev/disk/by-id/ata-TOSHIBA_HDWD110 /dev/disk/by-path/pci-0000:00:1f.2",
		}},
		{name: "sda1", parent: "sda", devnum: "8:1", size: "500", props: map[string]string{
			"DEVTYPE":              "partition",
			"DEVLINKS":             "/dev/disk/by-id/ata-TOSHIBA_HDWD110-part1 /dev/disk/by-uuid/deadbeef",
			"ID_PART_ENTRY_NUMBER": "1",
		}},
		{name: "sdb", devnum: "8:16", size: "2000", props: map[string]string{"DEVTYPE": "disk"}},
	}
}

func TestListBlockDevicesSkipsPartitions(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	paths := ListBlockDevices(snap)
	sort.Strings(paths)
	require.Equal(t, []string{"/dev/sda", "/dev/sdb"}, paths)
}

func TestIsBlockDevice(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	require.True(t, IsBlockDevice(snap, "/dev/sda"))
	require.True(t, IsBlockDevice(snap, "/dev/sda1"))
	require.False(t, IsBlockDevice(snap, "/dev/sdz"))
}

func TestDeviceInfo(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	dev := DeviceInfo(snap, "/dev/sdb")
	require.NotNil(t, dev)
	require.Equal(t, "sdb", dev.Name)
	require.Equal(t, uint64(2000*512), dev.Capacity)

	require.Nil(t, DeviceInfo(snap, "/dev/sdz"))
}

func TestAllDeviceInfoMatchesByName(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	devices := AllDeviceInfo(snap, []string{"/dev/sda", "/dev/sdb", "/dev/sdz"})
	names := make([]string, 0, len(devices))
	for _, d := range devices {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	require.Equal(t, []string{"sda", "sdb"}, names)
}

func TestDeviceFromPathByNodePath(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	partNum, dev := DeviceFromPath(snap, "/dev/sda1")
	require.NotNil(t, dev)
	require.Equal(t, "sda1", dev.Name)
	require.NotNil(t, partNum)
	require.Equal(t, uint64(1), *partNum)

	partNum, dev = DeviceFromPath(snap, "/dev/sda")
	require.NotNil(t, dev)
	require.Equal(t, "sda", dev.Name)
	require.Nil(t, partNum)
}

func TestDeviceFromPathByDevlinkAlias(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	_, dev := DeviceFromPath(snap, "/dev/disk/by-uuid/deadbeef")
	require.NotNil(t, dev)
	require.Equal(t, "sda1", dev.Name)

	partNum, dev := DeviceFromPath(snap, "/dev/this/does/not/exist")
	require.Nil(t, partNum)
	require.Nil(t, dev)
}
