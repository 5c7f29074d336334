package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParentOfPartition(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	parent, ok := Parent(snap, "/dev/sda1")
	require.True(t, ok)
	require.Equal(t, "/dev/sda", parent)
}

func TestParentByDevlinkAlias(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	parent, ok := Parent(snap, "/dev/disk/by-id/ata-TOSHIBA_HDWD110-part1")
	require.True(t, ok)
	require.Equal(t, "/dev/sda", parent)
}

func TestParentOfWholeDisk(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	_, ok := Parent(snap, "/dev/sda")
	require.False(t, ok)

	_, ok = Parent(snap, "/dev/sdz")
	require.False(t, ok)
}

func TestChildrenOfDisk(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	require.Equal(t, []string{"/dev/sda1"}, Children(snap, "/dev/sda"))
	require.Empty(t, Children(snap, "/dev/sdb"))
}

func TestParentAndChildrenAgree(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	for _, child := range Children(snap, "/dev/sda") {
		parent, ok := Parent(snap, child)
		require.True(t, ok)
		require.Equal(t, "/dev/sda", parent)
	}
}

func TestIsDisk(t *testing.T) {
	snap := openFixture(t, twoDiskFixture(t))

	require.True(t, IsDisk(snap, "/dev/sda"))
	require.False(t, IsDisk(snap, "/dev/sda1"))
	require.False(t, IsDisk(snap, "/dev/sdz"))
}
