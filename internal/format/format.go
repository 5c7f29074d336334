package format

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// MetadataProfile selects the btrfs metadata redundancy layout.
type MetadataProfile string

const (
	ProfileRaid0  MetadataProfile = "raid0"
	ProfileRaid1  MetadataProfile = "raid1"
	ProfileRaid5  MetadataProfile = "raid5"
	ProfileRaid6  MetadataProfile = "raid6"
	ProfileRaid10 MetadataProfile = "raid10"
	ProfileSingle MetadataProfile = "single"
	ProfileDup    MetadataProfile = "dup"
)

// Filesystem carries the tunables for one mkfs flavor. Each
// implementation renders its own command lines.
type Filesystem interface {
	commands(device string) ([]Command, error)
}

// Btrfs formats with mkfs.btrfs.
type Btrfs struct {
	LeafSize        uint64
	NodeSize        uint64
	MetadataProfile MetadataProfile
}

func (f Btrfs) commands(device string) ([]Command, error) {
	args := []string{
		"-m", string(f.MetadataProfile),
		"-l", strconv.FormatUint(f.LeafSize, 10),
		"-n", strconv.FormatUint(f.NodeSize, 10),
		device,
	}
	return []Command{{Name: "mkfs.btrfs", Args: args}}, nil
}

// Ext4 formats with mkfs.ext4.
type Ext4 struct {
	InodeSize         uint64
	ReservedBlocksPct uint8
	Stride            *uint64
	StripeWidth       *uint64
}

func (f Ext4) commands(device string) ([]Command, error) {
	var args []string
	if f.Stride != nil || f.StripeWidth != nil {
		args = append(args, "-E")
		if f.Stride != nil {
			args = append(args, fmt.Sprintf("stride=%d", *f.Stride))
		}
		if f.StripeWidth != nil {
			args = append(args, fmt.Sprintf("stripe_width=%d", *f.StripeWidth))
		}
	}
	args = append(args,
		"-I", strconv.FormatUint(f.InodeSize, 10),
		"-m", strconv.FormatUint(uint64(f.ReservedBlocksPct), 10),
		device,
	)
	return []Command{{Name: "mkfs.ext4", Args: args}}, nil
}

// Xfs formats with mkfs.xfs.
type Xfs struct {
	// BlockSize must be a power of 2; values outside the kernel's
	// [512, 65536] range are clamped.
	BlockSize   *uint64
	Force       bool
	InodeSize   *uint64
	StripeSize  *uint64
	StripeWidth *uint64
	AgCount     *uint64
}

func (f Xfs) commands(device string) ([]Command, error) {
	var args []string
	if f.BlockSize != nil {
		b := *f.BlockSize
		if b < 512 {
			b = 512
		} else if b > 65536 {
			b = 65536
		}
		args = append(args, "-b", fmt.Sprintf("size=%d", b))
	}
	if f.InodeSize != nil {
		args = append(args, "-i", fmt.Sprintf("size=%d", *f.InodeSize))
	}
	if f.Force {
		args = append(args, "-f")
	}
	if f.StripeSize != nil && f.StripeWidth != nil {
		args = append(args, "-d",
			fmt.Sprintf("su=%d", *f.StripeSize),
			fmt.Sprintf("sw=%d", *f.StripeWidth))
		if f.AgCount != nil {
			args = append(args, fmt.Sprintf("agcount=%d", *f.AgCount))
		}
	}
	args = append(args, device)
	return []Command{{Name: "mkfs.xfs", Args: args}}, nil
}

// Zfs creates a single-device pool with zpool and applies the
// follow-on zfs settings.
type Zfs struct {
	BlockSize   *uint64
	Compression *bool
}

func (f Zfs) commands(device string) ([]Command, error) {
	name := filepath.Base(device)
	if name == "." || name == "/" || name == "" {
		return nil, fmt.Errorf("cannot derive pool name from device %q", device)
	}

	cmds := []Command{{
		Name: "zpool",
		Args: []string{"create", "-f", "-m", "/mnt/" + name, name, device},
	}}
	if f.BlockSize != nil {
		cmds = append(cmds, Command{Name: "zfs", Args: []string{"set", fmt.Sprintf("recordsize=%d", *f.BlockSize), name}})
	}
	if f.Compression != nil && *f.Compression {
		cmds = append(cmds, Command{Name: "zfs", Args: []string{"set", "compression=on", name}})
	}
	cmds = append(cmds,
		Command{Name: "zfs", Args: []string{"set", "acltype=posixacl", name}},
		Command{Name: "zfs", Args: []string{"set", "atime=off", name}},
	)
	return cmds, nil
}

// DefaultFilesystem returns sane defaults for a filesystem name;
// callers tune the returned struct as needed. Unrecognized names get
// a plain xfs.
func DefaultFilesystem(name string) Filesystem {
	inode512 := uint64(512)
	ag32 := uint64(32)
	switch name {
	case "zfs":
		return Zfs{}
	case "xfs":
		return Xfs{InodeSize: &inode512, AgCount: &ag32}
	case "btrfs":
		return Btrfs{MetadataProfile: ProfileSingle, LeafSize: 32768, NodeSize: 32768}
	case "ext4":
		return Ext4{InodeSize: 512, ReservedBlocksPct: 0}
	default:
		return Xfs{}
	}
}

// FormatCommands renders the command lines that would format the
// device, without running anything.
func FormatCommands(device string, fs Filesystem) ([]Command, error) {
	return fs.commands(device)
}

// Format formats the device through the runner.
func Format(r Runner, device string, fs Filesystem) error {
	cmds, err := fs.commands(device)
	if err != nil {
		return err
	}
	return run(r, cmds)
}
