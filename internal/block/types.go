package block

import (
	"strings"

	"github.com/google/uuid"
)

// Device is the classified view of one block device. Devices are
// built fresh per query and never persisted by the scanner itself.
// Name is the kernel sysname, unique only within a single scan.
type Device struct {
	ID           *uuid.UUID     `json:"id,omitempty"`
	Name         string         `json:"name"`
	MediaType    MediaType      `json:"media_type"`
	DeviceType   DeviceType     `json:"device_type"`
	Capacity     uint64         `json:"capacity"`
	FSType       FilesystemType `json:"fs_type"`
	SerialNumber *string        `json:"serial_number,omitempty"`
}

// MediaType is the physical (or synthetic) medium behind a device.
type MediaType int

const (
	MediaUnknown MediaType = iota
	MediaSolidState
	MediaRotational
	MediaLoopback
	MediaLVM
	MediaMdRaid
	MediaNVMe
	MediaRam
	MediaVirtual
)

func (m MediaType) String() string {
	switch m {
	case MediaSolidState:
		return "ssd"
	case MediaRotational:
		return "rotational"
	case MediaLoopback:
		return "loopback"
	case MediaLVM:
		return "lvm"
	case MediaMdRaid:
		return "mdraid"
	case MediaNVMe:
		return "nvme"
	case MediaRam:
		return "ram"
	case MediaVirtual:
		return "virtual"
	default:
		return "unknown"
	}
}

// DeviceType distinguishes whole disks from partitions.
type DeviceType int

const (
	DeviceUnknown DeviceType = iota
	DeviceDisk
	DevicePartition
)

// ParseDeviceType maps a udev devtype string. Unrecognized strings
// are DeviceUnknown, not an error.
func ParseDeviceType(s string) DeviceType {
	switch strings.ToLower(s) {
	case "disk":
		return DeviceDisk
	case "partition":
		return DevicePartition
	default:
		return DeviceUnknown
	}
}

func (d DeviceType) String() string {
	switch d {
	case DeviceDisk:
		return "disk"
	case DevicePartition:
		return "partition"
	default:
		return "unknown"
	}
}

// FilesystemType is the filesystem label reported by the database.
// The zero value means absent. Labels outside the recognized set are
// carried verbatim so nothing the platform reports is lost.
type FilesystemType string

const (
	FSUnknown FilesystemType = ""
	FSBtrfs   FilesystemType = "btrfs"
	FSExt2    FilesystemType = "ext2"
	FSExt3    FilesystemType = "ext3"
	FSExt4    FilesystemType = "ext4"
	FSLvm     FilesystemType = "lvm"
	FSXfs     FilesystemType = "xfs"
	FSZfs     FilesystemType = "zfs"
	FSVfat    FilesystemType = "vfat"
	FSNtfs    FilesystemType = "ntfs"
)

// ParseFilesystemType maps an ID_FS_TYPE value. Empty input is
// FSUnknown; an unrecognized non-empty name is preserved as-is and
// reports Recognized() == false.
func ParseFilesystemType(s string) FilesystemType {
	switch strings.ToLower(s) {
	case "":
		return FSUnknown
	case "btrfs":
		return FSBtrfs
	case "ext2":
		return FSExt2
	case "ext3":
		return FSExt3
	case "ext4":
		return FSExt4
	case "lvm2_member":
		return FSLvm
	case "xfs":
		return FSXfs
	case "zfs", "zfs_member":
		return FSZfs
	case "vfat":
		return FSVfat
	case "ntfs":
		return FSNtfs
	default:
		return FilesystemType(s)
	}
}

// Recognized reports whether the value is one of the fixed set (or
// absent), as opposed to a verbatim unrecognized label.
func (f FilesystemType) Recognized() bool {
	switch f {
	case FSUnknown, FSBtrfs, FSExt2, FSExt3, FSExt4, FSLvm, FSXfs, FSZfs, FSVfat, FSNtfs:
		return true
	default:
		return false
	}
}

func (f FilesystemType) String() string {
	if f == FSUnknown {
		return "unknown"
	}
	return string(f)
}
