package block

import (
	"path/filepath"
	"strings"

	"github.com/blockinv/blockinv/internal/udev"
)

// ListBlockDevices returns the device node path of every non-partition
// block device in the snapshot. Devices whose type udev could not
// determine are included; erring toward inclusion is deliberate.
func ListBlockDevices(snap *udev.Snapshot) []string {
	var paths []string
	for _, h := range snap.Handles() {
		if !h.IsBlock() || h.IsPartition() {
			continue
		}
		paths = append(paths, h.DevPath())
	}
	return paths
}

// IsBlockDevice reports whether the snapshot contains a block device
// with the given node path. A miss is not an error.
func IsBlockDevice(snap *udev.Snapshot, devPath string) bool {
	name := filepath.Base(devPath)
	for _, h := range snap.Handles() {
		if h.Sysname() == name && h.IsBlock() {
			return true
		}
	}
	return false
}

// DeviceInfo classifies the block device with the given node path.
// Returns nil if the snapshot holds no such device.
func DeviceInfo(snap *udev.Snapshot, devPath string) *Device {
	name := filepath.Base(devPath)
	for _, h := range snap.Handles() {
		if h.Sysname() == name && h.IsBlock() {
			dev := Classify(h)
			return &dev
		}
	}
	return nil
}

// AllDeviceInfo classifies every block device in the snapshot whose
// node path appears in devPaths. Results are not guaranteed to be in
// the same order as the input.
func AllDeviceInfo(snap *udev.Snapshot, devPaths []string) []Device {
	names := make(map[string]struct{}, len(devPaths))
	for _, p := range devPaths {
		names[filepath.Base(p)] = struct{}{}
	}

	var devices []Device
	for _, h := range snap.Handles() {
		if _, ok := names[h.Sysname()]; !ok || !h.IsBlock() {
			continue
		}
		devices = append(devices, Classify(h))
	}
	return devices
}

// DeviceFromPath resolves a node path or any of its DEVLINKS aliases
// (by-id, by-uuid symlinks) to a classified device, along with the
// partition entry number when udev reports one. Only disks and
// partitions are eligible. DEVLINKS matching is substring containment
// over the alias list, not token equality; one path that happens to
// be a prefix of another alias can match. Accepted looseness.
func DeviceFromPath(snap *udev.Snapshot, devPath string) (partNum *uint64, dev *Device) {
	for _, h := range snap.Handles() {
		devtype, _ := h.Devtype()
		if devtype != "disk" && devtype != "partition" {
			continue
		}
		if h.DevPath() == devPath || devlinksContain(h, devPath) {
			if n, ok := h.PropertyUint64("ID_PART_ENTRY_NUMBER"); ok {
				partNum = &n
			}
			d := Classify(h)
			return partNum, &d
		}
	}
	return nil, nil
}

func devlinksContain(h *udev.Handle, devPath string) bool {
	links, ok := h.Property("DEVLINKS")
	return ok && strings.Contains(links, devPath)
}
