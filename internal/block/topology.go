package block

import "github.com/blockinv/blockinv/internal/udev"

// Parent resolves the parent device node path of a disk or partition.
// The device is located by node path or DEVLINKS alias containment;
// the parent is reported only when it is itself a disk or partition.
// A partition whose disk has vanished from the snapshot resolves to
// nothing rather than an error: scans tolerate transient topology.
func Parent(snap *udev.Snapshot, devPath string) (string, bool) {
	for _, h := range snap.Handles() {
		devtype, _ := h.Devtype()
		if devtype != "disk" && devtype != "partition" {
			continue
		}
		if h.DevPath() != devPath && !devlinksContain(h, devPath) {
			continue
		}
		parent := h.Parent()
		if parent == nil {
			return "", false
		}
		if ptype, _ := parent.Devtype(); ptype != "disk" && ptype != "partition" {
			return "", false
		}
		return parent.DevPath(), true
	}
	return "", false
}

// Children returns the node paths of every partition whose parent
// resolves to diskPath. This walks all partitions and resolves each
// parent independently, O(partitions × devices); host device counts
// are small enough that an index is not worth carrying.
func Children(snap *udev.Snapshot, diskPath string) []string {
	var children []string
	for _, h := range snap.Handles() {
		if !h.IsPartition() {
			continue
		}
		if parent, ok := Parent(snap, h.DevPath()); ok && parent == diskPath {
			children = append(children, h.DevPath())
		}
	}
	return children
}

// IsDisk reports whether some handle with devtype disk has the given
// node path.
func IsDisk(snap *udev.Snapshot, devPath string) bool {
	for _, h := range snap.Handles() {
		if devtype, _ := h.Devtype(); devtype != "disk" {
			continue
		}
		if h.DevPath() == devPath {
			return true
		}
	}
	return false
}
