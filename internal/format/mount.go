package format

import (
	"github.com/blockinv/blockinv/internal/block"
)

// MountCommand renders the mount invocation for a classified device.
// A device with a known filesystem UUID is mounted by -U so the call
// survives device node renames; otherwise the node path is used.
func MountCommand(dev *block.Device, mountpoint string) Command {
	var args []string
	if dev.ID != nil {
		args = append(args, "-U", dev.ID.String())
	} else {
		args = append(args, "/dev/"+dev.Name)
	}
	args = append(args, mountpoint)
	return Command{Name: "mount", Args: args}
}

// Mount mounts an already-formatted device at mountpoint.
func Mount(r Runner, dev *block.Device, mountpoint string) error {
	c := MountCommand(dev, mountpoint)
	_, err := r.Run(c.Name, c.Args...)
	return err
}

// Unmount unmounts whatever is mounted at mountpoint.
func Unmount(r Runner, mountpoint string) error {
	_, err := r.Run("umount", mountpoint)
	return err
}

// Erase zaps the partition table of the device.
func Erase(r Runner, device string) error {
	_, err := r.Run("sgdisk", "--zap", device)
	return err
}
