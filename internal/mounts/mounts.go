// Package mounts indexes a textual mount table (/etc/mtab or
// /proc/mounts) into device↔mountpoint lookups. The table is re-read
// per Load; nothing is cached.
package mounts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blockinv/blockinv/internal/block"
)

// DefaultPath is the usual mount table location.
const DefaultPath = "/etc/mtab"

type entry struct {
	raw    string
	fields []string
}

// Table is a parsed mount table. Lines are whitespace-separated
// fields: device, mountpoint, fstype, options...
type Table struct {
	entries []entry
}

// Load reads and parses the mount table at path.
func Load(path string) (*Table, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mount table: %w", err)
	}
	return Parse(data), nil
}

// Parse builds a Table from raw mount table text. Lines with fewer
// than two fields are kept for substring matching but can never
// satisfy a lookup.
func Parse(data []byte) *Table {
	t := &Table{}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t.entries = append(t.entries, entry{raw: line, fields: strings.Fields(line)})
	}
	return t
}

// MountpointForDevice returns the mountpoint of the first line whose
// raw text contains the device string. Containment is substring, not
// field equality: /dev/sda1 also matches a line for /dev/sda10. The
// looseness is long-standing consumer-visible behavior and is kept.
func (t *Table) MountpointForDevice(device string) (string, bool) {
	return t.fieldForSubstring(device, 1)
}

// DeviceForMountpoint is the symmetric lookup: the device field of
// the first line containing the directory string.
func (t *Table) DeviceForMountpoint(dir string) (string, bool) {
	return t.fieldForSubstring(dir, 0)
}

func (t *Table) fieldForSubstring(needle string, field int) (string, bool) {
	for _, e := range t.entries {
		if !strings.Contains(e.raw, needle) {
			continue
		}
		if len(e.fields) > field {
			return e.fields[field], true
		}
	}
	return "", false
}

// MountedDevices lists every mounted real block device, excluding
// device-mapper (LVM) paths. Only the name and filesystem type are
// derivable from the table; capacity, media type and serial stay at
// their defaults.
func (t *Table) MountedDevices() []block.Device {
	var devices []block.Device
	for _, e := range t.entries {
		if len(e.fields) < 3 {
			continue
		}
		spec := e.fields[0]
		if !strings.Contains(spec, "/dev/") || strings.Contains(spec, "mapper") {
			continue
		}
		devices = append(devices, block.Device{
			Name:   filepath.Base(spec),
			FSType: block.ParseFilesystemType(e.fields[2]),
		})
	}
	return devices
}
