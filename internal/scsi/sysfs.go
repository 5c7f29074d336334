package scsi

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config points the scan at the kernel's SCSI views. Defaults match a
// live host; tests substitute a fixture tree.
type Config struct {
	// Root is the structured per-device tree, normally
	// /sys/bus/scsi/devices (the same place lsscsi looks).
	Root string
	// ProcPath is the legacy textual inventory consulted only when
	// Root does not exist.
	ProcPath string
	// DevRoot is prepended to block device names, default /dev.
	DevRoot string
}

func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = "/sys/bus/scsi/devices"
	}
	if c.ProcPath == "" {
		c.ProcPath = "/proc/scsi/scsi"
	}
	if c.DevRoot == "" {
		c.DevRoot = "/dev"
	}
	return c
}

// Scan gathers every logical unit the host knows about. The
// structured sysfs tree is preferred; when its root is absent the
// legacy text inventory is parsed instead, which carries much less
// information and fails as a whole on any malformed record.
func Scan(cfg Config) ([]ScsiInfo, error) {
	cfg = cfg.withDefaults()

	if _, err := os.Stat(cfg.Root); err != nil {
		data, err := os.ReadFile(cfg.ProcPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", cfg.ProcPath, err)
		}
		return ParseProcScsi(data)
	}

	entries, err := os.ReadDir(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cfg.Root, err)
	}

	var devices []ScsiInfo
	for _, entry := range entries {
		name := entry.Name()
		if name == "" || name[0] < '0' || name[0] > '9' {
			// host0, target0:0:0 and friends; only h:c:i:l entries
			// describe logical units.
			continue
		}
		parts := strings.Split(name, ":")
		if len(parts) != 4 {
			continue
		}

		s := ScsiInfo{Type: TypeNoDevice}
		coords := []*uint8{&s.Host, &s.Channel, &s.ID, &s.LUN}
		for i, part := range parts {
			n, err := strconv.ParseUint(part, 10, 8)
			if err != nil {
				// A coordinate that does not parse means the
				// topology data itself is corrupt. Fatal, not
				// skippable.
				return nil, &ParseError{Reason: fmt.Sprintf("scsi address %q: bad coordinate %q", name, part)}
			}
			*coords[i] = uint8(n)
		}

		readUnit(cfg, filepath.Join(cfg.Root, name), &s)
		devices = append(devices, s)
	}
	return devices, nil
}

// readUnit fills in the descriptive payload for one logical unit.
// These attributes are advisory: anything missing or malformed leaves
// the field at its default instead of failing the scan.
func readUnit(cfg Config, dir string, s *ScsiInfo) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		switch {
		case name == "block":
			if names, err := os.ReadDir(filepath.Join(dir, "block")); err == nil && len(names) > 0 {
				dev := filepath.Join(cfg.DevRoot, names[0].Name())
				s.BlockDevice = &dev
			}
		case strings.HasPrefix(name, "enclosure_device"):
			e := readEnclosure(filepath.Join(dir, name))
			s.Enclosure = &e
		case name == "model":
			s.Model = readTrimmed(filepath.Join(dir, name))
		case name == "rev":
			s.Rev = readTrimmed(filepath.Join(dir, name))
		case name == "state":
			if v := readTrimmed(filepath.Join(dir, name)); v != nil {
				if state, err := ParseDeviceState(*v); err == nil {
					s.State = &state
				}
			}
		case name == "type":
			if v := readTrimmed(filepath.Join(dir, name)); v != nil {
				if t, err := ParseDeviceTypeCode(*v); err == nil {
					s.Type = t
				}
			}
		case name == "vendor":
			if v := readTrimmed(filepath.Join(dir, name)); v != nil {
				if vendor, err := ParseVendor(*v); err == nil {
					s.Vendor = vendor
				}
			}
		}
	}
}

// readEnclosure reads the fixed attribute files of an enclosure slot
// directory. Absent attributes stay nil.
func readEnclosure(dir string) Enclosure {
	var e Enclosure
	e.Active = readTrimmed(filepath.Join(dir, "active"))
	e.Fault = readTrimmed(filepath.Join(dir, "fault"))
	e.PowerStatus = readTrimmed(filepath.Join(dir, "power_status"))
	e.Status = readTrimmed(filepath.Join(dir, "status"))
	e.Type = readTrimmed(filepath.Join(dir, "type"))
	if v := readTrimmed(filepath.Join(dir, "slot")); v != nil {
		if slot, err := strconv.ParseUint(*v, 10, 8); err == nil {
			e.Slot = uint8(slot)
		}
	}
	return e
}

func readTrimmed(path string) *string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return nil
	}
	return &v
}
