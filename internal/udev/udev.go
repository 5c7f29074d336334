package udev

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config points the snapshot at the kernel's device database. The
// defaults match a live host; tests point the roots at a fixture tree.
type Config struct {
	SysRoot string // sysfs root, default /sys
	DataDir string // udev database directory, default /run/udev/data
	DevRoot string // device node directory, default /dev
}

func (c Config) withDefaults() Config {
	if c.SysRoot == "" {
		c.SysRoot = "/sys"
	}
	if c.DataDir == "" {
		c.DataDir = "/run/udev/data"
	}
	if c.DevRoot == "" {
		c.DevRoot = "/dev"
	}
	return c
}

// EnumerationError means the device database could not be opened or
// scanned. It is fatal and surfaced verbatim; no retry is attempted.
type EnumerationError struct {
	Op  string
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("udev enumeration failed: %s: %v", e.Op, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// Snapshot is the block-subsystem view of the host at the instant Open
// was called. Nothing is cached between snapshots; callers needing
// fresh state open a new one.
type Snapshot struct {
	cfg     Config
	handles []*Handle
}

// Open scans <sysRoot>/block and joins each device with its udev
// database record (/run/udev/data/b<major>:<minor>). Partition
// subdirectories are enumerated as children of their disk.
func Open(cfg Config) (*Snapshot, error) {
	cfg = cfg.withDefaults()
	blockDir := filepath.Join(cfg.SysRoot, "block")

	entries, err := os.ReadDir(blockDir)
	if err != nil {
		return nil, &EnumerationError{Op: "read " + blockDir, Err: err}
	}

	snap := &Snapshot{cfg: cfg}
	for _, entry := range entries {
		name := entry.Name()
		sysDir := filepath.Join(blockDir, name)

		disk := loadHandle(cfg, name, sysDir, nil)
		if disk == nil {
			continue
		}
		snap.handles = append(snap.handles, disk)

		// Partitions live as subdirectories of the disk that carry
		// a "partition" attribute file.
		subEntries, err := os.ReadDir(sysDir)
		if err != nil {
			continue
		}
		for _, sub := range subEntries {
			if !sub.IsDir() {
				continue
			}
			partDir := filepath.Join(sysDir, sub.Name())
			if _, err := os.Stat(filepath.Join(partDir, "partition")); err != nil {
				continue
			}
			part := loadHandle(cfg, sub.Name(), partDir, disk)
			if part != nil {
				snap.handles = append(snap.handles, part)
			}
		}
	}

	return snap, nil
}

// Handles returns every enumerated device in scan order.
func (s *Snapshot) Handles() []*Handle { return s.handles }

// BySysname returns the handle for the given kernel name, if present.
func (s *Snapshot) BySysname(name string) (*Handle, bool) {
	for _, h := range s.handles {
		if h.sysname == name {
			return h, true
		}
	}
	return nil, false
}

// DevRoot returns the device node directory the snapshot resolves
// handles against.
func (s *Snapshot) DevRoot() string { return s.cfg.DevRoot }

// loadHandle reads the udev database record for one sysfs entry.
// A missing database record is not an error; the handle simply has no
// properties (udev may not have processed the device yet).
func loadHandle(cfg Config, name, sysDir string, parent *Handle) *Handle {
	h := &Handle{
		sysname: name,
		sysDir:  sysDir,
		devRoot: cfg.DevRoot,
		parent:  parent,
		props:   map[string]string{},
	}

	majMin, err := os.ReadFile(filepath.Join(sysDir, "dev"))
	if err == nil {
		data, err := os.ReadFile(filepath.Join(cfg.DataDir, "b"+strings.TrimSpace(string(majMin))))
		if err == nil {
			parseUdevData(string(data), h.props)
		}
	}

	h.subsystem = h.props["SUBSYSTEM"]
	if h.subsystem == "" {
		// Everything under <sysRoot>/block is a block device even
		// when udev has no record for it.
		h.subsystem = "block"
	}

	h.devtype = h.props["DEVTYPE"]
	if h.devtype == "" {
		if parent != nil {
			h.devtype = "partition"
		} else {
			h.devtype = "disk"
		}
	}

	return h
}

// parseUdevData reads the E:KEY=VALUE lines of a udev database record.
func parseUdevData(data string, props map[string]string) {
	for _, line := range strings.Split(data, "\n") {
		if !strings.HasPrefix(line, "E:") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "E:"), "=")
		if !ok {
			continue
		}
		props[key] = value
	}
}
