package udev

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Handle is one enumerated device: a sysfs directory joined with its
// udev property bag. Properties are stringly typed and optionally
// present; the typed accessors below parse at this boundary so call
// sites never see raw strings for structured values.
type Handle struct {
	sysname   string
	sysDir    string
	devRoot   string
	devtype   string
	subsystem string
	props     map[string]string
	parent    *Handle
}

// Sysname returns the kernel's short name for the device (sda, sda1).
func (h *Handle) Sysname() string { return h.sysname }

// DevPath returns the device node path (<devRoot>/<sysname>).
func (h *Handle) DevPath() string { return filepath.Join(h.devRoot, h.sysname) }

func (h *Handle) Devtype() (string, bool) {
	return h.devtype, h.devtype != ""
}

func (h *Handle) Subsystem() (string, bool) {
	return h.subsystem, h.subsystem != ""
}

// Parent returns the enclosing device (the disk for a partition), or
// nil for top-level devices.
func (h *Handle) Parent() *Handle { return h.parent }

// Property returns the udev property for key, if present.
func (h *Handle) Property(key string) (string, bool) {
	v, ok := h.props[key]
	return v, ok
}

// Attribute reads the named sysfs attribute file at call time.
func (h *Handle) Attribute(key string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(h.sysDir, key))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// PropertyUint64 parses the property as an unsigned decimal.
// Absent or malformed values report false, never an error.
func (h *Handle) PropertyUint64(key string) (uint64, bool) {
	v, ok := h.props[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PropertyUUID parses the property as a UUID. Malformed or absent
// values yield nil; the field is advisory.
func (h *Handle) PropertyUUID(key string) *uuid.UUID {
	v, ok := h.props[key]
	if !ok {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

// AttributeUint64 parses the named sysfs attribute as an unsigned
// decimal, reporting false on absence or garbage.
func (h *Handle) AttributeUint64(key string) (uint64, bool) {
	v, ok := h.Attribute(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsBlock reports whether the handle belongs to the block subsystem.
func (h *Handle) IsBlock() bool { return h.subsystem == "block" }

// IsPartition reports whether udev classified the handle as a
// partition. Anything else in the block subsystem is treated as a
// disk for enumeration, erring toward inclusion.
func (h *Handle) IsPartition() bool { return h.devtype == "partition" }
