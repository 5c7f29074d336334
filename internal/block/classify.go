package block

import (
	"regexp"
	"strings"

	"github.com/blockinv/blockinv/internal/udev"
)

// sectorSize is the unit of the sysfs "size" attribute.
const sectorSize = 512

var (
	loopPattern = regexp.MustCompile(`loop\d+`)
	ramPattern  = regexp.MustCompile(`ram\d+`)
	mdPattern   = regexp.MustCompile(`md\d+`)
)

// mediaTypeOf resolves the media type by a fixed precedence chain:
// name-pattern rules first, property rules after. Synthetic device
// names are a more reliable signal than udev properties, which the
// platform populates inconsistently.
func mediaTypeOf(h *udev.Handle) MediaType {
	name := h.Sysname()

	if loopPattern.MatchString(name) {
		return MediaLoopback
	}
	if ramPattern.MatchString(name) {
		return MediaRam
	}
	if mdPattern.MatchString(name) {
		return MediaMdRaid
	}
	if strings.Contains(name, "nvme") {
		return MediaNVMe
	}

	if _, ok := h.Property("DM_NAME"); ok {
		return MediaLVM
	}

	if rpm, ok := h.Property("ID_ATA_ROTATION_RATE_RPM"); ok {
		if rpm == "0" {
			return MediaSolidState
		}
		return MediaRotational
	}

	if vendor, ok := h.Property("ID_VENDOR"); ok && vendor == "QEMU" {
		return MediaVirtual
	}

	return MediaUnknown
}

// Classify builds the typed Device view of one handle. Classification
// is a pure function of the handle's properties at read time; optional
// attributes degrade to zero values, never errors.
func Classify(h *udev.Handle) Device {
	devtype, _ := h.Devtype()

	capacity := uint64(0)
	if sectors, ok := h.AttributeUint64("size"); ok {
		capacity = sectors * sectorSize
	}

	var serial *string
	if s, ok := h.Property("ID_SERIAL"); ok {
		serial = &s
	}

	fsType := FSUnknown
	if s, ok := h.Property("ID_FS_TYPE"); ok {
		fsType = ParseFilesystemType(s)
	}

	return Device{
		ID:           h.PropertyUUID("ID_FS_UUID"),
		Name:         h.Sysname(),
		MediaType:    mediaTypeOf(h),
		DeviceType:   ParseDeviceType(devtype),
		Capacity:     capacity,
		FSType:       fsType,
		SerialNumber: serial,
	}
}
