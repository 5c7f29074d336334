package scsi

import "fmt"

// Vendor is the RAID/HBA vendor serving a logical unit, mapped from
// the inquiry vendor token.
type Vendor int

const (
	VendorNone Vendor = iota
	VendorCisco
	VendorHP
	VendorLSI
	VendorQEMU
	VendorVBox
)

// ParseVendor maps an inquiry vendor token. Unknown vendors are an
// error; the legacy text path treats that as a parse failure while
// the structured path degrades to VendorNone.
func ParseVendor(s string) (Vendor, error) {
	switch s {
	case "ATA":
		return VendorNone, nil
	case "CISCO":
		return VendorCisco, nil
	case "HP", "hp", "HPE":
		return VendorHP, nil
	case "LSI":
		return VendorLSI, nil
	case "QEMU":
		return VendorQEMU, nil
	case "VBOX":
		return VendorVBox, nil
	default:
		return VendorNone, fmt.Errorf("unknown vendor: %s", s)
	}
}

func (v Vendor) String() string {
	switch v {
	case VendorCisco:
		return "cisco"
	case VendorHP:
		return "hp"
	case VendorLSI:
		return "lsi"
	case VendorQEMU:
		return "qemu"
	case VendorVBox:
		return "vbox"
	default:
		return "none"
	}
}

// DeviceState is the kernel's SCSI device state file value.
type DeviceState int

const (
	StateBlocked DeviceState = iota
	StateFailFast
	StateLost
	StateRunning
	StateRunningRTA
)

func ParseDeviceState(s string) (DeviceState, error) {
	switch s {
	case "blocked":
		return StateBlocked, nil
	case "failfast":
		return StateFailFast, nil
	case "lost":
		return StateLost, nil
	case "running":
		return StateRunning, nil
	case "running_rta":
		return StateRunningRTA, nil
	default:
		return StateBlocked, fmt.Errorf("unknown scsi state: %s", s)
	}
}

func (d DeviceState) String() string {
	switch d {
	case StateBlocked:
		return "blocked"
	case StateFailFast:
		return "fail_fast"
	case StateLost:
		return "lost"
	case StateRunning:
		return "running"
	case StateRunningRTA:
		return "running_rta"
	default:
		return "unknown"
	}
}

// DeviceTypeCode is the SCSI peripheral device type. The numbering
// follows the kernel's sysfs "type" file (and lsscsi).
type DeviceTypeCode int

const (
	TypeDirectAccess DeviceTypeCode = iota
	TypeSequentialAccess
	TypePrinter
	TypeProcessor
	TypeWriteOnce
	TypeCdRom
	TypeScanner
	TypeOpticalMemory
	TypeMediumChanger
	TypeCommunications
	TypeUnknownA
	TypeUnknownB
	TypeStorageArray
	TypeEnclosure
	TypeSimplifiedDirectAccess
	TypeOpticalCardReadWriter
	TypeBridgeController
	TypeObjectBasedStorage
	TypeAutomationDriveInterface
	TypeSecurityManager
	TypeZonedBlock
	TypeReserved15
	TypeReserved16
	TypeReserved17
	TypeReserved18
	TypeReserved19
	TypeReserved1A
	TypeReserved1B
	TypeReserved1C
	TypeReserved1E
	TypeWellKnownLU
	TypeNoDevice
)

// ParseDeviceTypeCode accepts the numeric sysfs form ("0".."31") and
// the handful of textual forms the legacy /proc inventory uses.
func ParseDeviceTypeCode(s string) (DeviceTypeCode, error) {
	switch s {
	case "0":
		return TypeDirectAccess, nil
	case "1":
		return TypeSequentialAccess, nil
	case "2":
		return TypePrinter, nil
	case "3":
		return TypeProcessor, nil
	case "4":
		return TypeWriteOnce, nil
	case "5":
		return TypeCdRom, nil
	case "6":
		return TypeScanner, nil
	case "7":
		return TypeOpticalMemory, nil
	case "8":
		return TypeMediumChanger, nil
	case "9":
		return TypeCommunications, nil
	case "10":
		return TypeUnknownA, nil
	case "11":
		return TypeUnknownB, nil
	case "12":
		return TypeStorageArray, nil
	case "13":
		return TypeEnclosure, nil
	case "14":
		return TypeSimplifiedDirectAccess, nil
	case "15":
		return TypeOpticalCardReadWriter, nil
	case "16":
		return TypeBridgeController, nil
	case "17":
		return TypeObjectBasedStorage, nil
	case "18":
		return TypeAutomationDriveInterface, nil
	case "19":
		return TypeSecurityManager, nil
	case "20":
		return TypeZonedBlock, nil
	case "21":
		return TypeReserved15, nil
	case "22":
		return TypeReserved16, nil
	case "23":
		return TypeReserved17, nil
	case "24":
		return TypeReserved18, nil
	case "25":
		return TypeReserved19, nil
	case "26":
		return TypeReserved1A, nil
	case "27":
		return TypeReserved1B, nil
	case "28":
		return TypeReserved1C, nil
	case "29":
		return TypeReserved1E, nil
	case "30":
		return TypeWellKnownLU, nil
	case "31":
		return TypeNoDevice, nil
	case "Direct-Access":
		return TypeDirectAccess, nil
	case "Enclosure":
		return TypeEnclosure, nil
	case "RAID":
		return TypeStorageArray, nil
	default:
		return TypeNoDevice, fmt.Errorf("unknown scsi device type: %s", s)
	}
}

// Enclosure is a drive-bay slot record read from the sysfs
// enclosure_device directory attached to a logical unit.
type Enclosure struct {
	Active      *string
	Fault       *string
	PowerStatus *string
	Status      *string
	Type        *string
	Slot        uint8
}

// ScsiInfo describes one logical unit. Identity is the
// (host, channel, id, lun) quadruple alone: the quadruple is the
// hardware address, everything else is descriptive payload.
type ScsiInfo struct {
	BlockDevice *string
	Enclosure   *Enclosure
	Host        uint8
	Channel     uint8
	ID          uint8
	LUN         uint8
	Vendor      Vendor
	Model       *string
	Rev         *string
	State       *DeviceState
	Type        DeviceTypeCode
	Revision    uint32
}

// Address renders the h:c:i:l coordinate form.
func (s ScsiInfo) Address() string {
	return fmt.Sprintf("%d:%d:%d:%d", s.Host, s.Channel, s.ID, s.LUN)
}

// SameAddress reports coordinate equality, the only identity that
// matters for association.
func (s ScsiInfo) SameAddress(other ScsiInfo) bool {
	return s.Host == other.Host && s.Channel == other.Channel &&
		s.ID == other.ID && s.LUN == other.LUN
}
