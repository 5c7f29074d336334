// Package nvme wraps the nvme-cli tool's JSON output for log and
// namespace queries. These are collaborators around the device
// inventory, not part of the scanning core.
package nvme

import (
	"encoding/json"
	"fmt"

	"github.com/blockinv/blockinv/internal/format"
)

func jsonQuery(r format.Runner, args ...string) (map[string]any, error) {
	out, err := r.Run("nvme", args...)
	if err != nil {
		return nil, err
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		return nil, fmt.Errorf("nvme %s: decode output: %w", args[0], err)
	}
	return decoded, nil
}

// ErrorLog retrieves the device's error log.
func ErrorLog(r format.Runner, device string) (map[string]any, error) {
	return jsonQuery(r, "error-log", device, "-o", "json")
}

// FirmwareLog retrieves the device's firmware slot log.
func FirmwareLog(r format.Runner, device string) (map[string]any, error) {
	return jsonQuery(r, "fw-log", device, "-o", "json")
}

// SmartLog retrieves the device's SMART / health log.
func SmartLog(r format.Runner, device string) (map[string]any, error) {
	return jsonQuery(r, "smart-log", device, "-o", "json")
}

// Format low-level formats the NVMe device.
func Format(r format.Runner, device string) error {
	_, err := r.Run("nvme", "format", device)
	return err
}

// ListNamespaces lists the active namespace IDs of a controller.
func ListNamespaces(r format.Runner, device string) ([]uint64, error) {
	out, err := r.Run("nvme", "list-ns", device, "-o", "json")
	if err != nil {
		return nil, err
	}
	var decoded struct {
		NsidList []struct {
			Nsid uint64 `json:"nsid"`
		} `json:"nsid_list"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		return nil, fmt.Errorf("nvme list-ns: decode output: %w", err)
	}
	ids := make([]uint64, 0, len(decoded.NsidList))
	for _, ns := range decoded.NsidList {
		ids = append(ids, ns.Nsid)
	}
	return ids, nil
}

// Controller is one row of `nvme list` output.
type Controller struct {
	DevicePath   string `json:"DevicePath"`
	ModelNumber  string `json:"ModelNumber"`
	SerialNumber string `json:"SerialNumber"`
	Firmware     string `json:"Firmware"`
	PhysicalSize uint64 `json:"PhysicalSize"`
	UsedBytes    uint64 `json:"UsedBytes"`
}

// ListControllers lists the NVMe controllers on the host.
func ListControllers(r format.Runner) ([]Controller, error) {
	out, err := r.Run("nvme", "list", "-o", "json")
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Devices []Controller `json:"Devices"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		return nil, fmt.Errorf("nvme list: decode output: %w", err)
	}
	return decoded.Devices, nil
}
