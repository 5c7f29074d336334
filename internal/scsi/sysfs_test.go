package scsi

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeAttr(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0644))
}

// writeUnit lays out one h:c:i:l directory under root with the given
// attribute files.
func writeUnit(t *testing.T, root, address string, attrs map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, address)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, value := range attrs {
		writeAttr(t, dir, name, value)
	}
	return dir
}

func TestScanStructuredTree(t *testing.T) {
	root := t.TempDir()

	dir := writeUnit(t, root, "0:0:0:0", map[string]string{
		"vendor": "ATA",
		"model":  "WDC WD10EZEX",
		"rev":    "1A01",
		"state":  "running",
		"type":   "0",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "block", "sda"), 0755))

	encDir := filepath.Join(writeUnit(t, root, "0:0:1:0", map[string]string{
		"vendor": "LSI",
		"type":   "13",
	}), "enclosure_device:Slot01")
	require.NoError(t, os.MkdirAll(encDir, 0755))
	writeAttr(t, encDir, "active", "1")
	writeAttr(t, encDir, "fault", "0")
	writeAttr(t, encDir, "power_status", "on")
	writeAttr(t, encDir, "status", "OK")
	writeAttr(t, encDir, "type", "array device")
	writeAttr(t, encDir, "slot", "1")

	// Non-unit entries are skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "host0"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "target0:0:0"), 0755))

	units, err := Scan(Config{Root: root, DevRoot: "/dev"})
	require.NoError(t, err)
	require.Len(t, units, 2)

	byAddr := map[string]ScsiInfo{}
	for _, u := range units {
		byAddr[u.Address()] = u
	}

	disk := byAddr["0:0:0:0"]
	require.Equal(t, VendorNone, disk.Vendor)
	require.Equal(t, "WDC WD10EZEX", *disk.Model)
	require.Equal(t, "1A01", *disk.Rev)
	require.NotNil(t, disk.State)
	require.Equal(t, StateRunning, *disk.State)
	require.Equal(t, TypeDirectAccess, disk.Type)
	require.NotNil(t, disk.BlockDevice)
	require.Equal(t, "/dev/sda", *disk.BlockDevice)

	enc := byAddr["0:0:1:0"]
	require.Equal(t, VendorLSI, enc.Vendor)
	require.Equal(t, TypeEnclosure, enc.Type)
	require.Nil(t, enc.BlockDevice)
	require.NotNil(t, enc.Enclosure)
	require.Equal(t, uint8(1), enc.Enclosure.Slot)
	require.Equal(t, "OK", *enc.Enclosure.Status)
	require.Equal(t, "on", *enc.Enclosure.PowerStatus)
}

func TestScanAdvisoryAttributesDegrade(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "1:0:0:0", map[string]string{
		"vendor": "NoSuchVendor",
		"state":  "warping",
	})

	units, err := Scan(Config{Root: root})
	require.NoError(t, err)
	require.Len(t, units, 1)

	u := units[0]
	require.Equal(t, VendorNone, u.Vendor)
	require.Nil(t, u.State)
	require.Nil(t, u.Model)
	require.Equal(t, TypeNoDevice, u.Type)
}

func TestScanMalformedCoordinateIsFatal(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "0:0:0:0", map[string]string{"type": "0"})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "0:zero:0:0"), 0755))

	_, err := Scan(Config{Root: root})
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Contains(t, parseErr.Reason, "bad coordinate")
}

func TestScanFallsBackToLegacyInventory(t *testing.T) {
	dir := t.TempDir()
	procPath := filepath.Join(dir, "scsi")
	require.NoError(t, os.WriteFile(procPath, []byte(procScsiSample), 0644))

	units, err := Scan(Config{
		Root:     filepath.Join(dir, "no-such-tree"),
		ProcPath: procPath,
	})
	require.NoError(t, err)
	require.Len(t, units, 2)
	require.Equal(t, "0:0:0:0", units[0].Address())
	require.Equal(t, "2:0:1:0", units[1].Address())
}

func TestScanFallbackMissingLegacyFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Scan(Config{
		Root:     filepath.Join(dir, "no-such-tree"),
		ProcPath: filepath.Join(dir, "no-such-file"),
	})
	require.Error(t, err)
}
