package nvme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRunner returns canned output and records what ran.
type fakeRunner struct {
	out  []byte
	err  error
	name string
	args []string
}

func (r *fakeRunner) Run(name string, args ...string) ([]byte, error) {
	r.name = name
	r.args = args
	return r.out, r.err
}

func TestSmartLog(t *testing.T) {
	r := &fakeRunner{out: []byte(`{"critical_warning":0,"temperature":310,"percent_used":3}`)}

	log, err := SmartLog(r, "/dev/nvme0")
	require.NoError(t, err)
	require.Equal(t, "nvme", r.name)
	require.Equal(t, []string{"smart-log", "/dev/nvme0", "-o", "json"}, r.args)
	require.Equal(t, float64(310), log["temperature"])
}

func TestErrorAndFirmwareLogArgs(t *testing.T) {
	r := &fakeRunner{out: []byte(`{}`)}

	_, err := ErrorLog(r, "/dev/nvme0")
	require.NoError(t, err)
	require.Equal(t, []string{"error-log", "/dev/nvme0", "-o", "json"}, r.args)

	_, err = FirmwareLog(r, "/dev/nvme0")
	require.NoError(t, err)
	require.Equal(t, []string{"fw-log", "/dev/nvme0", "-o", "json"}, r.args)
}

func TestQueryPropagatesRunnerError(t *testing.T) {
	boom := errors.New("no such device")
	r := &fakeRunner{err: boom}

	_, err := SmartLog(r, "/dev/nvme9")
	require.ErrorIs(t, err, boom)
}

func TestQueryRejectsNonJSON(t *testing.T) {
	r := &fakeRunner{out: []byte("NVME Error Log Entries")}

	_, err := SmartLog(r, "/dev/nvme0")
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode output")
}

func TestListNamespaces(t *testing.T) {
	r := &fakeRunner{out: []byte(`{"nsid_list":[{"nsid":1},{"nsid":2}]}`)}

	ids, err := ListNamespaces(r, "/dev/nvme0")
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2}, ids)
	require.Equal(t, []string{"list-ns", "/dev/nvme0", "-o", "json"}, r.args)
}

func TestListControllers(t *testing.T) {
	r := &fakeRunner{out: []byte(`{
		"Devices": [{
			"DevicePath": "/dev/nvme0n1",
			"ModelNumber": "Samsung SSD 980 PRO 1TB",
			"SerialNumber": "S5GXNX0T123456",
			"Firmware": "5B2QGXA7",
			"PhysicalSize": 1000204886016,
			"UsedBytes": 356516343808
		}]
	}`)}

	controllers, err := ListControllers(r)
	require.NoError(t, err)
	require.Len(t, controllers, 1)
	require.Equal(t, "/dev/nvme0n1", controllers[0].DevicePath)
	require.Equal(t, uint64(1000204886016), controllers[0].PhysicalSize)
}

func TestFormat(t *testing.T) {
	r := &fakeRunner{}
	require.NoError(t, Format(r, "/dev/nvme0n1"))
	require.Equal(t, "nvme", r.name)
	require.Equal(t, []string{"format", "/dev/nvme0n1"}, r.args)
}
