package scsi

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const procScsiSample = `Attached devices:
Host: scsi0 Channel: 00 Id: 00 Lun: 00
  Vendor: ATA      Model: HARDDISK   Rev: 1.0
  Type:   Direct-Access                    ANSI  SCSI revision: 05
Host: scsi2 Channel: 00 Id: 01 Lun: 00
  Vendor: LSI      Model: SAS2X36    Rev: 0717
  Type:   Enclosure                        ANSI  SCSI revision: 05
`

func TestParseProcScsiTwoRecords(t *testing.T) {
	records, err := ParseProcScsi([]byte(procScsiSample))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	require.Equal(t, "0:0:0:0", first.Address())
	require.Equal(t, VendorNone, first.Vendor)
	require.Equal(t, "HARDDISK", *first.Model)
	require.Equal(t, "1.0", *first.Rev)
	require.Equal(t, TypeDirectAccess, first.Type)
	require.Equal(t, uint32(5), first.Revision)

	second := records[1]
	require.Equal(t, "2:0:1:0", second.Address())
	require.Equal(t, VendorLSI, second.Vendor)
	require.Equal(t, "SAS2X36", *second.Model)
	require.Equal(t, TypeEnclosure, second.Type)
}

func TestParseProcScsiBannerIsOptional(t *testing.T) {
	bare := strings.TrimPrefix(procScsiSample, "Attached devices:\n")
	records, err := ParseProcScsi([]byte(bare))
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestParseProcScsiSingleSpaceModelDelimiter(t *testing.T) {
	// Newer kernels delimit Model with a single space; older ones with
	// two. Both forms parse.
	input := "Host: scsi1 Channel: 00 Id: 00 Lun: 00\n" +
		"  Vendor: QEMU Model: QEMU_HARDDISK Rev: 2.5+\n" +
		"  Type: Direct-Access ANSI  SCSI revision: 05\n"
	records, err := ParseProcScsi([]byte(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, VendorQEMU, records[0].Vendor)
	require.Equal(t, "QEMU_HARDDISK", *records[0].Model)
}

func TestParseProcScsiTruncatedInput(t *testing.T) {
	cut := strings.Index(procScsiSample, "Rev: 0717")
	require.Positive(t, cut)

	records, err := ParseProcScsi([]byte(procScsiSample[:cut+len("Rev:")]))
	require.Nil(t, records, "truncation must not yield partial results")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Positive(t, parseErr.NeedBytes, "truncation should carry a byte hint")
}

func TestParseProcScsiUnknownVendorIsMalformed(t *testing.T) {
	bad := strings.Replace(procScsiSample, "Vendor: LSI ", "Vendor: ACME", 1)

	records, err := ParseProcScsi([]byte(bad))
	require.Nil(t, records)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Zero(t, parseErr.NeedBytes, "malformation is not truncation")
	require.Contains(t, parseErr.Reason, "unknown vendor")
}

func TestParseProcScsiUnknownTypeIsMalformed(t *testing.T) {
	bad := strings.Replace(procScsiSample, "Type:   Enclosure", "Type:   Teleporter", 1)

	_, err := ParseProcScsi([]byte(bad))
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Zero(t, parseErr.NeedBytes)
}

func TestParseProcScsiRejectsGarbage(t *testing.T) {
	var parseErr *ParseError

	_, err := ParseProcScsi([]byte("nothing scsi about this\n"))
	require.True(t, errors.As(err, &parseErr))
	require.Zero(t, parseErr.NeedBytes)

	_, err = ParseProcScsi([]byte(""))
	require.True(t, errors.As(err, &parseErr))
	require.Positive(t, parseErr.NeedBytes, "empty input reads as truncation")
}

func TestParseProcScsiCoordinateOutOfRange(t *testing.T) {
	bad := strings.Replace(procScsiSample, "Lun: 00", "Lun: 999", 1)

	_, err := ParseProcScsi([]byte(bad))
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Contains(t, parseErr.Reason, "out of range")
}
