package scsi

import "testing"

func addr(host, channel, id, lun uint8) ScsiInfo {
	return ScsiInfo{Host: host, Channel: channel, ID: id, LUN: lun}
}

func TestAssociateHosts(t *testing.T) {
	records := []ScsiInfo{
		addr(0, 0, 0, 0),
		addr(2, 0, 0, 0),
		addr(2, 1, 0, 0),
		addr(2, 1, 0, 1),
	}

	pairs := AssociateHosts(records)
	if len(pairs) != len(records) {
		t.Fatalf("got %d pairs, want %d", len(pairs), len(records))
	}
	for i, pair := range pairs {
		if !pair.Device.SameAddress(records[i]) {
			t.Fatalf("pair %d: input order not preserved", i)
		}
	}

	// Adapters never pair with themselves.
	if pairs[0].Host != nil {
		t.Fatalf("0:0:0:0 is its own adapter, want nil pairing, got %s", pairs[0].Host.Address())
	}
	if pairs[1].Host != nil {
		t.Fatalf("2:0:0:0 is its own adapter, want nil pairing, got %s", pairs[1].Host.Address())
	}

	for _, i := range []int{2, 3} {
		if pairs[i].Host == nil {
			t.Fatalf("%s: expected adapter pairing", pairs[i].Device.Address())
		}
		if got := pairs[i].Host.Address(); got != "2:0:0:0" {
			t.Fatalf("%s: paired with %s, want 2:0:0:0", pairs[i].Device.Address(), got)
		}
	}
}

func TestAssociateHostsMissingAdapter(t *testing.T) {
	pairs := AssociateHosts([]ScsiInfo{addr(5, 1, 0, 0)})
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].Host != nil {
		t.Fatalf("no adapter record for host 5, want nil pairing")
	}
}

func TestAssociateHostsEmpty(t *testing.T) {
	if pairs := AssociateHosts(nil); len(pairs) != 0 {
		t.Fatalf("got %d pairs from empty scan", len(pairs))
	}
}
