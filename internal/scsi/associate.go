package scsi

// HostPair couples a logical unit with its owning host adapter, when
// one exists in the same scan.
type HostPair struct {
	Device ScsiInfo
	Host   *ScsiInfo
}

// AssociateHosts pairs every record with the record at
// (host, 0, 0, 0) for its host number. A device is never its own
// adapter pair, and a missing adapter is simply a nil association.
// Input order is preserved. The scan is linear per record; adapter
// counts are tens at most, so the quadratic total stays honest rather
// than hiding behind an index.
func AssociateHosts(records []ScsiInfo) []HostPair {
	pairs := make([]HostPair, 0, len(records))
	for _, dev := range records {
		pair := HostPair{Device: dev}
		for i := range records {
			h := records[i]
			if h.Host != dev.Host || h.Channel != 0 || h.ID != 0 || h.LUN != 0 {
				continue
			}
			if !h.SameAddress(dev) {
				hostCopy := h
				pair.Host = &hostCopy
			}
			break
		}
		pairs = append(pairs, pair)
	}
	return pairs
}
