package inventory

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blockinv/blockinv/internal/block"
	"github.com/blockinv/blockinv/internal/scsi"
)

// ScanRecord is one recorded scan.
type ScanRecord struct {
	ID      int64
	TakenAt time.Time
}

// DeviceRow is a persisted device observation.
type DeviceRow struct {
	ScanID     int64
	Name       string
	FSUUID     *string
	MediaType  string
	DeviceType string
	FSType     string
	Capacity   uint64
	Serial     *string
	TakenAt    time.Time
}

// RecordScan stores the devices and SCSI units of one scan and
// returns the scan id.
func (d *DB) RecordScan(devices []block.Device, units []scsi.ScsiInfo) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec("INSERT INTO scans DEFAULT VALUES")
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to record scan: %w", err)
	}
	scanID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	for _, dev := range devices {
		var fsUUID *string
		if dev.ID != nil {
			s := dev.ID.String()
			fsUUID = &s
		}
		_, err := tx.Exec(`
			INSERT INTO devices (scan_id, name, fs_uuid, media_type, device_type, fs_type, capacity_bytes, serial)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, scanID, dev.Name, fsUUID, dev.MediaType.String(), dev.DeviceType.String(),
			dev.FSType.String(), dev.Capacity, dev.SerialNumber)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to record device %s: %w", dev.Name, err)
		}
	}

	for _, u := range units {
		var state *string
		if u.State != nil {
			s := u.State.String()
			state = &s
		}
		var slot *uint8
		var status *string
		if u.Enclosure != nil {
			slot = &u.Enclosure.Slot
			status = u.Enclosure.Status
		}
		_, err := tx.Exec(`
			INSERT INTO scsi_units (scan_id, host, channel, scsi_id, lun, vendor, model, rev, state,
				scsi_type, scsi_revision, block_device, enclosure_slot, enclosure_status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, scanID, u.Host, u.Channel, u.ID, u.LUN, u.Vendor.String(), u.Model, u.Rev, state,
			int(u.Type), u.Revision, u.BlockDevice, slot, status)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to record scsi unit %s: %w", u.Address(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return scanID, nil
}

// Scans lists recorded scans, most recent first.
func (d *DB) Scans() ([]ScanRecord, error) {
	rows, err := d.conn.Query("SELECT id, taken_at FROM scans ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []ScanRecord
	for rows.Next() {
		var s ScanRecord
		if err := rows.Scan(&s.ID, &s.TakenAt); err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}

// Devices returns the device rows of one scan.
func (d *DB) Devices(scanID int64) ([]DeviceRow, error) {
	rows, err := d.conn.Query(`
		SELECT d.scan_id, d.name, d.fs_uuid, d.media_type, d.device_type, d.fs_type,
			d.capacity_bytes, d.serial, s.taken_at
		FROM devices d JOIN scans s ON s.id = d.scan_id
		WHERE d.scan_id = ?
		ORDER BY d.name
	`, scanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeviceRows(rows)
}

// History returns every recorded observation of a device name, most
// recent first.
func (d *DB) History(name string) ([]DeviceRow, error) {
	rows, err := d.conn.Query(`
		SELECT d.scan_id, d.name, d.fs_uuid, d.media_type, d.device_type, d.fs_type,
			d.capacity_bytes, d.serial, s.taken_at
		FROM devices d JOIN scans s ON s.id = d.scan_id
		WHERE d.name = ?
		ORDER BY d.scan_id DESC
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeviceRows(rows)
}

func collectDeviceRows(rows *sql.Rows) ([]DeviceRow, error) {
	var out []DeviceRow
	for rows.Next() {
		var r DeviceRow
		if err := rows.Scan(&r.ScanID, &r.Name, &r.FSUUID, &r.MediaType, &r.DeviceType,
			&r.FSType, &r.Capacity, &r.Serial, &r.TakenAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
