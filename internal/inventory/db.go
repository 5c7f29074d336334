// Package inventory persists scan results so successive runs can be
// compared. Persistence lives outside the scanning core, which stays
// stateless between calls.
package inventory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultPath is the default database location.
const DefaultPath = "/var/lib/blockinv/inventory.db"

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
	path string
}

// New opens or creates the SQLite database at the given path.
func New(path string) (*DB, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

func (d *DB) migrate() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	var version int
	if err := d.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return err
	}

	migrations := []string{
		migrationV1,
	}

	for i, migration := range migrations {
		v := i + 1
		if v <= version {
			continue
		}

		tx, err := d.conn.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migration); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration v%d failed: %w", v, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

const migrationV1 = `
-- One row per scan invocation
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY,
    taken_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Classified block devices as seen by a scan
CREATE TABLE IF NOT EXISTS devices (
    id INTEGER PRIMARY KEY,
    scan_id INTEGER NOT NULL REFERENCES scans(id),
    name TEXT NOT NULL,
    fs_uuid TEXT,
    media_type TEXT NOT NULL,
    device_type TEXT NOT NULL,
    fs_type TEXT NOT NULL,
    capacity_bytes INTEGER NOT NULL,
    serial TEXT
);

CREATE INDEX IF NOT EXISTS idx_devices_scan ON devices(scan_id);
CREATE INDEX IF NOT EXISTS idx_devices_name ON devices(name);
CREATE INDEX IF NOT EXISTS idx_devices_serial ON devices(serial);

-- SCSI logical units as seen by a scan
CREATE TABLE IF NOT EXISTS scsi_units (
    id INTEGER PRIMARY KEY,
    scan_id INTEGER NOT NULL REFERENCES scans(id),
    host INTEGER NOT NULL,
    channel INTEGER NOT NULL,
    scsi_id INTEGER NOT NULL,
    lun INTEGER NOT NULL,
    vendor TEXT,
    model TEXT,
    rev TEXT,
    state TEXT,
    scsi_type INTEGER NOT NULL,
    scsi_revision INTEGER NOT NULL,
    block_device TEXT,
    enclosure_slot INTEGER,
    enclosure_status TEXT,

    UNIQUE(scan_id, host, channel, scsi_id, lun)
);

CREATE INDEX IF NOT EXISTS idx_scsi_scan ON scsi_units(scan_id);
CREATE INDEX IF NOT EXISTS idx_scsi_address ON scsi_units(host, channel, scsi_id, lun);
`
