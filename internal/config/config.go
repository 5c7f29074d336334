package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/blockinv/blockinv/internal/scsi"
	"github.com/blockinv/blockinv/internal/udev"
)

// Config points the scanner at the host's device views. Every path
// can be overridden, which is how tests (and containers with a
// foreign /sys) replay a fixed snapshot.
type Config struct {
	SysRoot    string `yaml:"sys_root,omitempty"`
	UdevData   string `yaml:"udev_data,omitempty"`
	DevRoot    string `yaml:"dev_root,omitempty"`
	ScsiRoot   string `yaml:"scsi_root,omitempty"`
	ProcScsi   string `yaml:"proc_scsi,omitempty"`
	MountTable string `yaml:"mount_table,omitempty"`
	Database   string `yaml:"database,omitempty"`
}

var defaultConfig = Config{
	SysRoot:    "/sys",
	UdevData:   "/run/udev/data",
	DevRoot:    "/dev",
	ScsiRoot:   "/sys/bus/scsi/devices",
	ProcScsi:   "/proc/scsi/scsi",
	MountTable: "/etc/mtab",
	Database:   "/var/lib/blockinv/inventory.db",
}

// Load reads the config file at path, or probes the default
// locations when path is empty. A missing file is not an error; the
// defaults describe a live host.
func Load(path string) (*Config, error) {
	if path == "" {
		candidates := []string{
			"/etc/blockinv/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/blockinv/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			var loaded Config
			if err := yaml.Unmarshal(data, &loaded); err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SysRoot == "" {
		c.SysRoot = defaultConfig.SysRoot
	}
	if c.UdevData == "" {
		c.UdevData = defaultConfig.UdevData
	}
	if c.DevRoot == "" {
		c.DevRoot = defaultConfig.DevRoot
	}
	if c.ScsiRoot == "" {
		c.ScsiRoot = defaultConfig.ScsiRoot
	}
	if c.ProcScsi == "" {
		c.ProcScsi = defaultConfig.ProcScsi
	}
	if c.MountTable == "" {
		c.MountTable = defaultConfig.MountTable
	}
	if c.Database == "" {
		c.Database = defaultConfig.Database
	}
}

// Udev returns the device-source configuration.
func (c *Config) Udev() udev.Config {
	return udev.Config{SysRoot: c.SysRoot, DataDir: c.UdevData, DevRoot: c.DevRoot}
}

// Scsi returns the SCSI scan configuration.
func (c *Config) Scsi() scsi.Config {
	return scsi.Config{Root: c.ScsiRoot, ProcPath: c.ProcScsi, DevRoot: c.DevRoot}
}
