package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blockinv/blockinv/internal/block"
	"github.com/blockinv/blockinv/internal/config"
	"github.com/blockinv/blockinv/internal/mounts"
	"github.com/blockinv/blockinv/internal/udev"
)

var detailCmd = &cobra.Command{
	Use:   "detail <device>",
	Short: "Show details for one device, by path or symlink alias",
	Long: `Show the classified view of a single device. The device may be
named by node path or by any of its by-id/by-uuid symlink aliases.

Examples:
  blockinv detail /dev/sda1
  blockinv detail /dev/disk/by-uuid/8c2a...
  blockinv detail /dev/sda1 --json`,
	Args: cobra.ExactArgs(1),
	Run:  runDetail,
}

func init() {
	detailCmd.Flags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(detailCmd)
}

func runDetail(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Error().Err(err).Msg("config load failed")
		os.Exit(1)
	}
	snap, err := udev.Open(cfg.Udev())
	if err != nil {
		log.Error().Err(err).Msg("device scan failed")
		os.Exit(1)
	}

	partNum, dev := block.DeviceFromPath(snap, args[0])
	if dev == nil {
		fmt.Fprintf(os.Stderr, "no block device found for %s\n", args[0])
		os.Exit(1)
	}

	if jsonOut {
		printJSON(struct {
			block.Device
			PartitionNumber *uint64 `json:"partition_number,omitempty"`
		}{Device: *dev, PartitionNumber: partNum})
		return
	}

	fmt.Printf("Name:        %s\n", dev.Name)
	fmt.Printf("Type:        %s\n", dev.DeviceType)
	fmt.Printf("Media:       %s\n", dev.MediaType)
	fmt.Printf("Filesystem:  %s\n", dev.FSType)
	fmt.Printf("Capacity:    %s\n", humanize.IBytes(dev.Capacity))
	if dev.ID != nil {
		fmt.Printf("FS UUID:     %s\n", dev.ID)
	}
	if dev.SerialNumber != nil {
		fmt.Printf("Serial:      %s\n", *dev.SerialNumber)
	}
	if partNum != nil {
		fmt.Printf("Partition:   %d\n", *partNum)
	}

	if parent, ok := block.Parent(snap, args[0]); ok {
		fmt.Printf("Parent:      %s\n", parent)
	}
	if table, err := mounts.Load(cfg.MountTable); err == nil {
		if mp, ok := table.MountpointForDevice(args[0]); ok {
			fmt.Printf("Mounted at:  %s\n", mp)
		}
	}
}
