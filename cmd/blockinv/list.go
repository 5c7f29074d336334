package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blockinv/blockinv/internal/block"
	"github.com/blockinv/blockinv/internal/config"
	"github.com/blockinv/blockinv/internal/udev"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List and classify all block devices",
	Long: `List every block device udev knows about, with media type,
device type, filesystem and capacity.

Examples:
  blockinv list
  blockinv list --all
  blockinv list --json`,
	Run: runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "Output as JSON")
	listCmd.Flags().BoolP("all", "a", false, "Include partitions")

	rootCmd.AddCommand(listCmd)
}

// scanDevices loads the config and classifies the current block view.
func scanDevices(includePartitions bool) ([]block.Device, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	snap, err := udev.Open(cfg.Udev())
	if err != nil {
		return nil, err
	}

	if includePartitions {
		var devices []block.Device
		for _, h := range snap.Handles() {
			if h.IsBlock() {
				devices = append(devices, block.Classify(h))
			}
		}
		return devices, nil
	}
	return block.AllDeviceInfo(snap, block.ListBlockDevices(snap)), nil
}

func runList(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")
	all, _ := cmd.Flags().GetBool("all")

	devices, err := scanDevices(all)
	if err != nil {
		log.Error().Err(err).Msg("device scan failed")
		os.Exit(1)
	}

	if jsonOut {
		printJSON(devices)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tMEDIA\tFS\tSIZE\tSERIAL")
	for _, d := range devices {
		serial := "-"
		if d.SerialNumber != nil {
			serial = *d.SerialNumber
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Name, d.DeviceType, d.MediaType, d.FSType,
			humanize.IBytes(d.Capacity), serial)
	}
	w.Flush()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
