package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/spf13/cobra"

	"github.com/blockinv/blockinv/internal/config"
	"github.com/blockinv/blockinv/internal/mounts"
)

var mountsCmd = &cobra.Command{
	Use:   "mounts",
	Short: "List mounted block devices from the mount table",
	Run: func(cmd *cobra.Command, args []string) {
		jsonOut, _ := cmd.Flags().GetBool("json")

		table := loadMountTable()
		devices := table.MountedDevices()
		if jsonOut {
			printJSON(devices)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DEVICE\tFS")
		for _, d := range devices {
			fmt.Fprintf(w, "%s\t%s\n", d.Name, d.FSType)
		}
		w.Flush()
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show space usage for every mounted block device",
	Run: func(cmd *cobra.Command, args []string) {
		table := loadMountTable()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DEVICE\tMOUNTPOINT\tSIZE\tUSED\tFREE\tUSE%")
		for _, d := range table.MountedDevices() {
			mp, ok := table.MountpointForDevice(d.Name)
			if !ok {
				continue
			}
			u, err := disk.Usage(mp)
			if err != nil {
				log.Debug().Err(err).Str("mountpoint", mp).Msg("usage query failed")
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f%%\n",
				d.Name, mp, humanize.IBytes(u.Total), humanize.IBytes(u.Used),
				humanize.IBytes(u.Free), u.UsedPercent)
		}
		w.Flush()
	},
}

func init() {
	mountsCmd.Flags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(mountsCmd)
	rootCmd.AddCommand(usageCmd)
}

func loadMountTable() *mounts.Table {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Error().Err(err).Msg("config load failed")
		os.Exit(1)
	}
	table, err := mounts.Load(cfg.MountTable)
	if err != nil {
		log.Error().Err(err).Msg("mount table load failed")
		os.Exit(1)
	}
	return table
}
