package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blockinv/blockinv/internal/format"
	"github.com/blockinv/blockinv/internal/nvme"
)

var nvmeCmd = &cobra.Command{
	Use:   "nvme",
	Short: "Query NVMe controllers through nvme-cli",
}

var nvmeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List NVMe controllers",
	Run: func(cmd *cobra.Command, args []string) {
		jsonOut, _ := cmd.Flags().GetBool("json")

		controllers, err := nvme.ListControllers(format.ExecRunner{})
		if err != nil {
			log.Error().Err(err).Msg("nvme list failed")
			os.Exit(1)
		}

		if jsonOut {
			printJSON(controllers)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DEVICE\tMODEL\tSERIAL\tFIRMWARE\tSIZE\tUSED")
		for _, c := range controllers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				c.DevicePath, c.ModelNumber, c.SerialNumber, c.Firmware,
				humanize.IBytes(c.PhysicalSize), humanize.IBytes(c.UsedBytes))
		}
		w.Flush()
	},
}

var nvmeSmartCmd = &cobra.Command{
	Use:   "smart <device>",
	Short: "Show the SMART / health log of a controller",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		smart, err := nvme.SmartLog(format.ExecRunner{}, args[0])
		if err != nil {
			log.Error().Err(err).Msg("smart-log query failed")
			os.Exit(1)
		}
		printJSON(smart)
	},
}

func init() {
	nvmeListCmd.Flags().Bool("json", false, "Output as JSON")

	nvmeCmd.AddCommand(nvmeListCmd)
	nvmeCmd.AddCommand(nvmeSmartCmd)
	rootCmd.AddCommand(nvmeCmd)
}
