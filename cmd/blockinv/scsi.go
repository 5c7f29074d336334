package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blockinv/blockinv/internal/config"
	"github.com/blockinv/blockinv/internal/scsi"
)

var scsiCmd = &cobra.Command{
	Use:   "scsi",
	Short: "List SCSI logical units with their host adapters",
	Long: `Walk the sysfs SCSI device tree (or fall back to the legacy
/proc/scsi/scsi text when sysfs is unavailable) and print every
logical unit, paired with the host adapter it hangs off.

Examples:
  blockinv scsi
  blockinv scsi --json`,
	Run: runScsi,
}

func init() {
	scsiCmd.Flags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(scsiCmd)
}

func runScsi(cmd *cobra.Command, args []string) {
	jsonOut, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Error().Err(err).Msg("config load failed")
		os.Exit(1)
	}

	units, err := scsi.Scan(cfg.Scsi())
	if err != nil {
		log.Error().Err(err).Msg("scsi scan failed")
		os.Exit(1)
	}
	pairs := scsi.AssociateHosts(units)

	if jsonOut {
		type pairJSON struct {
			Address     string  `json:"address"`
			BlockDevice *string `json:"block_device,omitempty"`
			Vendor      string  `json:"vendor"`
			Model       *string `json:"model,omitempty"`
			State       *string `json:"state,omitempty"`
			HostAdapter *string `json:"host_adapter,omitempty"`
			Slot        *uint8  `json:"enclosure_slot,omitempty"`
		}
		out := make([]pairJSON, 0, len(pairs))
		for _, p := range pairs {
			row := pairJSON{
				Address:     p.Device.Address(),
				BlockDevice: p.Device.BlockDevice,
				Vendor:      p.Device.Vendor.String(),
				Model:       p.Device.Model,
			}
			if p.Device.State != nil {
				s := p.Device.State.String()
				row.State = &s
			}
			if p.Host != nil {
				addr := p.Host.Address()
				row.HostAdapter = &addr
			}
			if p.Device.Enclosure != nil {
				row.Slot = &p.Device.Enclosure.Slot
			}
			out = append(out, row)
		}
		printJSON(out)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tDEVICE\tVENDOR\tMODEL\tSTATE\tHOST\tSLOT")
	for _, p := range pairs {
		dev, model, state, host, slot := "-", "-", "-", "-", "-"
		if p.Device.BlockDevice != nil {
			dev = *p.Device.BlockDevice
		}
		if p.Device.Model != nil {
			model = *p.Device.Model
		}
		if p.Device.State != nil {
			state = p.Device.State.String()
		}
		if p.Host != nil {
			host = p.Host.Address()
		}
		if p.Device.Enclosure != nil {
			slot = fmt.Sprintf("%d", p.Device.Enclosure.Slot)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Device.Address(), dev, p.Device.Vendor, model, state, host, slot)
	}
	w.Flush()
}
