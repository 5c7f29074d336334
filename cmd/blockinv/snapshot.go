package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blockinv/blockinv/internal/config"
	"github.com/blockinv/blockinv/internal/inventory"
	"github.com/blockinv/blockinv/internal/scsi"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record the current device inventory to the database",
	Long: `Scan the host and persist the result, so later runs can be
compared with 'blockinv history'.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			log.Error().Err(err).Msg("config load failed")
			os.Exit(1)
		}

		devices, err := scanDevices(true)
		if err != nil {
			log.Error().Err(err).Msg("device scan failed")
			os.Exit(1)
		}
		// SCSI detail is best-effort here; hosts without SCSI keep an
		// empty unit list in the snapshot.
		units, err := scsi.Scan(cfg.Scsi())
		if err != nil {
			log.Warn().Err(err).Msg("scsi scan failed; recording devices only")
			units = nil
		}

		db, err := inventory.New(cfg.Database)
		if err != nil {
			log.Error().Err(err).Msg("database open failed")
			os.Exit(1)
		}
		defer db.Close()

		scanID, err := db.RecordScan(devices, units)
		if err != nil {
			log.Error().Err(err).Msg("snapshot failed")
			os.Exit(1)
		}
		fmt.Printf("recorded scan %d: %d devices, %d scsi units\n", scanID, len(devices), len(units))
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <name>",
	Short: "Show recorded observations of a device name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			log.Error().Err(err).Msg("config load failed")
			os.Exit(1)
		}
		db, err := inventory.New(cfg.Database)
		if err != nil {
			log.Error().Err(err).Msg("database open failed")
			os.Exit(1)
		}
		defer db.Close()

		rows, err := db.History(args[0])
		if err != nil {
			log.Error().Err(err).Msg("history query failed")
			os.Exit(1)
		}
		if len(rows) == 0 {
			fmt.Fprintf(os.Stderr, "no recorded scans mention %s\n", args[0])
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SCAN\tTAKEN\tMEDIA\tFS\tSIZE\tSERIAL")
		for _, r := range rows {
			serial := "-"
			if r.Serial != nil {
				serial = *r.Serial
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				r.ScanID, r.TakenAt.Format("2006-01-02 15:04:05"),
				r.MediaType, r.FSType, humanize.IBytes(r.Capacity), serial)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(historyCmd)
}
