package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blockinv/blockinv/internal/version"
)

var (
	cfgFile string
	verbose bool
	log     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blockinv",
	Short: "Block device inventory and classification tool",
	Long: `blockinv inventories the block storage devices of a host: it reads
the udev database and sysfs to classify media, device and filesystem
types, resolves disk/partition topology, and associates SCSI logical
units with their host adapters and enclosure slots.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the blockinv version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/blockinv/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
