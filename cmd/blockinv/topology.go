package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blockinv/blockinv/internal/block"
	"github.com/blockinv/blockinv/internal/config"
	"github.com/blockinv/blockinv/internal/udev"
)

var parentCmd = &cobra.Command{
	Use:   "parent <device>",
	Short: "Resolve the parent disk of a partition",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		snap := openSnapshot()
		parent, ok := block.Parent(snap, args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "%s has no disk/partition parent\n", args[0])
			os.Exit(1)
		}
		fmt.Println(parent)
	},
}

var childrenCmd = &cobra.Command{
	Use:   "children <disk>",
	Short: "List the partitions of a disk",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		snap := openSnapshot()
		if !block.IsDisk(snap, args[0]) {
			fmt.Fprintf(os.Stderr, "%s is not a disk\n", args[0])
			os.Exit(1)
		}
		for _, child := range block.Children(snap, args[0]) {
			fmt.Println(child)
		}
	},
}

func init() {
	rootCmd.AddCommand(parentCmd)
	rootCmd.AddCommand(childrenCmd)
}

func openSnapshot() *udev.Snapshot {
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
	return snap
}
