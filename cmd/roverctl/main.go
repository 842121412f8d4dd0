package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	roverAddr string
	rootCmd   = &cobra.Command{
		Use:   "roverctl",
		Short: "Field Rover operator CLI",
		Long: `roverctl drives the field rover service from a terminal:
start missions, nudge the wheels, take photos and follow live status
without opening the dashboard.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&roverAddr, "addr", "http://localhost:5000", "rover service address")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
