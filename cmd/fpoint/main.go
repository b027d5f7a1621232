package main

import (
	"os"

	"github.com/scopeworks/fpoint/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fpoint",
	Short: "An IFPUG Function Point Analysis Calculator",
	Long: `fpoint is a function point analysis calculator that turns component
inventories into unadjusted and adjusted function point counts, effort
estimates, staffing recommendations, and version-over-version trends.

Features:
  • IFPUG complexity classification for all five component kinds
  • Dual-count support for external inquiries
  • Value adjustment factor from the 14 general system characteristics
  • Effort and team size estimation from adjusted counts`,
	Version: version.Short(),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add main subcommands
	rootCmd.AddCommand(NewCalculateCmd())
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewTeamCmd())
	rootCmd.AddCommand(NewTrendCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
