package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockapi",
	Short: "Vietnam stock market data API",
	Long: `Vietnam stock market data API

Thin proxy over public Vietnamese market data vendors (VCI, TCBS, Yahoo)
with a synthetic fallback tier.

Usage:
  go run ./cmd/stockapi [command]

Examples:
  go run ./cmd/stockapi serve
  go run ./cmd/stockapi probe
  go run ./cmd/stockapi quote VNM --source TCBS
  go run ./cmd/stockapi export history VNM --from 2024-01-01 --format parquet --out vnm.parquet`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
