package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "salesreport",
	Short: "Validate, analyze and enrich sales transaction exports",
	Long: `salesreport runs the full sales analytics pipeline over a pipe-delimited
transaction export: business-rule validation, optional region/amount
filtering, descriptive and trend analytics, product-catalog enrichment, and a
consolidated report written alongside the cleaned and enriched data files.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI, exiting non-zero on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
