package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the salesreport version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("salesreport %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
