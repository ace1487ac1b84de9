package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/screener"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of screener",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("screener version %s\n", strings.TrimSpace(screener.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
