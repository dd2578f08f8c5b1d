package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/perch"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of perch",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("perch version %s\n", strings.TrimSpace(perch.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
