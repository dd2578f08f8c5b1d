package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "perch",
	Short: "Perch is a deterministic host-tree harness for reconciler testing",
	Long: `Perch applies the mutation instructions a tree reconciler emits to an
in-memory host tree, driven entirely by explicit flush calls, and dumps the
committed tree and the reconciler's work tree for inspection.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
