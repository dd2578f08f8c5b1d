package main

import (
	"io"

	"github.com/aretw0/perch"
	"github.com/aretw0/perch/internal/logging"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Drive a renderer interactively with runner commands",
	Long: `Reads runner commands from stdin and executes them against a fresh
renderer:

  render <fixture-path>    render the tree described by a fixture file
  flush                    flush both classes once
  flush-animation          flush the animation class once
  flush-deferred [budget]  flush the deferred class once
  dump                     emit the tree report
  children                 print the number of committed root children
  quit | exit              stop`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		r := perch.New(
			perch.WithLogger(logging.New(logging.ParseLevel(level))),
			perch.WithOutput(io.Discard),
		)
		runner := perch.NewRunner(cmd.InOrStdin(), cmd.OutOrStdout())
		return runner.Run(r)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
