package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/perch"
	"github.com/aretw0/perch/internal/dto"
	"github.com/aretw0/perch/internal/logging"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <fixture>",
	Short: "Render a tree fixture and print the dump report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		noColor, _ := cmd.Flags().GetBool("no-color")

		el, err := dto.Load(args[0])
		if err != nil {
			return err
		}

		r := perch.New(
			perch.WithLogger(logging.New(logging.ParseLevel(level))),
			perch.WithOutput(io.Discard),
		)
		r.Render(el)
		r.Flush()

		report := r.Report()
		if noColor {
			fmt.Fprint(cmd.OutOrStdout(), report)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), colorizeReport(report))
		return nil
	},
}

// colorizeReport highlights section headers and markers; the report bytes
// themselves stay untouched so piped output remains diff-friendly.
func colorizeReport(report string) string {
	p := termenv.ColorProfile()
	var sb strings.Builder
	for _, line := range strings.SplitAfter(report, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "HOST INSTANCES:" || trimmed == "WORK TREE:":
			sb.WriteString(termenv.String(line).Foreground(p.Color("#818cf8")).Bold().String())
		case trimmed == "IN PROGRESS:" || trimmed == "CURRENT:":
			sb.WriteString(termenv.String(line).Foreground(p.Color("#fb7185")).String())
		case strings.Contains(line, "*pending*") || strings.HasPrefix(trimmed, "update "):
			sb.WriteString(termenv.String(line).Foreground(p.Color("#e879f9")).String())
		default:
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func init() {
	renderCmd.Flags().Bool("no-color", false, "Disable colorized output")
	rootCmd.AddCommand(renderCmd)
}
