package perch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/perch/internal/dto"
)

// Runner drives a Renderer from a line-oriented command script using the
// provided IO. This allows for easy testing and integration with different
// frontends (CLI, test harnesses).
//
// Commands:
//
//	render <fixture-path>    render the tree described by a fixture file
//	flush                    flush both classes once
//	flush-animation          flush the animation class once
//	flush-deferred [budget]  flush the deferred class once
//	dump                     emit the tree report
//	children                 print the number of committed root children
//	quit | exit              stop the loop
type Runner struct {
	Input  io.Reader
	Output io.Writer
}

// NewRunner creates a Runner over the given IO.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{Input: in, Output: out}
}

// Run executes commands until the input is exhausted or a quit command is
// read. Unknown commands are reported and skipped.
func (r *Runner) Run(renderer *Renderer) error {
	if r.Input == nil || r.Output == nil {
		return fmt.Errorf("runner requires both input and output")
	}

	scanner := bufio.NewScanner(r.Input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "render":
			if len(args) != 1 {
				fmt.Fprintln(r.Output, "usage: render <fixture-path>")
				continue
			}
			el, err := dto.Load(args[0])
			if err != nil {
				fmt.Fprintf(r.Output, "error: %v\n", err)
				continue
			}
			renderer.Render(el)
			fmt.Fprintln(r.Output, "scheduled")
		case "flush":
			renderer.Flush()
			fmt.Fprintln(r.Output, "flushed")
		case "flush-animation":
			renderer.FlushAnimationPri()
			fmt.Fprintln(r.Output, "flushed animation")
		case "flush-deferred":
			if len(args) == 1 {
				budget, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					fmt.Fprintf(r.Output, "error: invalid budget %q\n", args[0])
					continue
				}
				renderer.FlushDeferredPri(budget)
			} else {
				renderer.FlushDeferredPri()
			}
			fmt.Fprintln(r.Output, "flushed deferred")
		case "dump":
			fmt.Fprint(r.Output, renderer.Report())
		case "children":
			fmt.Fprintf(r.Output, "%d\n", len(renderer.Children()))
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(r.Output, "unknown command: %s\n", cmd)
		}
	}
	return scanner.Err()
}
