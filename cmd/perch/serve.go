package main

import (
	"io"
	"net/http"

	"github.com/aretw0/perch"
	debughttp "github.com/aretw0/perch/internal/adapters/http"
	"github.com/aretw0/perch/internal/dto"
	"github.com/aretw0/perch/internal/logging"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <fixture>",
	Short: "Render a fixture and serve the debug introspection API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		addr, _ := cmd.Flags().GetString("addr")

		logger := logging.New(logging.ParseLevel(level))
		el, err := dto.Load(args[0])
		if err != nil {
			return err
		}

		r := perch.New(
			perch.WithLogger(logger),
			perch.WithOutput(io.Discard),
		)
		r.Render(el)

		logger.Info("serving debug API", "addr", addr)
		logger.Info("routes", "tree", "GET /tree", "children", "GET /children", "flush", "POST /flush")
		return http.ListenAndServe(addr, debughttp.NewHandler(r))
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8431", "Listen address for the debug API")
	rootCmd.AddCommand(serveCmd)
}
