package cli

import (
	"log"

	"github.com/spf13/cobra"

	"storycraft/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		addr := a.cfg.ServerAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		srv := server.New(a.orchestrator, a.log)
		log.Printf("starting server on %s", addr)
		return srv.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config server_addr)")
}
