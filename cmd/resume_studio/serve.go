package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port     int
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes resume canonicalization, analysis extraction and the resume service workflows.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Port
			}

			srv, err := server.New(server.Config{Port: port, ValidateOutput: validate}, a.studio())
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8081, "Port to listen on (overrides config)")
	cmd.Flags().BoolVar(&validate, "validate-output", false, "Check canonicalized documents against the resume schema and log mismatches")
	return cmd
}
