package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/analysis"
)

func newExtractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file]",
		Short: "Normalize a saved analyzer response into an analysis result",
		Long:  "Read an analyzer response body (any supported shape, optionally fenced) from a file or stdin and print the normalized analysis result.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read analyzer response: %w", err)
			}

			result, err := analysis.Extract(data)
			if err != nil {
				return err
			}
			return a.printAnalysis(cmd, result)
		},
	}
}
