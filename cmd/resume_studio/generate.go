package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/canonical"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		description string
		save        bool
		title       string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft a resume from a free-text description",
		Long: `Ask the resume service to draft a resume, print the canonical document and
charge one resume_build credit. Use --description - to read the description from stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if description == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read description: %w", err)
				}
				description = string(data)
			}
			description = strings.TrimSpace(description)
			if description == "" {
				return errors.New("--description is required")
			}

			ctx, err := a.authContext(cmd.Context())
			if err != nil {
				return err
			}

			svc := a.studio()
			doc, err := svc.Generate(ctx, description)
			if err != nil {
				return fmt.Errorf("failed to generate resume: %w", err)
			}

			if save {
				id, err := svc.Save(ctx, "", title, doc)
				if err != nil {
					return fmt.Errorf("failed to save resume: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved resume %s\n", id)
			}
			return a.printDocument(cmd, "", canonical.ResumeTitle(title, doc.PersonalInformation.FullName), doc)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Free-text description of the candidate, or - for stdin")
	cmd.Flags().BoolVar(&save, "save", false, "Store the generated resume")
	cmd.Flags().StringVar(&title, "title", "", "Title to save under (defaults to the candidate's name)")
	return cmd
}
