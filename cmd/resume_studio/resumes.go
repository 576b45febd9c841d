package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/types"
)

func newResumesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resumes",
		Short: "List, show and delete stored resumes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the caller's stored resumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := a.authContext(cmd.Context())
			if err != nil {
				return err
			}
			records, err := a.studio().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list resumes: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tTITLE\tUPDATED")
			for _, rec := range records {
				title := rec.Title
				if title == "" {
					title = types.UntitledResume
				}
				updated := "-"
				if rec.UpdatedAt != nil {
					updated = rec.UpdatedAt.Format("2006-01-02 15:04")
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.ID, title, updated)
			}
			return tw.Flush()
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored resume as a canonical document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authContext(cmd.Context())
			if err != nil {
				return err
			}
			title, doc, err := a.studio().Load(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load resume: %w", err)
			}
			return a.printDocument(cmd, args[0], title, doc)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authContext(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.studio().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete resume: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted resume %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, del)
	return cmd
}

func newCreditsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "credits",
		Short: "Show the caller's credit balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := a.authContext(cmd.Context())
			if err != nil {
				return err
			}
			credits, err := a.studio().Credits(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch credits: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\n", credits)
			return nil
		},
	}
}
