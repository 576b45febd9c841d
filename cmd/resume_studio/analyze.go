package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		jobDescription string
		jdFile         string
		resumePath     string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume file against a job description",
		Long:  "Upload a resume file with a job description to the analyzer, print the match score, missing keywords and summary, and charge one resume_analysis credit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jdFile != "" {
				if jobDescription != "" {
					return errors.New("cannot use --jd with --jd-file")
				}
				data, err := os.ReadFile(jdFile)
				if err != nil {
					return fmt.Errorf("failed to read job description: %w", err)
				}
				jobDescription = string(data)
			}
			if jobDescription == "" {
				return errors.New("--jd or --jd-file is required")
			}
			if resumePath == "" {
				return errors.New("--resume is required")
			}

			ctx, err := a.authContext(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Open(resumePath)
			if err != nil {
				return fmt.Errorf("failed to open resume: %w", err)
			}
			defer f.Close()

			result, err := a.studio().Analyze(ctx, jobDescription, filepath.Base(resumePath), f)
			if err != nil {
				return fmt.Errorf("failed to analyze resume: %w", err)
			}
			return a.printAnalysis(cmd, result)
		},
	}

	cmd.Flags().StringVar(&jobDescription, "jd", "", "Job description text")
	cmd.Flags().StringVar(&jdFile, "jd-file", "", "Path to a job description text file")
	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to the resume file (PDF or DOCX)")
	return cmd
}
