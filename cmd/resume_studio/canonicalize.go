package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-studio/internal/canonical"
	"github.com/jonathan/resume-studio/internal/logger"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

func newCanonicalizeCmd(_ *app) *cobra.Command {
	var (
		outDir   string
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "canonicalize [file...]",
		Short: "Normalize resume JSON into the canonical document shape",
		Long: `Read resume JSON in any of the accepted shapes and print the canonical document.
With no files, stdin is read. With --out, each input file is written to <out>/<name>.json
instead of being printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				doc, err := canonicalizeBytes(data, validate)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), doc)
			}

			docs, err := canonicalizeFiles(args, validate)
			if err != nil {
				return err
			}

			if outDir == "" {
				for _, doc := range docs {
					if err := writeJSON(cmd.OutOrStdout(), doc); err != nil {
						return err
					}
				}
				return nil
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			for i, path := range args {
				target := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".json")
				data, err := json.MarshalIndent(docs[i], "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				if err := os.WriteFile(target, data, 0o644); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write canonical documents to")
	cmd.Flags().BoolVar(&validate, "validate", false, "Fail if a canonical document does not match the resume schema")
	return cmd
}

// canonicalizeFiles processes files concurrently; results keep argument order.
func canonicalizeFiles(paths []string, validate bool) ([]types.Document, error) {
	docs := make([]types.Document, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			doc, err := canonicalizeBytes(data, validate)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			docs[i] = doc
			logger.Debug().Str("file", path).Int("experience", len(doc.Experience)).Msg("canonicalized")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func canonicalizeBytes(data []byte, validate bool) (types.Document, error) {
	doc := canonical.Canonicalize(string(data))
	if validate {
		if err := schemas.ValidateDocument(doc); err != nil {
			return types.Document{}, fmt.Errorf("canonical document does not validate against schema: %w", err)
		}
	}
	return doc, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
