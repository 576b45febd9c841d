// Package main provides the entry point for the resume studio CLI and HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/analyzer"
	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/logger"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/studio"
	"github.com/jonathan/resume-studio/internal/types"
)

// tokenEnv holds the resume service token when --token is not given.
const tokenEnv = "RESUME_API_TOKEN"

// app carries state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	token      string
	output     string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "resume_studio",
		Short:         "Resume studio CLI and HTTP API server",
		Long:          "Resume studio drafts, normalizes, stores and scores resumes against job descriptions, backed by a remote resume service and analyzer.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a JSON or YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: json or pretty (overrides config)")
	flags.StringVar(&a.token, "token", "", "Resume service bearer token (overrides "+tokenEnv+")")
	flags.StringVar(&a.output, "output", "json", "Output format for results: json or text")

	root.AddCommand(
		newServeCmd(a),
		newCanonicalizeCmd(a),
		newExtractCmd(a),
		newGenerateCmd(a),
		newAnalyzeCmd(a),
		newResumesCmd(a),
		newCreditsCmd(a),
	)
	return root
}

// setup loads configuration and initializes logging.
func (a *app) setup(cmd *cobra.Command) error {
	if a.output != "json" && a.output != "text" {
		return fmt.Errorf("invalid --output %q: must be json or text", a.output)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}

	logger.InitWithWriter(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, cmd.ErrOrStderr())
	a.cfg = cfg
	return nil
}

func (a *app) backendClient() *backend.Client {
	return backend.New(a.cfg.BackendURL, backend.WithTimeout(a.cfg.BackendTimeout.Duration))
}

func (a *app) analyzerClient() *analyzer.Client {
	return analyzer.New(a.cfg.AnalyzerURL,
		analyzer.WithTimeout(a.cfg.AnalyzerTimeout.Duration),
		analyzer.WithRetryStep(a.cfg.AnalyzerRetryStep.Duration),
		analyzer.WithMaxAttempts(a.cfg.AnalyzerMaxAttempts),
		analyzer.WithCooldown(a.cfg.AnalyzerCooldown.Duration),
	)
}

func (a *app) studio() *studio.Service {
	return studio.New(a.backendClient(), a.analyzerClient())
}

// authContext returns ctx carrying the resume service token.
func (a *app) authContext(ctx context.Context) (context.Context, error) {
	token := a.token
	if token == "" {
		token = os.Getenv(tokenEnv)
	}
	if token == "" {
		return nil, fmt.Errorf("a resume service token is required (set %s or use --token)", tokenEnv)
	}
	return backend.WithToken(ctx, token), nil
}

// printAnalysis writes result in the selected output format.
func (a *app) printAnalysis(cmd *cobra.Command, result *types.AnalysisResult) error {
	if a.output == "text" {
		observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(result)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), result)
}

// printDocument writes a titled document in the selected output format.
// The JSON form carries the bare document unless id is set.
func (a *app) printDocument(cmd *cobra.Command, id, title string, doc types.Document) error {
	if a.output == "text" {
		observability.NewPrinter(cmd.OutOrStdout()).PrintDocument(title, doc)
		return nil
	}
	if id == "" {
		return writeJSON(cmd.OutOrStdout(), doc)
	}
	return writeJSON(cmd.OutOrStdout(), map[string]any{
		"id":      id,
		"title":   title,
		"content": doc,
	})
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
