package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-evaluator/internal/config"
	"github.com/jonathan/persona-evaluator/internal/llm"
	"github.com/jonathan/persona-evaluator/internal/logger"
	"github.com/jonathan/persona-evaluator/internal/pipeline"
)

var evaluateCommand = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the full candidate evaluation pipeline end-to-end",
	Long: `Orchestrates the entire evaluation process: persona loading -> keyword routing -> parallel persona evaluation -> weighted aggregation -> insight extraction -> report rendering.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runEvaluateCmd,
}

var (
	evalConfigPath  string
	evalResume      string
	evalJob         string
	evalKeywords    string
	evalPersonasDir string
	evalCandidateID string
	evalOutput      string
	evalModel       string
	evalTemperature float64
	evalConcurrency int
	evalTimeout     int
	evalAPIKey      string
	evalRenormalize bool
	evalJSONLogs    bool
	evalVerbose     bool
	evalDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	evaluateCommand.Flags().StringVar(&evalConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	evaluateCommand.Flags().StringVarP(&evalResume, "resume", "r", "", "Path to candidate resume text file")
	evaluateCommand.Flags().StringVarP(&evalJob, "job", "j", "", "Path to job posting text file")
	evaluateCommand.Flags().StringVarP(&evalKeywords, "keywords", "k", "", "Path to ranked keywords JSON file (optional)")
	evaluateCommand.Flags().StringVar(&evalPersonasDir, "personas-dir", "", "Directory with persona definition files (optional, built-in set used otherwise)")
	evaluateCommand.Flags().StringVar(&evalCandidateID, "candidate-id", "", "Candidate identifier recorded with the run")
	evaluateCommand.Flags().StringVarP(&evalOutput, "output", "o", "", "Path to write the markdown report (stdout if omitted)")
	evaluateCommand.Flags().StringVarP(&evalModel, "model", "m", llm.DefaultModel, "Gemini model name")
	evaluateCommand.Flags().Float64Var(&evalTemperature, "temperature", float64(llm.DefaultTemperature), "Sampling temperature (0.0-2.0)")
	evaluateCommand.Flags().IntVar(&evalConcurrency, "concurrency", 0, "Maximum parallel persona calls (0 uses the default)")
	evaluateCommand.Flags().IntVar(&evalTimeout, "timeout", 0, "Per-call timeout in seconds (0 uses the default)")
	evaluateCommand.Flags().BoolVar(&evalRenormalize, "renormalize-weights", false, "Rescale the composite by the surviving weight mass when personas fail")
	evaluateCommand.Flags().BoolVar(&evalJSONLogs, "json-logs", false, "Emit logs as JSON")
	evaluateCommand.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	evaluateCommand.Flags().StringVar(&evalAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	evaluateCommand.Flags().StringVar(&evalDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(evaluateCommand)
}

func runEvaluateCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if evalConfigPath != "" {
		loadedCfg, err := config.LoadConfig(evalConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if evalVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", evalConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = evalResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = evalJob
	}
	if cmd.Flags().Changed("keywords") {
		cfg.Keywords = evalKeywords
	}
	if cmd.Flags().Changed("personas-dir") {
		cfg.PersonasDir = evalPersonasDir
	}
	if cmd.Flags().Changed("candidate-id") {
		cfg.CandidateID = evalCandidateID
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = evalOutput
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = evalModel
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Temperature = evalTemperature
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = evalConcurrency
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = evalTimeout
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = evalAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = evalVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = evalDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Model:       llm.DefaultModel,
		Temperature: float64(llm.DefaultTemperature),
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job == "" {
		return fmt.Errorf("--job is required (via flag or config)")
	}

	// Step 5: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Database URL handling (optional; persistence is skipped without it)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	log, err := logger.New(evalJSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	result, err := pipeline.RunPipeline(ctx, pipeline.RunOptions{
		ResumePath:         cfg.Resume,
		JobPath:            cfg.Job,
		KeywordsPath:       cfg.Keywords,
		PersonasDir:        cfg.PersonasDir,
		CandidateID:        cfg.CandidateID,
		Model:              cfg.Model,
		Temperature:        float32(cfg.Temperature),
		Concurrency:        cfg.Concurrency,
		TimeoutSeconds:     cfg.TimeoutSeconds,
		APIKey:             cfg.APIKey,
		Verbose:            cfg.Verbose,
		DatabaseURL:        cfg.DatabaseURL,
		RenormalizeWeights: evalRenormalize,
		Logger:             log,
	})
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, []byte(result.Report), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s (status: %s)\n", cfg.Output, result.Status)
		return nil
	}

	fmt.Println(result.Report)
	return nil
}
