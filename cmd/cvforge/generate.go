package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careerkit/cvforge/internal/config"
	"github.com/careerkit/cvforge/internal/joboffer"
	"github.com/careerkit/cvforge/internal/llm"
	"github.com/careerkit/cvforge/internal/logger"
	"github.com/careerkit/cvforge/internal/pipeline"
	"github.com/careerkit/cvforge/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored CV from a profile and a job posting",
	Long: `Generate runs the full pipeline once and writes the resulting CV document as JSON.

Content comes from a widget envelope: either a pre-built one (--envelope), or one
produced by the LLM from the profile and job context. Without an envelope and
without an API key, the CV is built directly from the profile.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runGenerate,
}

var (
	genConfigPath string
	genProfile    string
	genEnvelope   string
	genJobURL     string
	genJobContext string
	genTemplate   string
	genMinScore   int
	genMaxExp     int
	genMaxBullets int
	genAPIKey     string
	genUseBrowser bool
	genOutput     string
	genVerbose    bool
)

func init() {
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	generateCmd.Flags().StringVarP(&genProfile, "profile", "p", "", "Path to profile JSON file")
	generateCmd.Flags().StringVarP(&genEnvelope, "envelope", "e", "", "Path to a pre-built widget envelope JSON file")
	generateCmd.Flags().StringVar(&genJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job-context)")
	generateCmd.Flags().StringVar(&genJobContext, "job-context", "", "Path to a job context JSON file")
	generateCmd.Flags().StringVarP(&genTemplate, "template", "t", "", "Layout template name (classique, moderne, compact)")
	generateCmd.Flags().IntVar(&genMinScore, "min-score", 0, "Minimum widget relevance score")
	generateCmd.Flags().IntVar(&genMaxExp, "max-experiences", 0, "Maximum experiences kept (0 uses seniority rules)")
	generateCmd.Flags().IntVar(&genMaxBullets, "max-bullets", 0, "Maximum bullets per experience (0 uses seniority rules)")
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	generateCmd.Flags().BoolVar(&genUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file (defaults to stdout)")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if genConfigPath != "" {
		loaded, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	cfg = applyGenerateFlags(cmd, cfg)
	if cfg.Profile == "" {
		return fmt.Errorf("--profile is required")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var profile types.RAGProfile
	if err := readJSONFile(cfg.Profile, &profile); err != nil {
		return err
	}

	job, err := loadJobContext(ctx, cfg)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Template:                cfg.Template,
		MinScore:                cfg.MinScore,
		MaxExperiences:          cfg.MaxExperiences,
		MaxBulletsPerExperience: cfg.MaxBulletsPerExperience,
	}

	result, err := generateResult(ctx, cfg, &profile, job, opts, log)
	if err != nil {
		return err
	}

	log.Info("generation complete",
		zap.Int("level", result.Level),
		zap.Bool("fits", result.Fits),
		zap.Float64("usage_percent", result.Stats.UsagePercent),
	)

	return writeOutput(cfg, result)
}

// applyGenerateFlags overrides config file values with explicitly set flags
func applyGenerateFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	if cmd.Flags().Changed("profile") {
		cfg.Profile = genProfile
	}
	if cmd.Flags().Changed("envelope") {
		cfg.Envelope = genEnvelope
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = genJobURL
	}
	if cmd.Flags().Changed("job-context") {
		cfg.JobContext = genJobContext
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = genTemplate
	}
	if cmd.Flags().Changed("min-score") {
		cfg.MinScore = genMinScore
	}
	if cmd.Flags().Changed("max-experiences") {
		cfg.MaxExperiences = genMaxExp
	}
	if cmd.Flags().Changed("max-bullets") {
		cfg.MaxBulletsPerExperience = genMaxBullets
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = genAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = genUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}
	return cfg
}

// loadJobContext resolves the job context from a file or by fetching the posting
func loadJobContext(ctx context.Context, cfg config.Config) (*types.JobContext, error) {
	if cfg.JobContext != "" {
		var job types.JobContext
		if err := readJSONFile(cfg.JobContext, &job); err != nil {
			return nil, err
		}
		return &job, nil
	}
	if cfg.JobURL != "" {
		return joboffer.FromURL(ctx, cfg.JobURL, &joboffer.FetchOptions{
			Timeout:    joboffer.DefaultTimeout,
			UseBrowser: cfg.UseBrowser,
		})
	}
	return nil, nil
}

// generateResult picks the generation path based on available inputs
func generateResult(ctx context.Context, cfg config.Config, profile *types.RAGProfile, job *types.JobContext, opts pipeline.Options, log *zap.Logger) (*pipeline.Result, error) {
	if cfg.Envelope != "" {
		data, err := os.ReadFile(cfg.Envelope)
		if err != nil {
			return nil, fmt.Errorf("failed to read envelope file: %w", err)
		}
		return pipeline.GenerateFromEnvelope(data, profile, job, opts, log)
	}

	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create llm client: %w", err)
		}
		defer func() { _ = client.Close() }()

		envelope, err := llm.GenerateEnvelope(ctx, client, profile, job)
		if err != nil {
			return nil, fmt.Errorf("envelope generation failed: %w", err)
		}
		return pipeline.Generate(envelope, profile, job, opts, log)
	}

	log.Info("no envelope and no API key, building CV directly from profile")
	return pipeline.GenerateFromProfile(profile, job, opts, log)
}

// writeOutput marshals the CV document to the output file or stdout
func writeOutput(cfg config.Config, result *pipeline.Result) error {
	data, err := json.MarshalIndent(result.CV, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cv: %w", err)
	}
	data = append(data, '\n')

	if genOutput != "" {
		if err := os.WriteFile(genOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

// readJSONFile reads and unmarshals a JSON file into v
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
