package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/ai/gemini"
	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/secrets"
	"github.com/spigell/cv-analyzer/internal/store"
)

var matchCmd = &cobra.Command{
	Use:   "match <id>",
	Short: "Score a stored analysis against a job description with an AI provider",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("job", "", "file with the job description, - for stdin")
	matchCmd.Flags().String("title", "", "job title")
	matchCmd.Flags().String("company", "", "company name")
	matchCmd.MarkFlagRequired("job")
}

func match(cmd *cobra.Command, rawID string) {
	ctx := context.Background()
	log, config := setup()

	if !config.AI.Enabled {
		log.Fatal("ai is disabled", zap.String("hint", "set ai.enabled to true in the configuration file"))
	}

	id := parseID(log, rawID)

	jobFile, _ := cmd.Flags().GetString("job")
	description, err := readSource(jobFile, cmd.InOrStdin())
	if err != nil {
		log.Fatal("reading job description", zap.Error(err))
	}

	title, _ := cmd.Flags().GetString("title")
	company, _ := cmd.Flags().GetString("company")
	job := &ai.Job{
		Title:       strings.TrimSpace(title),
		Company:     strings.TrimSpace(company),
		Description: strings.TrimSpace(string(description)),
	}

	s := openStore(ctx, config, log)
	defer s.Close()

	rec, err := s.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		log.Fatal("analysis not found", zap.Int64("id", id))
	}
	if err != nil {
		log.Fatal("reading analysis", zap.Error(err))
	}

	matcher, err := newAIMatcher(ctx, config.AI, log)
	if err != nil {
		log.Fatal("building ai matcher", zap.Error(err))
	}

	assessment, err := matcher.Evaluate(ctx, rec.Profile(), job)
	if err != nil {
		log.Fatal("matching analysis", zap.Error(err))
	}

	log.Info("analysis matched",
		zap.Int64("id", id),
		zap.Int("score", assessment.Score),
		zap.Bool("fit", assessment.Fit),
	)

	if err := writeOutput(cmd.OutOrStdout(), config.Output, assessment); err != nil {
		log.Fatal("printing assessment", zap.Error(err))
	}
}

func newAIMatcher(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Matcher, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithFields(log, logger.AIFields("gemini", cfg.Gemini.Model)...).With(
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	minScore := max(cfg.MinimumMatchScore, 0)

	matcherLogger := logger.WithFields(log, logger.AIFields("gemini", generator.Model())...).With(
		zap.Int("minimum_match_score", minScore),
	)

	return gemini.NewMatcher(generator, matcherLogger, minScore, cfg.Gemini.MaxLogLength)
}
