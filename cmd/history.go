package cmd

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/filtering"
	"github.com/spigell/cv-analyzer/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect stored analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		historyList(cmd)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		historyShow(cmd, args[0])
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		historyDelete(args[0])
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd)

	historyListCmd.Flags().Int("limit", 10, "max analyses to return (capped at 100)")
	historyListCmd.Flags().Int("offset", 0, "analyses to skip")
	addFilterFlags(historyListCmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("expertise", "", "keep only analyses with this expertise category")
	cmd.Flags().Int("min-years", 0, "keep only analyses with at least this many experience years")
	cmd.Flags().String("skill", "", "keep only analyses listing this skill")
	cmd.Flags().StringSlice("disable-filter", nil, "filter steps to skip (expertise, min_experience, skill)")
}

// filterSteps builds the default filter chain with the steps named by --disable-filter turned off.
func filterSteps(cmd *cobra.Command) ([]filtering.Filter, error) {
	steps := filtering.Default()

	names, _ := cmd.Flags().GetStringSlice("disable-filter")
	for _, name := range names {
		if err := filtering.DisableByName(steps, strings.TrimSpace(name), "disabled by flag"); err != nil {
			return nil, err
		}
	}

	return steps, nil
}

func filterConfig(cmd *cobra.Command) *filtering.Config {
	expertise, _ := cmd.Flags().GetString("expertise")
	minYears, _ := cmd.Flags().GetInt("min-years")
	skill, _ := cmd.Flags().GetString("skill")

	return &filtering.Config{Expertise: expertise, MinYears: minYears, Skill: skill}
}

func historyList(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	s := openStore(ctx, config, logger)
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	records, err := s.List(ctx, limit, offset)
	if err != nil {
		logger.Fatal("listing analyses", zap.Error(err))
	}

	steps, err := filterSteps(cmd)
	if err != nil {
		logger.Fatal("configuring filters", zap.Error(err))
	}

	records, err = filtering.Run(ctx, filterConfig(cmd), filtering.Deps{Logger: logger}, steps, records)
	if err != nil {
		logger.Fatal("filtering analyses", zap.Error(err))
	}

	logger.Info("listing analyses", zap.Int("count", len(records)))

	if err := writeOutput(cmd.OutOrStdout(), config.Output, records); err != nil {
		logger.Fatal("printing analyses", zap.Error(err))
	}
}

func historyShow(cmd *cobra.Command, rawID string) {
	ctx := context.Background()
	logger, config := setup()

	id := parseID(logger, rawID)

	s := openStore(ctx, config, logger)
	defer s.Close()

	rec, err := s.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		logger.Fatal("analysis not found", zap.Int64("id", id))
	}
	if err != nil {
		logger.Fatal("reading analysis", zap.Error(err))
	}

	if err := writeOutput(cmd.OutOrStdout(), config.Output, rec); err != nil {
		logger.Fatal("printing analysis", zap.Error(err))
	}
}

func historyDelete(rawID string) {
	ctx := context.Background()
	logger, config := setup()

	id := parseID(logger, rawID)

	s := openStore(ctx, config, logger)
	defer s.Close()

	err := s.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		logger.Fatal("analysis not found", zap.Int64("id", id))
	}
	if err != nil {
		logger.Fatal("deleting analysis", zap.Error(err))
	}

	logger.Info("analysis deleted", zap.Int64("id", id))
}

func parseID(logger *zap.Logger, raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.Fatal("id must be a positive integer", zap.String("id", raw))
	}
	return id
}
