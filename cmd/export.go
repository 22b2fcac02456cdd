package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/export"
	"github.com/spigell/cv-analyzer/internal/filtering"
	"github.com/spigell/cv-analyzer/internal/store"
)

const exportPageSize = 100

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored analyses to an XLSX workbook",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		exportHistory(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("out", "analyses.xlsx", "path of the workbook to write")
	addFilterFlags(exportCmd)
}

func exportHistory(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	s := openStore(ctx, config, logger)
	defer s.Close()

	records, err := listAll(ctx, s)
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

	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	data, err := export.WriteXLSX(records)
	if err != nil {
		logger.Fatal("building workbook", zap.Error(err))
	}

	out, _ := cmd.Flags().GetString("out")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		logger.Fatal("writing workbook", zap.Error(err))
	}

	logger.Info("analyses exported", zap.String("filename", out), zap.Int("count", len(records)))
}

// listAll pages through the whole history.
func listAll(ctx context.Context, s *store.Store) ([]*store.Record, error) {
	var all []*store.Record
	for offset := 0; ; offset += exportPageSize {
		page, err := s.List(ctx, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
	}
}
