package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/cvanalysis"
	"github.com/spigell/cv-analyzer/internal/mcptool"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer as MCP tools over stdio",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() {
	ctx := context.Background()
	logger, config := setup()

	s := openStore(ctx, config, logger)
	defer s.Close()

	srv := mcptool.New(cvanalysis.NewAnalyzer(logger.Named("analyzer")), s, logger.Named("mcp"))
	if err := srv.ServeStdio(version); err != nil {
		logger.Fatal("mcp server stopped", zap.Error(err))
	}
}
