package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/DeafMist/guestpost-report/internal/config"
	"github.com/DeafMist/guestpost-report/internal/logger"
	"github.com/DeafMist/guestpost-report/internal/pipeline"
	"github.com/DeafMist/guestpost-report/internal/sheet"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a guest post campaign sheet",
		Long: `report runs an uploaded campaign sheet (.xlsx, .xlsm or .csv) through the same
cleaning and reshaping as the web report and prints the result.

Examples:
  report pairs campaign.xlsx --keyword seo
  report summary campaign.xlsx --month 2024-03
  report compare campaign.xlsx --a 2024-03 --b 2024-04
  report months campaign.csv --json`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("json", false, "Print JSON instead of a table")

	cmd.AddCommand(pairsCommand())
	cmd.AddCommand(summaryCommand())
	cmd.AddCommand(compareCommand())
	cmd.AddCommand(monthsCommand())

	return cmd
}

// loadDataset reads the sheet at path and runs it through a pipeline configured from the environment.
func loadDataset(cmd *cobra.Command, path string) (*pipeline.Dataset, error) {
	log := logger.NewWriter(cmd.ErrOrStderr(), "report", os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg, err := config.LoadReport()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	pipe, err := pipeline.New(cfg.PipelineOptions())
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := sheet.Load(f, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	ds, err := pipe.Run(raw)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", path, err)
	}

	log.Debug("sheet loaded",
		slog.String("file", path),
		slog.Int("rows", len(ds.Table.Rows)),
		slog.Int("pairs", len(ds.Pairs)),
	)
	return ds, nil
}
