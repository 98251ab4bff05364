package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sceneforge/internal/batch"
	"sceneforge/internal/history"
	"sceneforge/internal/logging"
	"sceneforge/internal/pipeline"
	"sceneforge/internal/toolkit"
)

// runBatch wires the resolved toolset, pipeline, and history store together
// and processes the positional video arguments in order.
func runBatch(cmd *cobra.Command, cmdCtx *commandContext, videos []string, engineName string, force bool) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	engine, err := toolkit.ParseEngine(engineName)
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	tools, err := toolkit.Resolve(cfg, engine)
	if err != nil {
		return err
	}

	var recorder batch.Recorder
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryPath())
		if err != nil {
			logger.Warn("run history unavailable", logging.Error(err))
		} else {
			defer store.Close()
			recorder = store
		}
	}

	pipe := pipeline.New(cfg, tools, nil, logger)
	controller := batch.New(cfg, pipe, recorder, logger)

	summary, err := controller.Run(cmd.Context(), videos, force)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
	if summary.AllFailed() {
		return fmt.Errorf("all %d videos failed", summary.Total)
	}
	return nil
}

func renderSummary(summary batch.Summary) string {
	rows := make([][]string, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		detail := ""
		if outcome.Status == pipeline.StatusFailed && outcome.Err != nil {
			detail = outcome.Err.Error()
		}
		rows = append(rows, []string{
			outcome.Stem,
			string(outcome.Status),
			formatDuration(outcome.Duration),
			detail,
		})
	}
	rendered := renderTable(
		[]string{"Scene", "Status", "Elapsed", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
	return fmt.Sprintf("%s\n%d completed, %d skipped, %d failed",
		rendered, summary.Completed, summary.Skipped, summary.Failed)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
