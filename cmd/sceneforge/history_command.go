package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sceneforge/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent per-video outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("run history is disabled in configuration")
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs yet")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				detail := entry.ErrorMessage
				if detail == "" && entry.FailedStage != "" {
					detail = entry.FailedStage
				}
				rows = append(rows, []string{
					entry.StartedAt.Local().Format("2006-01-02 15:04:05"),
					entry.Stem,
					entry.Status,
					formatDuration(entry.Duration()),
					detail,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Started", "Scene", "Status", "Elapsed", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to display")
	return cmd
}
