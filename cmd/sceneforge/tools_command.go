package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneforge/internal/toolkit"
)

func newToolsCommand(ctx *commandContext, engineFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Report external tool availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			engine, err := toolkit.ParseEngine(*engineFlag)
			if err != nil {
				return err
			}

			statuses := toolkit.Check(cfg, engine)
			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				location := status.Path
				if !status.Available {
					location = status.Detail
					missing++
				}
				rows = append(rows, []string{status.Name, yesNo(status.Available), location})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "Found", "Location"},
				rows,
				nil,
			))
			if missing > 0 {
				return fmt.Errorf("%d required tool(s) missing", missing)
			}
			return nil
		},
	}
}
