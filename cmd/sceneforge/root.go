package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var scenesDirFlag string
	var engineFlag string
	var forceFlag bool

	ctx := newCommandContext(&configFlag, &scenesDirFlag)

	rootCmd := &cobra.Command{
		Use:   "sceneforge [flags] VIDEO...",
		Short: "Turn videos into sparse 3D scene reconstructions",
		Long: `SceneForge extracts frames from each input video with ffmpeg and runs
them through colmap (or glomap) feature extraction, sequential matching,
and sparse mapping. Each video produces one scene directory under the
scenes root; scenes that already exist are skipped unless --force is set.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runBatch(cmd, ctx, args, engineFlag, forceFlag)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&scenesDirFlag, "scenes-dir", "", "Directory that receives per-video scene output")
	rootCmd.PersistentFlags().StringVarP(&engineFlag, "tool", "t", "", "Reconstruction engine: colmap or glomap (default glomap)")
	rootCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Re-process videos whose scene directory already exists")

	rootCmd.AddCommand(newToolsCommand(ctx, &engineFlag))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
