package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var formatFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &formatFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "mmprep",
		Short:         "Prepare text corpora for BLEU scoring",
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
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "Output format: auto, json or table (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(newTokenizeCommand(ctx))
	rootCmd.AddCommand(newRefsCommand(ctx))
	rootCmd.AddCommand(newBLEUCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// shouldSkipConfig reports whether cmd or one of its parents opted out of
// loading the configuration file.
func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
