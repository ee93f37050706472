package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glmack/multilingual-machines/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:         "sample",
		Short:       "Print an annotated sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.SampleConfig())
			return err
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report whether it is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// PersistentPreRunE already loaded and validated the file.
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "configuration OK")
			return err
		},
	})

	return configCmd
}
