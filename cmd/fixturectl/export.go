package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var suite, name, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print a fixture stored in the catalog",
		Long: `Print the fixture stored as --suite/--name. The output can be loaded
again with any fixture loader.

Example:
  fixturectl export --suite checkout --name orders > orders.json
  fixturectl export --suite checkout --name orders -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openCatalog()
			if err != nil {
				return err
			}
			fs, err := c.Get(cmd.Context(), suite, name)
			if err != nil {
				return fmt.Errorf("export %s/%s: %w", suite, name, err)
			}
			return write(cmd.OutOrStdout(), output, fs)
		},
	}
	cmd.Flags().StringVar(&suite, "suite", "", "catalog suite (required)")
	cmd.Flags().StringVar(&name, "name", "", "fixture name (required)")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format (json, yaml)")
	_ = cmd.MarkFlagRequired("suite")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
