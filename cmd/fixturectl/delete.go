package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	var suite, name string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a fixture or a whole suite from the catalog",
		Long: `Remove --suite/--name from the catalog, or every fixture of --suite when
--name is omitted. Removing something that does not exist is not an error.

Example:
  fixturectl delete --suite checkout --name orders
  fixturectl delete --suite checkout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openCatalog()
			if err != nil {
				return err
			}
			if name == "" {
				if err := c.Store().DeleteSuite(suite); err != nil {
					return fmt.Errorf("delete suite %s: %w", suite, err)
				}
				return nil
			}
			if err := c.Remove(cmd.Context(), suite, name); err != nil {
				return fmt.Errorf("delete %s/%s: %w", suite, name, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&suite, "suite", "", "catalog suite (required)")
	cmd.Flags().StringVar(&name, "name", "", "fixture name (default: whole suite)")
	_ = cmd.MarkFlagRequired("suite")
	return cmd
}
