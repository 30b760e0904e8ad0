package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var suite, name string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a fixture file in the catalog",
		Long: `Load a fixture file, expand its placeholders and store it in the catalog
under --suite. The name defaults to the file name without its extension.
Importing an existing name replaces it with a new revision.

Example:
  fixturectl import testdata/orders.yaml --suite checkout
  fixturectl import testdata/orders.yaml --suite checkout --name orders-eu --var region=eu`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			fs, err := a.loadFile(cmd, args[0])
			if err != nil {
				return err
			}
			c, err := a.openCatalog()
			if err != nil {
				return err
			}
			info, err := c.Put(cmd.Context(), suite, name, fs)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s %s\n", info.Suite, info.Name, info.Revision)
			return nil
		},
	}
	cmd.Flags().StringVar(&suite, "suite", "", "catalog suite (required)")
	cmd.Flags().StringVar(&name, "name", "", "fixture name (default: file name)")
	_ = cmd.MarkFlagRequired("suite")
	a.addVarFlags(cmd)
	return cmd
}
