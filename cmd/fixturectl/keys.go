package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeysCmd(a *app) *cobra.Command {
	var metadata bool

	cmd := &cobra.Command{
		Use:   "keys <file>",
		Short: "List the data keys of a fixture file",
		Long: `List the keys of a fixture file's data mapping in document order.
With --metadata, list the metadata keys instead.

Example:
  fixturectl keys testdata/orders.yaml
  fixturectl keys --metadata testdata/orders.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.loadFile(cmd, args[0])
			if err != nil {
				return err
			}
			keys := fs.Keys()
			if metadata {
				keys = fs.MetadataKeys()
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&metadata, "metadata", false, "list metadata keys")
	a.addVarFlags(cmd)
	return cmd
}
