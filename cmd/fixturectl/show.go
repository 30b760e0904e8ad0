package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		output   string
		metadata bool
	)

	cmd := &cobra.Command{
		Use:   "show <file> [key]",
		Short: "Print a fixture file or one of its values",
		Long: `Print a fixture document, or the raw value stored under key, after
placeholder expansion.

Example:
  fixturectl show testdata/orders.yaml
  fixturectl show testdata/orders.yaml createOrder --var tenant=acme
  fixturectl show -o json --metadata testdata/orders.yaml version`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.loadFile(cmd, args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return write(cmd.OutOrStdout(), output, fs)
			}

			key := args[1]
			raw, ok := fs.Raw(key)
			if metadata {
				raw, ok = fs.RawMetadata(key)
			}
			if !ok {
				return fmt.Errorf("key %q not found in %s", key, args[0])
			}
			return write(cmd.OutOrStdout(), output, raw)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputYAML, "output format (yaml, json)")
	cmd.Flags().BoolVar(&metadata, "metadata", false, "look the key up in metadata")
	a.addVarFlags(cmd)
	return cmd
}
