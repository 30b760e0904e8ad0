package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var suite string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog suites or the fixtures of a suite",
		Long: `Without --suite, list the suites in the catalog. With --suite, list its
fixtures in the order they were last saved.

Example:
  fixturectl list
  fixturectl list --suite checkout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openCatalog()
			if err != nil {
				return err
			}

			if suite == "" {
				suites, err := c.Store().Suites()
				if err != nil {
					return fmt.Errorf("list suites: %w", err)
				}
				for _, s := range suites {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				}
				return nil
			}

			infos, err := c.Store().List(suite)
			if err != nil {
				return fmt.Errorf("list %s: %w", suite, err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tREVISION\tSEQ\tSIZE\tSAVED")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
					info.Name, info.Revision, info.Sequence, info.Size,
					info.Timestamp.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&suite, "suite", "", "suite to list")
	return cmd
}
