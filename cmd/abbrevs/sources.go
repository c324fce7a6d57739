package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/abbrev-registry/pkg/importer"
)

// openSources opens the source table and seeds it with every known adapter.
func (a *app) openSources() (*importer.SourceDB, error) {
	if err := ensureParent(a.cfg.sourcesPath()); err != nil {
		return nil, err
	}
	sdb, err := importer.OpenSourceDB(a.cfg.sourcesPath())
	if err != nil {
		return nil, err
	}
	if err := sdb.Seed(importer.All()); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("seed sources: %w", err)
	}
	return sdb, nil
}

func (a *app) sourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage import source URLs",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List import sources with their last check and import",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				sdb, err := a.openSources()
				if err != nil {
					return err
				}
				defer sdb.Close()

				sources, err := sdb.ListSources()
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tLIST\tSTATUS\tIMPORTED\tURL")
				for _, s := range sources {
					status := "-"
					if s.LastStatus != nil {
						status = fmt.Sprint(*s.LastStatus)
					}
					imported := "-"
					if s.LastImport != nil {
						imported = time.Unix(*s.LastImport, 0).UTC().Format(time.DateOnly)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.AdapterID, s.DictID, status, imported, s.SourceURL)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "set-url SOURCE URL",
			Short: "Override the download URL of a source",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				sdb, err := a.openSources()
				if err != nil {
					return err
				}
				defer sdb.Close()
				return sdb.SetURL(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "HEAD-check every source URL once",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				sdb, err := a.openSources()
				if err != nil {
					return err
				}
				defer sdb.Close()

				var failed int
				for _, r := range importer.NewChecker(sdb, a.logger, 0).CheckAll(cmd.Context()) {
					state := "ok"
					if !r.OK() {
						state = "FAIL"
						failed++
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-4s %d %s\n", r.AdapterID, state, r.Status, r.URL)
				}
				if failed > 0 {
					return fmt.Errorf("%d sources unreachable", failed)
				}
				return nil
			},
		},
	)
	return cmd
}
