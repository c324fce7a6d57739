// CLAUDE:SUMMARY CLI subcommand that downloads public abbreviation lists and writes them as list directories.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/abbrev-registry/pkg/importer"
)

func (a *app) importCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "import [SOURCE...]",
		Short: "Import abbreviation lists from public sources",
		Long: `Downloads each SOURCE (an adapter ID, see "abbrevs sources list") and
writes data.gob + manifest.yaml into dicts_dir/<list>/. Send SIGHUP to a
running server to pick the new lists up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				args = args[:0]
				for _, ad := range importer.All() {
					args = append(args, ad.ID())
				}
			}
			if len(args) == 0 {
				return fmt.Errorf("no source given (use --all or one of the ids from \"abbrevs sources list\")")
			}

			sdb, err := a.openSources()
			if err != nil {
				return err
			}
			defer sdb.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Hour)
			defer cancel()

			out := cmd.OutOrStdout()
			var failed int
			for _, id := range args {
				fmt.Fprintf(out, "[%s] importing...\n", id)
				dir, err := importer.Run(ctx, sdb, id, a.cfg.DictsDir)
				if err != nil {
					failed++
					a.logger.Error("import failed", "source", id, "error", err)
					continue
				}
				if err := sdb.RecordImport(id); err != nil {
					a.logger.Warn("record import", "source", id, "error", err)
				}
				fmt.Fprintf(out, "[%s] OK -> %s\n", id, dir)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d imports failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "import every known source")
	return cmd
}
