// CLAUDE:SUMMARY abbrevs CLI: HTTP API server, MCP stdio server, one-shot resolution, list import and source management.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// app carries the state shared by every subcommand once the root
// PersistentPreRunE has run.
type app struct {
	cfgPath  string
	dictsDir string

	cfg    config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:     "abbrevs",
		Short:   "Bibliographic abbreviation registry",
		Version: version,
		Long: `abbrevs resolves bibliographic fields (journal titles, courts, places,
institutions) to their abbreviated form from on-disk abbreviation lists.

Lists live under dicts_dir, one directory per list with a manifest.yaml.
Use "abbrevs import" to build lists from public sources.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "config.yaml", "path to config file")
	root.PersistentFlags().StringVar(&a.dictsDir, "dicts-dir", "", "abbreviation lists directory (overrides dicts_dir)")

	root.AddCommand(
		a.serveCmd(),
		a.mcpCmd(),
		a.resolveCmd(),
		a.importCmd(),
		a.sourcesCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, found, err := loadConfig(a.cfgPath)
	if err != nil {
		return err
	}
	if a.dictsDir != "" {
		cfg.DictsDir = a.dictsDir
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	slog.SetDefault(a.logger)
	if !found {
		a.logger.Debug("no config file, using defaults", "path", a.cfgPath)
	}
	return nil
}
