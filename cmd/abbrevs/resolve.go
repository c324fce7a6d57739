package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
	"github.com/hazyhaar/abbrev-registry/pkg/dict"
)

func (a *app) resolveCmd() *cobra.Command {
	var (
		category     string
		jurisdiction string
		setsFile     string
		recorded     bool
	)
	cmd := &cobra.Command{
		Use:   "resolve KEY...",
		Short: "Abbreviate one or more fields",
		Long: `Resolves every KEY in a single run and prints one line per key: the
abbreviation, or the key unchanged when nothing applies.

With --sets the lists directory is ignored and the dictionary is built from a
YAML abbreviation-sets file.`,
		Example: `  abbrevs resolve --category container-title "Journal of Biology"
  abbrevs resolve --category place --jurisdiction us --sets sets.yaml "New York"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := abbrev.ParseCategory(category)
			if err != nil {
				return err
			}
			d, err := a.resolveDictionary(setsFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			run := abbrev.NewRun(d)
			for _, key := range args {
				v, ok := run.Resolve(c, jurisdiction, key)
				if !ok {
					v = key
				}
				fmt.Fprintln(out, v)
			}
			if recorded {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(run.Recorded())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(abbrev.ContainerTitle), "abbreviation category")
	cmd.Flags().StringVarP(&jurisdiction, "jurisdiction", "j", abbrev.DefaultJurisdiction, "jurisdiction")
	cmd.Flags().StringVar(&setsFile, "sets", "", "YAML abbreviation sets file to use instead of dicts_dir")
	cmd.Flags().BoolVar(&recorded, "recorded", false, "print the run's recorded results as JSON")
	return cmd
}

func (a *app) resolveDictionary(setsFile string) (*abbrev.Dictionary, error) {
	if setsFile == "" {
		reg, err := a.loadRegistry()
		if err != nil {
			return nil, err
		}
		return reg.Dictionary(), nil
	}
	sets, err := dict.LoadSets(setsFile)
	if err != nil {
		return nil, err
	}
	return dict.DictionaryFromSets(sets)
}
