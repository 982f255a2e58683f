package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/simaja-mcp/internal/vocab"
)

func newVocabCmd() *cobra.Command {
	var duplicates bool

	cmd := &cobra.Command{
		Use:       "vocab <table>",
		Short:     "List the Swedish labels of a vocabulary table",
		Long:      "List the labels of a vocabulary table (" + strings.Join(vocab.TableNames(), ", ") + ") in Swedish order.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: vocab.TableNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := vocab.Default()
			w := cmd.OutOrStdout()
			name := strings.ToLower(args[0])

			if duplicates {
				t, err := v.Table(name)
				if err != nil {
					return err
				}
				for _, d := range t.Duplicates() {
					fmt.Fprintln(w, d)
				}
				return nil
			}

			if name == vocab.TableAspirations {
				for _, g := range v.AspirationOptions() {
					fmt.Fprintf(w, "%s:\n", g.Name)
					for _, l := range g.Labels {
						fmt.Fprintf(w, "  %s\n", l)
					}
				}
				return nil
			}

			labels, err := v.Options(name)
			if err != nil {
				return err
			}
			for _, l := range labels {
				fmt.Fprintln(w, l)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&duplicates, "duplicates", false, "List English labels that occur more than once instead")
	return cmd
}
