package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/simaja-mcp/internal/simdata"
)

type parseOutput struct {
	Data       *simdata.ParsedSimData `json:"data"`
	Validation simdata.Validation     `json:"validation"`
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse recognised text into Sim attributes",
		Long: "Parse text that was already recognised from a Simology panel, one panel line per line, " +
			"and print the matched attributes with a validation verdict as JSON.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			text, err := readInput(cmd, inputFile)
			if err != nil {
				return err
			}

			parser := simdata.NewParser(nil, simdata.WithOutputLanguage(outputLanguage(cfg)))
			parsed := parser.Parse(text)
			return writeJSON(cmd.OutOrStdout(), parseOutput{Data: parsed, Validation: simdata.Validate(parsed)})
		},
	}

	cmd.Flags().StringVarP(&inputFile, "in", "i", "-", "Path to text file, or - for stdin")
	return cmd
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
