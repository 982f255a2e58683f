package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	var withOCR bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "simaja-mcp %s\n", Version)
			fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
			if !withOCR {
				return nil
			}

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			engine := newEngine(cfg, logger(cmd, cfg))
			info := engine.Info()

			fmt.Fprintf(w, "  Tesseract:  %s\n", info.Version)
			fmt.Fprintf(w, "  Languages:  %s\n", strings.Join(info.Languages, "+"))
			fmt.Fprintf(w, "  Installed:  %s\n", strings.Join(info.AvailableLanguages, ", "))
			if len(info.MissingLanguages) > 0 {
				fmt.Fprintf(w, "  Missing:    %s\n", strings.Join(info.MissingLanguages, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withOCR, "ocr", false, "Also report the Tesseract installation")
	return cmd
}
