package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/simaja-mcp/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP protocol over stdin/stdout (default)",
		Long: "Serve the MCP protocol over stdin/stdout. Configure it in your MCP client " +
			"(e.g., Claude Desktop). Logs go to stderr.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tree, closeTree, err := openTree(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeTree()

	engine := newEngine(cfg, log)
	defer engine.Close()

	info := engine.Info()
	if !info.Available {
		log.Warn("tesseract is not fully available; screenshot tools will fail",
			"version", info.Version,
			"missing_languages", info.MissingLanguages)
	}

	log.Info("starting MCP server",
		"version", Version,
		"build_time", BuildTime,
		"commit", GitCommit,
		"languages", engine.Languages())

	srv := server.New(
		server.WithEngine(engine),
		server.WithTree(tree),
		server.WithLogger(log),
		server.WithVersion(Version),
		server.WithPreprocessOptions(preprocessOptions(cfg)),
		server.WithOutputLanguage(outputLanguage(cfg)),
	)
	if err := srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
