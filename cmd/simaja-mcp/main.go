// Package main provides the simaja-mcp command: an MCP server and CLI that
// reads Sims 4 Simology screenshots and keeps a family tree.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ironsheep/simaja-mcp/internal/config"
	"github.com/ironsheep/simaja-mcp/internal/family"
	"github.com/ironsheep/simaja-mcp/internal/imaging"
	"github.com/ironsheep/simaja-mcp/internal/ocr"
	"github.com/ironsheep/simaja-mcp/internal/vocab"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// rootOptions are the flags shared by every command. Set flags override the
// environment.
type rootOptions struct {
	logLevel       string
	logFormat      string
	languages      string
	tessdata       string
	databaseURL    string
	databasePath   string
	outputLanguage string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "simaja-mcp",
		Short: "Read Sims 4 screenshots and keep a family tree",
		Long: "simaja-mcp reads the Simology panel of Sims 4 screenshots with Tesseract, matches the text " +
			"against the game's traits, aspirations, careers, skills and life stages, and presents the result " +
			"in Swedish. Without a subcommand it serves the MCP protocol over stdin/stdout.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides SIMAJA_LOG_LEVEL)")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json (overrides SIMAJA_LOG_FORMAT)")
	pf.StringVar(&opts.languages, "lang", "", "Tesseract languages, e.g. eng+swe (overrides SIMAJA_OCR_LANGUAGES)")
	pf.StringVar(&opts.tessdata, "tessdata", "", "Directory with *.traineddata (overrides TESSDATA_PREFIX)")
	pf.StringVar(&opts.databaseURL, "db-url", "", "Postgres URL for the family tree (overrides SIMAJA_DATABASE_URL)")
	pf.StringVar(&opts.databasePath, "db-path", "", "SQLite file for the family tree when no Postgres URL is set (overrides SIMAJA_DATABASE_PATH)")
	pf.StringVar(&opts.outputLanguage, "output-language", "", "Label language: target (Swedish) or source (English)")

	cmd.AddCommand(
		newServeCmd(opts),
		newParseCmd(opts),
		newScanCmd(opts),
		newVocabCmd(),
		newVersionCmd(opts),
	)
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the flags set on cmd.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("lang") {
		cfg.OCRLanguages = o.languages
	}
	if flags.Changed("tessdata") {
		cfg.TessdataPrefix = o.tessdata
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = o.databaseURL
	}
	if flags.Changed("db-path") {
		cfg.DatabasePath = o.databasePath
	}
	if flags.Changed("output-language") {
		cfg.OutputLanguage = o.outputLanguage
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logger writes to stderr: stdout carries the MCP protocol or command
// output.
func logger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return cfg.Logger(cmd.ErrOrStderr())
}

func outputLanguage(cfg *config.Config) vocab.Language {
	lang, err := vocab.ParseLanguage(cfg.OutputLanguage)
	if err != nil {
		return vocab.Target
	}
	return lang
}

func preprocessOptions(cfg *config.Config) imaging.PreprocessOptions {
	opts := imaging.DefaultPreprocessOptions()
	opts.UpscaleWidth = cfg.UpscaleWidth
	return opts
}

func newEngine(cfg *config.Config, log *slog.Logger) *ocr.Engine {
	ocrCfg := ocr.DefaultConfig()
	ocrCfg.Languages = ocr.ParseLanguages(cfg.OCRLanguages)
	ocrCfg.TessdataPrefix = cfg.TessdataPrefix
	ocrCfg.Logger = log
	return ocr.NewEngine(ocrCfg)
}

// openTree returns the family tree and a function releasing its store. The
// tree lives in Postgres when a database URL is configured, in a SQLite file
// when a database path is, and in memory otherwise.
func openTree(ctx context.Context, cfg *config.Config, log *slog.Logger) (*family.Tree, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		store, pool, err := family.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("family tree stored in postgres")
		return family.NewTree(store, family.WithTreeLogger(log)), pool.Close, nil

	case cfg.DatabasePath != "":
		store, err := family.OpenSQLite(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("family tree stored in sqlite", "path", cfg.DatabasePath)
		closeStore := func() {
			if err := store.Close(); err != nil {
				log.Warn("failed to close family database", "error", err)
			}
		}
		return family.NewTree(store, family.WithTreeLogger(log)), closeStore, nil

	default:
		log.Debug("family tree kept in memory")
		return family.NewTree(family.NewMemoryStore(), family.WithTreeLogger(log)), func() {}, nil
	}
}

// persistent reports whether saved Sims outlive the process.
func persistent(cfg *config.Config) bool {
	return cfg.DatabaseURL != "" || cfg.DatabasePath != ""
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
