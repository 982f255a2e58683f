package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/simaja-mcp/internal/family"
	"github.com/ironsheep/simaja-mcp/internal/simdata"
)

type scanFlags struct {
	region       string
	noPreprocess bool
	save         bool
	houseID      string
	concurrency  int
}

type scanOutput struct {
	Path       string                 `json:"path"`
	Data       *simdata.ParsedSimData `json:"data,omitempty"`
	Validation *simdata.Validation    `json:"validation,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Sim        *family.Sim            `json:"sim,omitempty"`
}

func newScanCmd(opts *rootOptions) *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan <image>...",
		Short: "Read Sim attributes from screenshots",
		Long: "Read the Simology panel of one or more Sims 4 screenshots and print the matched " +
			"attributes as a JSON array, in argument order. With --save, valid results are " +
			"stored as Sims in the given house.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.region, "region", simdata.RegionAuto, "Part of the screenshot to read: auto, full, top-left, right-half, ...")
	f.BoolVar(&flags.noPreprocess, "no-preprocess", false, "Send the screenshot to OCR without upscaling or inverting (overrides SIMAJA_PREPROCESS)")
	f.BoolVar(&flags.save, "save", false, "Store valid results as Sims (requires --house)")
	f.StringVar(&flags.houseID, "house", "", "House ID to store Sims in")
	f.IntVar(&flags.concurrency, "concurrency", 0, "Screenshots read in parallel (default SIMAJA_BATCH_CONCURRENCY)")
	return cmd
}

func runScan(cmd *cobra.Command, opts *rootOptions, flags *scanFlags, paths []string) error {
	if flags.save && flags.houseID == "" {
		return fmt.Errorf("--save requires --house")
	}

	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger(cmd, cfg)
	ctx := cmd.Context()

	var tree *family.Tree
	if flags.save {
		var closeTree func()
		if tree, closeTree, err = openTree(ctx, cfg, log); err != nil {
			return err
		}
		defer closeTree()
		if !persistent(cfg) {
			log.Warn("no database configured; saved Sims are lost when the command exits")
		}
		if _, err := tree.House(ctx, flags.houseID); err != nil {
			return fmt.Errorf("house %s: %w", flags.houseID, err)
		}
	}

	engine := newEngine(cfg, log)
	defer engine.Close()

	procOpts := []simdata.ProcessorOption{
		simdata.WithRegion(flags.region),
		simdata.WithParser(simdata.NewParser(nil, simdata.WithOutputLanguage(outputLanguage(cfg)))),
		simdata.WithLogger(log),
	}
	if flags.noPreprocess || !cfg.Preprocess {
		procOpts = append(procOpts, simdata.WithoutPreprocessing())
	} else {
		procOpts = append(procOpts, simdata.WithPreprocessOptions(preprocessOptions(cfg)))
	}

	concurrency := flags.concurrency
	if concurrency <= 0 {
		concurrency = cfg.BatchConcurrency
	}

	results := simdata.NewProcessor(engine, procOpts...).ProcessBatch(ctx, paths, concurrency)

	out := make([]scanOutput, len(results))
	failed := 0
	for i, res := range results {
		out[i] = scanOutput{Path: res.Path}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
			failed++
			continue
		}
		validation := res.Validation
		out[i].Data = res.Data
		out[i].Validation = &validation

		if tree == nil || !validation.Valid {
			continue
		}
		sim, err := tree.AddSim(ctx, family.SimFromParsed(res.Data, flags.houseID))
		if err != nil {
			log.Warn("sim not saved", "path", res.Path, "error", err)
			out[i].Error = err.Error()
			continue
		}
		out[i].Sim = sim
	}

	if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d screenshots could not be read", failed, len(paths))
	}
	return nil
}
