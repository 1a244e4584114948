package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian/salesreport/internal/analytics"
	"github.com/meridian/salesreport/internal/config"
	"github.com/meridian/salesreport/internal/domain"
	"github.com/meridian/salesreport/internal/enrichment"
	"github.com/meridian/salesreport/internal/filter"
	"github.com/meridian/salesreport/internal/ingestion"
	"github.com/meridian/salesreport/internal/logger"
	"github.com/meridian/salesreport/internal/pipeline"
	"github.com/meridian/salesreport/internal/report"
	"github.com/meridian/salesreport/internal/validation"
)

var (
	inputPath   string
	outDir      string
	region      string
	minAmount   float64
	maxAmount   float64
	interactive bool
	noFetch     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline over a sales export and write the report artifacts",
	RunE:  runPipeline,
}

func init() {
	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the pipe-delimited sales export (required)")
	runCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "output directory (default from config)")
	runCmd.Flags().StringVar(&region, "region", "", "only include this region")
	runCmd.Flags().Float64Var(&minAmount, "min-amount", 0, "only include transactions with amount >= this")
	runCmd.Flags().Float64Var(&maxAmount, "max-amount", 0, "only include transactions with amount <= this")
	runCmd.Flags().BoolVar(&interactive, "interactive", false, "prompt for filter criteria instead of using flags")
	runCmd.Flags().BoolVar(&noFetch, "no-fetch", false, "skip the catalog fetch (all records unmatched)")
	runCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	log := logger.New(verbose)

	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = cfg.Output.Dir
	}

	records, err := ingestion.ReadFile(inputPath)
	if err != nil {
		return err
	}
	log.Info().Int("records", len(records)).Str("input", inputPath).Msg("sales export read")

	criteria, err := collectCriteria(cmd, records)
	if err != nil {
		return err
	}

	var fetcher pipeline.ProductFetcher
	if !noFetch {
		fetcher = enrichment.NewClient(cfg.Catalog.BaseURL, cfg.CatalogTimeout(), logger.Component(log, "catalog"))
	}

	engine := analytics.NewWithOptions(cfg.Report.TopProducts, cfg.Report.LowQuantityThreshold)
	svc := pipeline.NewService(validation.New(), engine, fetcher, logger.Component(log, "pipeline"))

	rpt, err := svc.Run(cmd.Context(), records, criteria)
	if err != nil {
		return err
	}

	paths, err := report.SaveAll(outDir, rpt)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s complete: %d processed, %d accepted, %d rejected\n",
		rpt.RunID, rpt.RecordsProcessed, rpt.Validation.Accepted, rpt.Validation.Rejected)
	fmt.Printf("Enrichment: %d matched, %d unmatched, %d conflicting\n",
		rpt.Enrichment.Matched, rpt.Enrichment.Unmatched, rpt.Enrichment.Conflicting)
	for _, p := range paths {
		fmt.Printf("Wrote %s\n", p)
	}
	return nil
}

// collectCriteria builds filter criteria from flags, or interactively after
// a pre-validation pass so the prompt can show what there is to filter on.
func collectCriteria(cmd *cobra.Command, records []domain.RawRecord) (domain.FilterCriteria, error) {
	if interactive {
		preview := validation.New().Validate(records)
		return filter.Prompt(os.Stdin, os.Stdout, preview.Accepted)
	}

	criteria := domain.FilterCriteria{Region: region}
	if cmd.Flags().Changed("min-amount") {
		v := minAmount
		criteria.MinAmount = &v
	}
	if cmd.Flags().Changed("max-amount") {
		v := maxAmount
		criteria.MaxAmount = &v
	}
	return criteria, nil
}
