package main

import (
	"net/http"
	"os"

	"github.com/meridian/salesreport/internal/analytics"
	"github.com/meridian/salesreport/internal/api"
	"github.com/meridian/salesreport/internal/config"
	"github.com/meridian/salesreport/internal/enrichment"
	"github.com/meridian/salesreport/internal/logger"
	"github.com/meridian/salesreport/internal/pipeline"
	"github.com/meridian/salesreport/internal/repository"
	"github.com/meridian/salesreport/internal/validation"
)

func main() {
	log := logger.New(os.Getenv("VERBOSE") != "")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	// The run store lives in memory: a restart starts from a clean slate.
	dsn := os.Getenv("DB_PATH")
	db, err := repository.InitDB(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("init run store")
	}
	defer db.Close()

	runRepo := repository.NewRunRepo(db)
	txnRepo := repository.NewTransactionRepo(db)
	rejRepo := repository.NewRejectionRepo(db)
	enrRepo := repository.NewEnrichedRepo(db)

	catalog := enrichment.NewClient(cfg.Catalog.BaseURL, cfg.CatalogTimeout(), logger.Component(log, "catalog"))
	engine := analytics.NewWithOptions(cfg.Report.TopProducts, cfg.Report.LowQuantityThreshold)
	pipelineSvc := pipeline.NewService(validation.New(), engine, catalog, logger.Component(log, "pipeline"))

	router := api.NewRouter(pipelineSvc, runRepo, txnRepo, rejRepo, enrRepo, logger.Component(log, "api"))

	log.Info().Str("port", port).Msg("sales analytics service listening")
	log.Info().Msg("POST /api/v1/runs           run the pipeline on an uploaded export")
	log.Info().Msg("GET  /api/v1/report         latest consolidated report")
	log.Info().Msg("GET  /api/v1/transactions   accepted records of the latest run")
	log.Info().Msg("GET  /api/v1/rejections     rejected records with reasons")
	log.Info().Msg("GET  /api/v1/enriched       enriched records by status")
	log.Info().Msg("GET  /api/v1/dashboard      run overview")

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
