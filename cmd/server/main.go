package main

import (
	"context"
	"fmt"

	"github.com/mintid/mintid/internal/config"
	"github.com/mintid/mintid/internal/handler/http"
	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/metrics"
	"github.com/mintid/mintid/internal/server"
	"github.com/mintid/mintid/internal/service"
	"github.com/mintid/mintid/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("mintid-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err = storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	operators := identity.NewOperators([]identity.Operator{
		{Username: cfg.App.OperatorUsername, Email: cfg.App.OperatorEmail},
	})

	services, err := service.NewServices(storages, cfg.App, operators, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handler := http.NewHandler(services, operators, metrics.NewMetrics(), cfg.App, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
