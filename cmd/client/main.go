package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-bizsync/internal/client"
	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("bizsync-client", cfg.LogFile)
	log.Info().Str("version", buildInfo.BuildVersion()).Msg("starting client")

	app, err := client.NewApp(context.Background(), cfg, client.Options{BuildInfo: buildInfo}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
