package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tour-auth/internal/config"
	"github.com/MKhiriev/go-tour-auth/internal/handler"
	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/internal/mail"
	"github.com/MKhiriev/go-tour-auth/internal/server"
	"github.com/MKhiriev/go-tour-auth/internal/service"
	"github.com/MKhiriev/go-tour-auth/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-tour-auth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("environment", cfg.App.Environment).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	var sender mail.Sender
	if cfg.Mail.RelayURL != "" {
		sender = mail.NewHTTPSender(cfg.Mail, log)
	} else {
		sender = mail.NewNopSender(log)
	}

	services := service.NewServices(storages, cfg.Auth, sender, log)
	handlers := handler.NewHandlers(services, cfg, log)

	srv, err := server.NewServer(handlers, cfg.Server, log)
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
