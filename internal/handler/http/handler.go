package http

import (
	"time"

	"github.com/MKhiriev/go-tour-auth/internal/config"
	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/internal/service"
)

type Handler struct {
	services *service.Services

	environment   string
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		environment:   cfg.App.Environment,
		tokenDuration: cfg.Auth.TokenDuration,
		logger:        logger,
	}
}
