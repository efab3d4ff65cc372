package handler

import (
	"github.com/MKhiriev/go-tour-auth/internal/config"
	myHTTP "github.com/MKhiriev/go-tour-auth/internal/handler/http"
	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/internal/service"
)

// Handlers aggregates the transport handlers of the application.
type Handlers struct {
	HTTP *myHTTP.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handlers {
	return &Handlers{
		HTTP: myHTTP.NewHandler(services, cfg, logger),
	}
}
