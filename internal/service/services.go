// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-tour-auth/internal/config"
	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/internal/mail"
	"github.com/MKhiriev/go-tour-auth/internal/store"
)

// Services aggregates the business-logic services of the application.
type Services struct {
	AuthService
}

// NewServices wires the service layer on top of the storage layer.
func NewServices(storages *store.Storages, cfg config.Auth, sender mail.Sender, log *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg, sender, log),
	}
}
