package service

import (
	"github.com/apratama/letter-seal/internal/config"
	"github.com/apratama/letter-seal/internal/crypto"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/qr"
	"github.com/apratama/letter-seal/internal/ratelimit"
	"github.com/apratama/letter-seal/internal/store"
)

// Services bundles every domain service behind one handle for the HTTP
// layer.
type Services struct {
	Auth     AuthService
	Letters  LetterService
	Users    UserService
	Events   EventService
	Verify   VerifyService
	Activity ActivityService
}

// NewServices wires the full service graph: crypto services from the app
// config, the shared rate limiter, and the repositories.
func NewServices(storages store.Storages, limiter *ratelimit.Limiter, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	fingerprint := crypto.NewFingerprintService()
	credentials := crypto.NewCredentialService(cfg.App.HashCost)
	payloads := qr.NewPayloadBuilder(cfg.App.BaseURL)
	encoder := qr.NewEncoder()

	return &Services{
		Auth:     NewAuthService(storages.Users, storages.ActivityLogs, credentials, limiter, cfg.App, logger),
		Letters:  NewLetterService(storages, fingerprint, credentials, limiter, payloads, encoder, logger),
		Users:    NewUserService(storages.Users, storages.ActivityLogs, credentials, limiter, logger),
		Events:   NewEventService(storages.Events, storages.Claims, storages.Users, storages.ActivityLogs, payloads, encoder, logger),
		Verify:   NewVerifyService(storages.Letters, storages.Signatures, storages.Events, storages.Claims, fingerprint, logger),
		Activity: NewActivityService(storages, logger),
	}
}
