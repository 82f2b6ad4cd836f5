package app

import (
	"context"

	"gigflow/config"
	"gigflow/internal/notify"
	"gigflow/internal/services"
	"gigflow/internal/storage"
	"gigflow/internal/transport/dto"

	"github.com/go-playground/validator/v10"
)

// Application holds core application dependencies.
type Application struct {
	Config    *config.Config
	Validator *validator.Validate

	Users  services.UserService
	Gigs   services.GigService
	Bids   services.BidService
	Hiring services.HiringService

	Dispatcher notify.Dispatcher
	Subscriber notify.Subscriber // nil when the notify driver cannot stream

	// HealthChecks are probed by the readiness endpoint, keyed by dependency name.
	HealthChecks map[string]func(ctx context.Context) error
}

// New builds the services on top of repos. dispatcher receives hiring
// events after each commit; subscriber may be nil.
func New(cfg *config.Config, repos storage.Repositories, dispatcher notify.Dispatcher, subscriber notify.Subscriber) *Application {
	validate := dto.NewValidator()
	if dispatcher == nil {
		dispatcher = notify.Discard{}
	}

	return &Application{
		Config:    cfg,
		Validator: validate,
		Users:     services.NewUserService(repos.Users, validate, cfg.JWT.Secret, cfg.JWT.Expiration),
		Gigs:      services.NewGigService(repos.Gigs, validate),
		Bids:      services.NewBidService(repos.Bids, repos.Gigs, validate),
		Hiring: services.NewHiringService(repos, dispatcher, services.HiringConfig{
			MaxAttempts:    cfg.Hiring.MaxAttempts,
			InitialBackoff: cfg.Hiring.InitialBackoff,
			MaxBackoff:     cfg.Hiring.MaxBackoff,
			AttemptTimeout: cfg.Hiring.AttemptTimeout,
		}),
		Dispatcher:   dispatcher,
		Subscriber:   subscriber,
		HealthChecks: map[string]func(ctx context.Context) error{},
	}
}
