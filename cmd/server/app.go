package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	goredis "github.com/go-redis/redis/v8"
	"github.com/phrazzld/userhub/internal/config"
	"github.com/phrazzld/userhub/internal/platform/mail"
	"github.com/phrazzld/userhub/internal/platform/metrics"
	"github.com/phrazzld/userhub/internal/platform/redis"
	"github.com/phrazzld/userhub/internal/service"
	"github.com/phrazzld/userhub/internal/service/auth"
	"github.com/phrazzld/userhub/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *goredis.Client

	accountStore store.AccountStore
	jwtService   *auth.HMACService
	mailer       mail.Sender
	metrics      *metrics.Metrics

	accountService service.AccountService
	sessionService service.SessionService
}

// appOption overrides a dependency that newApplication would otherwise build.
type appOption func(*appOptions)

type appOptions struct {
	mailer   mail.Sender
	consumed auth.ConsumedTokenStore
}

// withMailer replaces the configured mail transport.
func withMailer(m mail.Sender) appOption {
	return func(o *appOptions) { o.mailer = m }
}

// withConsumedTokens replaces the consumed reset token store.
func withConsumedTokens(c auth.ConsumedTokenStore) appOption {
	return func(o *appOptions) { o.consumed = c }
}

// newApplication creates a new application instance with all dependencies
// initialized. The database connection must already be established.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	opts ...appOption,
) (*application, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
	}

	var err error
	app.accountStore, err = newAccountStore(cfg.Database.Driver, db, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"reset_token_lifetime_minutes", cfg.Auth.ResetTokenLifetimeMinutes)

	mailer := o.mailer
	if mailer == nil {
		mailer, err = mail.NewSender(cfg.Mail, logger.With("component", "mail"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mail transport: %w", err)
		}
	}
	app.mailer = app.metrics.InstrumentSender(mailer)

	consumed := o.consumed
	if consumed == nil && cfg.Auth.ResetSingleUse {
		consumed, err = app.newConsumedTokenStore(ctx)
		if err != nil {
			return nil, err
		}
	}

	app.accountService, err = service.NewAccountService(
		app.accountStore,
		db,
		app.jwtService,
		app.mailer,
		service.AccountServiceOptions{
			PublicBaseURL:  cfg.Server.PublicBaseURL,
			ConsumedTokens: consumed,
		},
		logger,
	)
	if err != nil {
		if app.redis != nil {
			_ = app.redis.Close()
		}
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	app.sessionService = service.NewSessionService(
		app.accountStore,
		app.jwtService,
		auth.PasswordVerifierFunc(store.ComparePassword),
		logger,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// newConsumedTokenStore picks Redis when configured and an in-process
// store otherwise.
func (app *application) newConsumedTokenStore(ctx context.Context) (auth.ConsumedTokenStore, error) {
	if app.config.Redis.URL == "" {
		app.logger.Info("single-use reset tokens tracked in memory")
		return auth.NewMemoryConsumedTokens(), nil
	}

	client, err := redis.Connect(ctx, app.config.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = client
	app.logger.Info("single-use reset tokens tracked in redis")
	return redis.NewConsumedTokens(client), nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// healthHandler reports liveness.
func (app *application) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("failed to write health check response", "error", err)
	}
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis connection", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
