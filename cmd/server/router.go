package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/userhub/internal/api"
	apiMiddleware "github.com/phrazzld/userhub/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(app.metrics.Middleware)
	r.Use(middleware.Recoverer)
	if len(app.config.Server.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: app.config.Server.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
			MaxAge:         300,
		}))
	}

	accountHandler := api.NewAccountHandler(app.accountService)
	sessionHandler := api.NewSessionHandler(app.sessionService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Public routes
	r.Post("/users", accountHandler.Store)
	r.Post("/redefinirSenha", accountHandler.ForgotPassword)
	r.Post("/forgot-password", accountHandler.ForgotPassword)
	r.Post("/reset-password/{token}", accountHandler.ResetPassword)
	r.Post("/sessions", sessionHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/listarUsers", accountHandler.Index)
		r.Put("/update/{id}", accountHandler.Update)
		r.Delete("/user/{id}", accountHandler.Delete)
	})

	r.Get("/health", app.healthHandler)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
