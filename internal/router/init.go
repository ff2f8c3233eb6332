package router

import (
	"github.com/skillink/skillink-api/internal/application"
	"github.com/skillink/skillink-api/internal/container"
	handlers "github.com/skillink/skillink-api/internal/interface/http"
	"github.com/skillink/skillink-api/internal/router/modules"
)

func buildSessionService() *application.SessionService {
	cfg := container.GetConfig()
	return application.NewSessionService(
		container.GetUsers(),
		container.GetSessionStore(),
		container.GetLogger(),
		application.SessionConfig{
			OTPLength: cfg.OTPLength,
			Latency:   cfg.SimLatency,
		},
	)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	sessions := buildSessionService()

	authHandler := handlers.NewAuthHandler(sessions, container.GetFlowStore(), logger, cfg.CookieDomain, cfg.CookieSecure)
	roleHandler := handlers.NewRoleHandler(sessions, logger)
	profileHandler := handlers.NewProfileHandler(sessions, logger)
	dashboardHandler := handlers.NewDashboardHandler(container.GetCatalog(), container.GetBookings(), logger)
	marketplaceHandler := handlers.NewMarketplaceHandler(container.GetCatalog(), container.GetBookings(), logger)
	homeHandler := handlers.NewHomeHandler(sessions)

	r.Add(modules.NewHomeModule(homeHandler))
	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewRoleModule(roleHandler, profileHandler, sessions))
	r.Add(modules.NewDashboardModule(dashboardHandler, sessions))
	r.Add(modules.NewMarketplaceModule(marketplaceHandler, sessions))

	// Unknown paths still answer with a usable next destination.
	r.Engine.NoRoute(homeHandler.NotFound)
}
