package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/skillink/skillink-api/internal/application"
	"github.com/skillink/skillink-api/internal/domain/entity"
	handlers "github.com/skillink/skillink-api/internal/interface/http"
	"github.com/skillink/skillink-api/internal/interface/middleware"
)

// DashboardModule wires the three role dashboards. Every dashboard sits
// behind the session guard and its own role guard.
type DashboardModule struct {
	Handler  *handlers.DashboardHandler
	Sessions *application.SessionService
}

func NewDashboardModule(h *handlers.DashboardHandler, sessions *application.SessionService) *DashboardModule {
	return &DashboardModule{Handler: h, Sessions: sessions}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireSession(m.Sessions))
	{
		auth.GET("/homeowner", middleware.RequireRole(entity.RoleHomeowner), m.Handler.Homeowner)
		auth.GET("/professional", middleware.RequireRole(entity.RoleProfessional), m.Handler.Professional)
		auth.GET("/supplier", middleware.RequireRole(entity.RoleSupplier), m.Handler.Supplier)
	}
}
