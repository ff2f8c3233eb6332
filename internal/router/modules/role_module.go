package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/skillink/skillink-api/internal/application"
	handlers "github.com/skillink/skillink-api/internal/interface/http"
	"github.com/skillink/skillink-api/internal/interface/middleware"
)

// RoleModule wires the role selector plus the profile endpoints. All of
// it requires a live session but no particular role.
type RoleModule struct {
	Roles    *handlers.RoleHandler
	Profiles *handlers.ProfileHandler
	Sessions *application.SessionService
}

func NewRoleModule(roles *handlers.RoleHandler, profiles *handlers.ProfileHandler, sessions *application.SessionService) *RoleModule {
	return &RoleModule{Roles: roles, Profiles: profiles, Sessions: sessions}
}

func (m *RoleModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireSession(m.Sessions))
	{
		auth.GET("/role-selection", m.Roles.Options)
		auth.POST("/role-selection", m.Roles.Select)
		auth.GET("/me", m.Profiles.Me)
		auth.PATCH("/me", m.Profiles.Update)
	}
}
