package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/skillink/skillink-api/internal/interface/http"
)

// HomeModule wires the public splash endpoint.
type HomeModule struct {
	Handler *handlers.HomeHandler
}

func NewHomeModule(h *handlers.HomeHandler) *HomeModule {
	return &HomeModule{Handler: h}
}

func (m *HomeModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Splash)
}
