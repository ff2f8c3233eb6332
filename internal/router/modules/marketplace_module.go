package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/skillink/skillink-api/internal/application"
	handlers "github.com/skillink/skillink-api/internal/interface/http"
	"github.com/skillink/skillink-api/internal/interface/middleware"
)

// MarketplaceModule wires the catalog search surface and the booking
// endpoints. Search needs a session but no role; bookings likewise, since
// role context only shapes which side of a booking the caller sits on.
type MarketplaceModule struct {
	Handler  *handlers.MarketplaceHandler
	Sessions *application.SessionService
}

func NewMarketplaceModule(h *handlers.MarketplaceHandler, sessions *application.SessionService) *MarketplaceModule {
	return &MarketplaceModule{Handler: h, Sessions: sessions}
}

func (m *MarketplaceModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireSession(m.Sessions))
	{
		auth.GET("/search", m.Handler.Search)
		auth.GET("/bookings", m.Handler.ListBookings)
		auth.POST("/bookings", m.Handler.CreateBooking)
		auth.PATCH("/bookings/:id/status", m.Handler.UpdateBookingStatus)
	}
}
