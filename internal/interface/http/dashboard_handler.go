package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/domain/repository"
	"github.com/skillink/skillink-api/internal/interface/middleware"
	"github.com/skillink/skillink-api/pkg/response"
)

// DashboardHandler assembles the per-role dashboard payloads. Purely a
// read-side composition over the catalog and booking stores; every route
// here sits behind RequireRole.
type DashboardHandler struct {
	Catalog  repository.CatalogRepository
	Bookings repository.BookingRepository
	Logger   *logrus.Logger
}

func NewDashboardHandler(catalog repository.CatalogRepository, bookings repository.BookingRepository, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Catalog: catalog, Bookings: bookings, Logger: logger}
}

// Homeowner GET /homeowner
func (h *DashboardHandler) Homeowner(c *gin.Context) {
	u := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	bookings, err := h.Bookings.BookingsByUserID(ctx, u.ID)
	if err != nil {
		h.Logger.WithError(err).Error("load homeowner bookings failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load dashboard", nil)
		return
	}
	professionals, _ := h.Catalog.Professionals(ctx)
	materials, _ := h.Catalog.Materials(ctx)

	response.Success(c, http.StatusOK, gin.H{
		"user":          u,
		"bookings":      bookings,
		"professionals": professionals,
		"materials":     materials,
	}, "homeowner dashboard", nil)
}

// Professional GET /professional
func (h *DashboardHandler) Professional(c *gin.Context) {
	u := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	incoming, err := h.Bookings.BookingsByProviderID(ctx, u.ID)
	if err != nil {
		h.Logger.WithError(err).Error("load provider bookings failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load dashboard", nil)
		return
	}
	profile, perr := h.Catalog.ProfessionalByUserID(ctx, u.ID)
	if perr != nil {
		profile = &entity.Professional{UserID: u.ID}
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":     u,
		"profile":  profile,
		"bookings": incoming,
	}, "professional dashboard", nil)
}

// Supplier GET /supplier
func (h *DashboardHandler) Supplier(c *gin.Context) {
	u := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	storefront, serr := h.Catalog.SupplierByUserID(ctx, u.ID)
	if serr != nil {
		storefront = &entity.Supplier{UserID: u.ID}
	}
	materials, err := h.Catalog.MaterialsBySupplierID(ctx, u.ID)
	if err != nil {
		h.Logger.WithError(err).Error("load supplier materials failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load dashboard", nil)
		return
	}

	ids := make([]string, 0, len(materials))
	for _, m := range materials {
		ids = append(ids, m.ID)
	}
	orders, err := h.Bookings.OrdersByMaterialIDs(ctx, ids)
	if err != nil {
		h.Logger.WithError(err).Error("load material orders failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load dashboard", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":       u,
		"storefront": storefront,
		"materials":  materials,
		"orders":     orders,
	}, "supplier dashboard", nil)
}
