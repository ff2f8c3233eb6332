package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/domain/repository"
	"github.com/skillink/skillink-api/internal/interface/middleware"
	"github.com/skillink/skillink-api/pkg/response"
	"github.com/skillink/skillink-api/pkg/validation"
)

// MarketplaceHandler serves the catalog search surface and the booking
// endpoints. Search is a plain substring filter over the in-memory
// catalog, matching how the storefront filters listings client side.
type MarketplaceHandler struct {
	Catalog  repository.CatalogRepository
	Bookings repository.BookingRepository
	Logger   *logrus.Logger
}

func NewMarketplaceHandler(catalog repository.CatalogRepository, bookings repository.BookingRepository, logger *logrus.Logger) *MarketplaceHandler {
	return &MarketplaceHandler{Catalog: catalog, Bookings: bookings, Logger: logger}
}

// Search GET /search?q=&type=&category=&specialization=
//
// type narrows the result to one listing kind; otherwise all three are
// returned under their own keys.
func (h *MarketplaceHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	kind := c.Query("type")

	result := gin.H{}

	if kind == "" || kind == "professionals" {
		var pros []entity.Professional
		var err error
		if spec := c.Query("specialization"); spec != "" {
			pros, err = h.Catalog.ProfessionalsBySpecialization(ctx, spec)
		} else {
			pros, err = h.Catalog.Professionals(ctx)
		}
		if err != nil {
			h.Logger.WithError(err).Error("search professionals failed")
			response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
			return
		}
		result["professionals"] = filterProfessionals(pros, q)
	}

	if kind == "" || kind == "suppliers" {
		var sups []entity.Supplier
		var err error
		if cat := c.Query("category"); cat != "" {
			sups, err = h.Catalog.SuppliersByCategory(ctx, cat)
		} else {
			sups, err = h.Catalog.Suppliers(ctx)
		}
		if err != nil {
			h.Logger.WithError(err).Error("search suppliers failed")
			response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
			return
		}
		result["suppliers"] = filterSuppliers(sups, q)
	}

	if kind == "" || kind == "materials" {
		var mats []entity.Material
		var err error
		if cat := c.Query("category"); cat != "" {
			mats, err = h.Catalog.MaterialsByCategory(ctx, cat)
		} else {
			mats, err = h.Catalog.Materials(ctx)
		}
		if err != nil {
			h.Logger.WithError(err).Error("search materials failed")
			response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
			return
		}
		result["materials"] = filterMaterials(mats, q)
	}

	response.Success(c, http.StatusOK, result, "search results", gin.H{"query": q})
}

func filterProfessionals(in []entity.Professional, q string) []entity.Professional {
	if q == "" {
		return in
	}
	out := make([]entity.Professional, 0, len(in))
	for _, p := range in {
		hay := strings.ToLower(strings.Join(p.Specialization, " "))
		if strings.Contains(hay, q) {
			out = append(out, p)
		}
	}
	return out
}

func filterSuppliers(in []entity.Supplier, q string) []entity.Supplier {
	if q == "" {
		return in
	}
	out := make([]entity.Supplier, 0, len(in))
	for _, s := range in {
		hay := strings.ToLower(s.BusinessName + " " + strings.Join(s.Categories, " "))
		if strings.Contains(hay, q) {
			out = append(out, s)
		}
	}
	return out
}

func filterMaterials(in []entity.Material, q string) []entity.Material {
	if q == "" {
		return in
	}
	out := make([]entity.Material, 0, len(in))
	for _, m := range in {
		hay := strings.ToLower(m.Name + " " + m.Category)
		if strings.Contains(hay, q) {
			out = append(out, m)
		}
	}
	return out
}

type createBookingRequest struct {
	ServiceProviderID string `json:"service_provider_id"`
	MaterialID        string `json:"material_id"`
	Date              string `json:"date" binding:"required"`
	Time              string `json:"time"`
	TotalAmount       int    `json:"total_amount" binding:"gte=0"`
	Notes             string `json:"notes"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListBookings GET /bookings returns the caller's own bookings.
func (h *MarketplaceHandler) ListBookings(c *gin.Context) {
	u := middleware.CurrentUser(c)
	list, err := h.Bookings.BookingsByUserID(c.Request.Context(), u.ID)
	if err != nil {
		h.Logger.WithError(err).Error("list bookings failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load bookings", nil)
		return
	}
	response.Success(c, http.StatusOK, list, "bookings", nil)
}

// CreateBooking POST /bookings
func (h *MarketplaceHandler) CreateBooking(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.ServiceProviderID == "" && req.MaterialID == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload",
			map[string]string{"service_provider_id": "either service_provider_id or material_id is required"})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload",
			map[string]string{"date": "must be YYYY-MM-DD"})
		return
	}

	created, err := h.Bookings.CreateBooking(c.Request.Context(), entity.Booking{
		UserID:            u.ID,
		ServiceProviderID: req.ServiceProviderID,
		MaterialID:        req.MaterialID,
		Status:            entity.BookingPending,
		Date:              date,
		Time:              req.Time,
		TotalAmount:       req.TotalAmount,
		Notes:             req.Notes,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create booking failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create booking", nil)
		return
	}
	response.Success(c, http.StatusCreated, created, "booking created", nil)
}

// UpdateBookingStatus PATCH /bookings/:id/status
//
// Only the booking's owner or its provider may move it.
func (h *MarketplaceHandler) UpdateBookingStatus(c *gin.Context) {
	u := middleware.CurrentUser(c)
	id := c.Param("id")

	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	status, ok := entity.ParseBookingStatus(req.Status)
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid payload",
			map[string]string{"status": "must be one of pending, confirmed, completed, cancelled"})
		return
	}

	ctx := c.Request.Context()
	existing, err := h.Bookings.BookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "booking not found", nil)
			return
		}
		h.Logger.WithError(err).Error("load booking failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update booking", nil)
		return
	}
	if existing.UserID != u.ID && existing.ServiceProviderID != u.ID {
		response.Error[any](c, http.StatusForbidden, "not your booking", nil)
		return
	}

	updated, err := h.Bookings.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		h.Logger.WithError(err).Error("update booking failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update booking", nil)
		return
	}
	response.Success(c, http.StatusOK, updated, "booking updated", nil)
}
