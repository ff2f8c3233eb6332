package repository

import (
	"context"

	"github.com/skillink/skillink-api/internal/domain/entity"
)

// CatalogRepository exposes the professional, supplier and material
// listings consumed by the dashboards and the search surface.
type CatalogRepository interface {
	Professionals(ctx context.Context) ([]entity.Professional, error)
	ProfessionalByUserID(ctx context.Context, userID string) (*entity.Professional, error)
	ProfessionalsBySpecialization(ctx context.Context, specialization string) ([]entity.Professional, error)

	Suppliers(ctx context.Context) ([]entity.Supplier, error)
	SupplierByUserID(ctx context.Context, userID string) (*entity.Supplier, error)
	SuppliersByCategory(ctx context.Context, category string) ([]entity.Supplier, error)

	Materials(ctx context.Context) ([]entity.Material, error)
	MaterialByID(ctx context.Context, id string) (*entity.Material, error)
	MaterialsByCategory(ctx context.Context, category string) ([]entity.Material, error)
	MaterialsBySupplierID(ctx context.Context, supplierID string) ([]entity.Material, error)
}

// BookingRepository stores service bookings and material orders.
type BookingRepository interface {
	BookingByID(ctx context.Context, id string) (*entity.Booking, error)
	BookingsByUserID(ctx context.Context, userID string) ([]entity.Booking, error)
	BookingsByProviderID(ctx context.Context, providerID string) ([]entity.Booking, error)
	OrdersByMaterialIDs(ctx context.Context, materialIDs []string) ([]entity.Booking, error)
	CreateBooking(ctx context.Context, b entity.Booking) (*entity.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status entity.BookingStatus) (*entity.Booking, error)
}
