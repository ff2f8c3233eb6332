package memstore

import (
	"context"
	"strconv"
	"sync"

	"github.com/skillink/skillink-api/internal/domain/entity"
	"github.com/skillink/skillink-api/internal/domain/repository"
)

// CatalogStore holds the professional, supplier and material listings in
// memory. Listings are read-mostly; only bookings mutate at runtime.
type CatalogStore struct {
	mu            sync.RWMutex
	professionals []entity.Professional
	suppliers     []entity.Supplier
	materials     []entity.Material
	bookings      []entity.Booking
	nextBookingID int
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{nextBookingID: 1}
}

func (s *CatalogStore) Professionals(ctx context.Context) ([]entity.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Professional(nil), s.professionals...), nil
}

func (s *CatalogStore) ProfessionalByUserID(ctx context.Context, userID string) (*entity.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.professionals {
		if s.professionals[i].UserID == userID {
			p := s.professionals[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *CatalogStore) ProfessionalsBySpecialization(ctx context.Context, specialization string) ([]entity.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Professional
	for _, p := range s.professionals {
		for _, sp := range p.Specialization {
			if sp == specialization {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *CatalogStore) Suppliers(ctx context.Context) ([]entity.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Supplier(nil), s.suppliers...), nil
}

func (s *CatalogStore) SupplierByUserID(ctx context.Context, userID string) (*entity.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.suppliers {
		if s.suppliers[i].UserID == userID {
			sup := s.suppliers[i]
			return &sup, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *CatalogStore) SuppliersByCategory(ctx context.Context, category string) ([]entity.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Supplier
	for _, sup := range s.suppliers {
		for _, c := range sup.Categories {
			if c == category {
				out = append(out, sup)
				break
			}
		}
	}
	return out, nil
}

func (s *CatalogStore) Materials(ctx context.Context) ([]entity.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Material(nil), s.materials...), nil
}

func (s *CatalogStore) MaterialByID(ctx context.Context, id string) (*entity.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.materials {
		if s.materials[i].ID == id {
			m := s.materials[i]
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *CatalogStore) MaterialsByCategory(ctx context.Context, category string) ([]entity.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Material
	for _, m := range s.materials {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *CatalogStore) MaterialsBySupplierID(ctx context.Context, supplierID string) ([]entity.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Material
	for _, m := range s.materials {
		if m.SupplierID == supplierID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *CatalogStore) BookingByID(ctx context.Context, id string) (*entity.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			b := s.bookings[i]
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *CatalogStore) BookingsByUserID(ctx context.Context, userID string) ([]entity.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *CatalogStore) BookingsByProviderID(ctx context.Context, providerID string) ([]entity.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Booking
	for _, b := range s.bookings {
		if b.ServiceProviderID == providerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *CatalogStore) OrdersByMaterialIDs(ctx context.Context, materialIDs []string) ([]entity.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(map[string]struct{}, len(materialIDs))
	for _, id := range materialIDs {
		ids[id] = struct{}{}
	}
	var out []entity.Booking
	for _, b := range s.bookings {
		if b.MaterialID == "" {
			continue
		}
		if _, ok := ids[b.MaterialID]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *CatalogStore) CreateBooking(ctx context.Context, b entity.Booking) (*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = strconv.Itoa(s.nextBookingID)
	s.nextBookingID++
	if b.Status == "" {
		b.Status = entity.BookingPending
	}
	s.bookings = append(s.bookings, b)
	out := b
	return &out, nil
}

func (s *CatalogStore) UpdateBookingStatus(ctx context.Context, id string, status entity.BookingStatus) (*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = status
			b := s.bookings[i]
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

var (
	_ repository.CatalogRepository = (*CatalogStore)(nil)
	_ repository.BookingRepository = (*CatalogStore)(nil)
)
