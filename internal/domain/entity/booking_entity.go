package entity

import "time"

// BookingStatus is the lifecycle state of a service booking or
// material order.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus maps a string to a known booking status.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking covers both service bookings (ServiceProviderID set) and
// material orders (MaterialID set).
type Booking struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user_id"`
	ServiceProviderID string        `json:"service_provider_id,omitempty"`
	MaterialID        string        `json:"material_id,omitempty"`
	Status            BookingStatus `json:"status"`
	Date              time.Time     `json:"date"`
	Time              string        `json:"time,omitempty"`
	TotalAmount       int           `json:"total_amount"`
	Notes             string        `json:"notes,omitempty"`
}
