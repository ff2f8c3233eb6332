package entity

import "time"

// Professional is the service-provider profile attached to a user
// holding the professional role.
type Professional struct {
	UserID         string    `json:"user_id"`
	Specialization []string  `json:"specialization"`
	Portfolio      []Project `json:"portfolio"`
	Skills         []string  `json:"skills"`
	ExperienceYrs  int       `json:"experience_years"`
	ChargePerHour  int       `json:"charge_per_hour,omitempty"`
	Availability   []string  `json:"availability,omitempty"`
	Verified       bool      `json:"verified"`
	TrustScore     int       `json:"trust_score"`
}

// Project is a portfolio entry shown on a professional's profile.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Date        time.Time `json:"date"`
}

// Supplier is the storefront profile attached to a user holding the
// supplier role.
type Supplier struct {
	UserID       string   `json:"user_id"`
	BusinessName string   `json:"business_name"`
	GSTNumber    string   `json:"gst_number,omitempty"`
	Verified     bool     `json:"verified"`
	Categories   []string `json:"categories"`
}

// Material is a construction material listed by a supplier.
type Material struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image,omitempty"`
	SupplierID  string `json:"supplier_id"`
	InStock     bool   `json:"in_stock"`
	StockCount  int    `json:"stock_count,omitempty"`
	Unit        string `json:"unit"`
}
