package memstore

import (
	"time"

	"github.com/skillink/skillink-api/internal/domain/entity"
)

// Seed loads the demo marketplace dataset. The data mirrors the fixtures
// the product team uses for walkthroughs; phone numbers are the login keys.
// A nil users store skips the identity portion, for deployments where
// identities live in Postgres but the catalog stays in memory.
func Seed(users *UserStore, catalog *CatalogStore) {
	if users != nil {
		for _, u := range SeedUsers() {
			cp := u
			users.put(&cp)
		}
	}

	catalog.mu.Lock()
	catalog.professionals = seedProfessionals()
	catalog.suppliers = seedSuppliers()
	catalog.materials = seedMaterials()
	catalog.bookings = seedBookings()
	catalog.nextBookingID = len(catalog.bookings) + 1
	catalog.mu.Unlock()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SeedUsers returns the demo identities. Exported so the Postgres seeder
// can load the same dataset.
func SeedUsers() []entity.User {
	return []entity.User{
		{
			ID: "1", Name: "Rahul Sharma", Phone: "9876543210", Email: "rahul@example.com",
			Roles:    []entity.Role{entity.RoleHomeowner},
			Location: &entity.Location{State: "Maharashtra", City: "Mumbai", Area: "Andheri"},
			Verified: true, CreatedAt: day(2023, time.January, 15), UpdatedAt: day(2023, time.January, 15),
		},
		{
			ID: "2", Name: "Priya Patel", Phone: "8765432109", Email: "priya@example.com",
			Roles:    []entity.Role{entity.RoleProfessional},
			Location: &entity.Location{State: "Karnataka", City: "Bangalore", Area: "Whitefield"},
			Verified: true, TrustScore: 85, CreatedAt: day(2023, time.February, 10), UpdatedAt: day(2023, time.February, 10),
		},
		{
			ID: "3", Name: "Vikram Singh", Phone: "7654321098", Email: "vikram@example.com",
			Roles:    []entity.Role{entity.RoleSupplier},
			Location: &entity.Location{State: "Delhi", City: "New Delhi", Area: "Connaught Place"},
			Verified: true, CreatedAt: day(2023, time.March, 5), UpdatedAt: day(2023, time.March, 5),
		},
		{
			ID: "4", Name: "Ananya Reddy", Phone: "6543210987", Email: "ananya@example.com",
			Roles:    []entity.Role{entity.RoleProfessional, entity.RoleHomeowner},
			Location: &entity.Location{State: "Tamil Nadu", City: "Chennai", Area: "T Nagar"},
			Verified: true, TrustScore: 92, CreatedAt: day(2023, time.April, 20), UpdatedAt: day(2023, time.April, 20),
		},
		{
			ID: "5", Name: "Arjun Kumar", Phone: "9876543211", Email: "arjun@example.com",
			Roles:    []entity.Role{entity.RoleSupplier, entity.RoleHomeowner},
			Location: &entity.Location{State: "Gujarat", City: "Ahmedabad", Area: "Navrangpura"},
			Verified: true, CreatedAt: day(2023, time.May, 15), UpdatedAt: day(2023, time.May, 15),
		},
	}
}

func seedProjects() []entity.Project {
	return []entity.Project{
		{ID: "1", Title: "Modern Villa Design", Description: "Luxurious 4 BHK villa design with swimming pool and garden area", Date: day(2022, time.May, 10)},
		{ID: "2", Title: "Budget Apartment Interior", Description: "Cost-effective interior design for 2 BHK apartment", Date: day(2022, time.August, 15)},
		{ID: "3", Title: "Office Space Renovation", Description: "Complete renovation of a 2000 sq ft office space", Date: day(2022, time.November, 20)},
		{ID: "4", Title: "Farmhouse Construction", Description: "Ground-up construction of a farmhouse with sustainable materials", Date: day(2023, time.January, 5)},
		{ID: "5", Title: "Bathroom Remodeling", Description: "Complete bathroom makeover with modern fittings", Date: day(2023, time.March, 10)},
	}
}

func seedProfessionals() []entity.Professional {
	projects := seedProjects()
	return []entity.Professional{
		{
			UserID: "2", Specialization: []string{"Interior Designer"},
			Portfolio: []entity.Project{projects[0], projects[1]},
			Skills:    []string{"Space Planning", "Color Scheme", "3D Visualization"},
			ExperienceYrs: 7, ChargePerHour: 1500,
			Availability: []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
			Verified:     true, TrustScore: 85,
		},
		{
			UserID: "4", Specialization: []string{"Civil Engineer"},
			Portfolio: []entity.Project{projects[2], projects[3]},
			Skills:    []string{"Structural Design", "Project Management", "AutoCAD"},
			ExperienceYrs: 10, ChargePerHour: 2000,
			Availability: []string{"Mon", "Wed", "Fri"},
			Verified:     true, TrustScore: 92,
		},
		{
			UserID: "6", Specialization: []string{"Plumber"},
			Portfolio: []entity.Project{projects[4]},
			Skills:    []string{"Pipe Fitting", "Leak Detection", "Fixture Installation"},
			ExperienceYrs: 5, ChargePerHour: 800,
			Availability: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
			Verified:     true, TrustScore: 78,
		},
	}
}

func seedSuppliers() []entity.Supplier {
	return []entity.Supplier{
		{UserID: "3", BusinessName: "Singh Construction Materials", GSTNumber: "GST123456789", Verified: true, Categories: []string{"Cement", "Steel", "Bricks"}},
		{UserID: "5", BusinessName: "Kumar Home Supplies", GSTNumber: "GST987654321", Verified: true, Categories: []string{"Tiles", "Sanitary", "Electrical"}},
	}
}

func seedMaterials() []entity.Material {
	return []entity.Material{
		{ID: "1", Name: "Premium Cement", Description: "High-quality cement for construction", Price: 350, Category: "Cement", SupplierID: "3", InStock: true, StockCount: 100, Unit: "bag"},
		{ID: "2", Name: "Steel Reinforcement Bars", Description: "8mm TMT Bars for reinforcement", Price: 75, Category: "Steel", SupplierID: "3", InStock: true, StockCount: 500, Unit: "kg"},
		{ID: "3", Name: "Red Clay Bricks", Description: "Standard size red clay bricks", Price: 8, Category: "Bricks", SupplierID: "3", InStock: true, StockCount: 1000, Unit: "piece"},
		{ID: "4", Name: "Ceramic Floor Tiles", Description: "2x2 ft ceramic tiles for flooring", Price: 85, Category: "Tiles", SupplierID: "5", InStock: true, StockCount: 200, Unit: "piece"},
		{ID: "5", Name: "Bathroom Fixtures Set", Description: "Complete set of bathroom fixtures", Price: 5000, Category: "Sanitary", SupplierID: "5", InStock: true, StockCount: 20, Unit: "set"},
	}
}

func seedBookings() []entity.Booking {
	return []entity.Booking{
		{ID: "1", UserID: "1", ServiceProviderID: "2", Status: entity.BookingCompleted, Date: day(2023, time.May, 20), Time: "10:00 AM", TotalAmount: 4500, Notes: "Interior design consultation for living room"},
		{ID: "2", UserID: "1", MaterialID: "1", Status: entity.BookingConfirmed, Date: day(2023, time.June, 15), TotalAmount: 3500, Notes: "Delivery to site address"},
		{ID: "3", UserID: "4", ServiceProviderID: "6", Status: entity.BookingPending, Date: day(2023, time.July, 10), Time: "3:00 PM", TotalAmount: 2400, Notes: "Bathroom plumbing repair"},
	}
}
