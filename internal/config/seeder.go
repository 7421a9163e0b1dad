package config

import (
	"fmt"
	"log"
	"time"

	"tms-shipflow/internal/adapters/persistence/models"
	"tms-shipflow/internal/core/domain"
	"tms-shipflow/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedUsers(); err != nil {
		log.Printf("⚠️ User seeder skipped: %v", err)
	}
	if err := s.seedShipments(); err != nil {
		log.Printf("⚠️ Shipment seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedUsers seeds a default admin and employee account
// This is for development/testing only
func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&models.Profile{}).Count(&count)
	if count > 0 {
		return nil // Users already exist
	}

	accounts := []struct {
		email    string
		fullName string
		role     domain.Role
	}{
		{"admin@shipflow.io", "Admin User", domain.RoleAdmin},
		{"dispatch@shipflow.io", "Dispatch Clerk", domain.RoleEmployee},
	}

	for _, a := range accounts {
		hashedPassword, err := password.Hash("changeme12345")
		if err != nil {
			return err
		}

		name := a.fullName
		profile := &models.Profile{
			ID:           uuid.NewString(),
			Email:        a.email,
			FullName:     &name,
			PasswordHash: hashedPassword,
		}
		if err := s.db.Create(profile).Error; err != nil {
			return err
		}

		role := &models.UserRole{
			ID:     uuid.NewString(),
			UserID: profile.ID,
			Role:   string(a.role),
		}
		if err := s.db.Create(role).Error; err != nil {
			return err
		}

		log.Printf("✅ Seeded %s account: %s", a.role, a.email)
	}

	return nil
}

// seedShipments seeds a handful of sample shipments for development
func (s *Seeder) seedShipments() error {
	var count int64
	s.db.Model(&models.Shipment{}).Count(&count)
	if count > 0 {
		return nil // Shipments already exist
	}

	var admin models.Profile
	if err := s.db.Where("email = ?", "admin@shipflow.io").First(&admin).Error; err != nil {
		return err
	}

	type row struct {
		tracking    string
		origin      string
		destination string
		status      domain.ShipmentStatus
		carrier     string
		priority    domain.ShipmentPriority
		shipType    domain.ShipmentType
		weight      float64
		cost        float64
		eta         string
	}

	year := time.Now().Year()
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	rows := []row{
		{"TMS-%d-000101", "Chicago, IL", "Dallas, TX", domain.StatusInTransit, "FedEx", domain.PriorityHigh, domain.TypeExpress, 12.5, 84.90, nextWeek},
		{"TMS-%d-000102", "Seattle, WA", "Boston, MA", domain.StatusPending, "UPS", domain.PriorityMedium, domain.TypeStandard, 3.2, 22.40, nextWeek},
		{"TMS-%d-000103", "Rotterdam", "New York, NY", domain.StatusOutForDelivery, "Maersk", domain.PriorityCritical, domain.TypeFreight, 870, 1420.00, nextWeek},
		{"TMS-%d-000104", "Memphis, TN", "Denver, CO", domain.StatusDelivered, "DHL", domain.PriorityLow, domain.TypeOvernight, 1.1, 39.99, nextWeek},
	}

	for _, r := range rows {
		weight := r.weight
		cost := r.cost
		eta := r.eta
		shipment := &models.Shipment{
			ID:                uuid.NewString(),
			TrackingNumber:    fmtTracking(r.tracking, year),
			Origin:            r.origin,
			Destination:       r.destination,
			Status:            string(r.status),
			Carrier:           r.carrier,
			Weight:            &weight,
			EstimatedDelivery: &eta,
			Priority:          string(r.priority),
			Type:              string(r.shipType),
			Cost:              &cost,
			CreatedBy:         &admin.ID,
		}
		if err := s.db.Create(shipment).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d sample shipments", len(rows))
	return nil
}

func fmtTracking(pattern string, year int) string {
	return fmt.Sprintf(pattern, year)
}
