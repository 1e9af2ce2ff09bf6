package services

import (
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glowbook/glowbook/models"
)

// setupTestDB connects to the database named by GLOWBOOK_TEST_DSN, applies
// the schema and wipes all tables. Tests are skipped when the variable is
// unset so the pure tests still run anywhere.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("GLOWBOOK_TEST_DSN")
	if dsn == "" {
		t.Skip("GLOWBOOK_TEST_DSN not set; skipping DB-backed tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Booking{},
		&models.BookingItem{},
		&models.Review{},
		&models.Report{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := db.Exec(
		"TRUNCATE TABLE notifications, reports, reviews, booking_items, bookings, working_hours, services, providers, users RESTART IDENTITY CASCADE",
	).Error; err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, name, role, accountType string) *models.User {
	t.Helper()
	u := models.User{
		Name:        name,
		Email:       name + "@glowbook.test",
		Password:    "hashed",
		Role:        role,
		AccountType: accountType,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return &u
}

// createProvider sets up a provider profile with a complete business
// profile, one catalog service and open hours every day of the week.
func createProvider(t *testing.T, db *gorm.DB, owner *models.User, state models.TrustState) *models.Provider {
	t.Helper()
	p := models.Provider{
		UserID:       owner.ID,
		BusinessName: owner.Name + " Studio",
		City:         "Pune",
		Address:      "12 MG Road",
		TrustState:   state,
		IsActive:     true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create provider: %v", err)
	}

	svc := models.Service{
		ProviderID: p.ID,
		Name:       "Classic Haircut",
		Price:      450,
		Duration:   45,
	}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("create catalog service: %v", err)
	}

	for day := models.Sunday; day <= models.Saturday; day++ {
		wh := models.WorkingHours{
			ProviderID: p.ID,
			DayOfWeek:  day,
			StartTime:  "09:00",
			EndTime:    "18:00",
			IsWorkDay:  true,
		}
		if err := db.Create(&wh).Error; err != nil {
			t.Fatalf("create working hours: %v", err)
		}
	}
	return &p
}

// futureDate returns a date a week out, which always has working hours in
// the fixtures above.
func futureDate() time.Time {
	d := time.Now().AddDate(0, 0, 7)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func pastDate() time.Time {
	d := time.Now().AddDate(0, 0, -7)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// insertBooking bypasses the engine for fixtures that need a booking in a
// particular state.
func insertBooking(t *testing.T, db *gorm.DB, clientID, providerUserID uint, status models.BookingStatus, date time.Time) *models.Booking {
	t.Helper()
	b := models.Booking{
		ClientID:   clientID,
		ProviderID: providerUserID,
		Date:       date,
		TimeSlot:   "11:00",
		Status:     status,
		TotalPrice: 450,
		Items:      []models.BookingItem{{Name: "Classic Haircut", Price: 450, Duration: 45}},
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("insert booking: %v", err)
	}
	return &b
}
