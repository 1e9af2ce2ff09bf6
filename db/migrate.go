package db

import (
	"fmt"
	"log"

	"github.com/glowbook/glowbook/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Booking{},
		&models.BookingItem{},
		&models.Review{},
		&models.Report{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
