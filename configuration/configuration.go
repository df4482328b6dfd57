package configuration

import (
	"fmt"
	"log"
	"os"

	"docpoint/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// LoadEnv loads the .env file if present. Missing files are fine in
// environments that export variables directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment variables")
	}
}

// ConfigDB opens the Postgres connection and runs auto-migration. The handle
// is returned instead of stored in a package variable so callers can inject it
// into the controllers.
func ConfigDB() (*gorm.DB, error) {
	dsn := os.Getenv("DB")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Patient{},
		&models.Doctor{},
		&models.SlotClaim{},
		&models.Appointment{},
		&models.Report{},
		&models.PaymentOrder{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
