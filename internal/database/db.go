package database

import (
	"log"

	"netlink-server/internal/config"
	"netlink-server/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// Migrate creates the four report tables. Exposed separately so tests
// can migrate their own database handles.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.GeneralReport{},
		&models.NetworkDetail{},
		&models.DeviceLog{},
		&models.LocationHistory{},
	)
}
