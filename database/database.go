package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/elad-asi/attendance-manager/config"
	"github.com/elad-asi/attendance-manager/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate builds the schema and seeds the data version counter. Split out of
// Connect so tests can run it against their own (sqlite) handle.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Sheet{},
		&models.TeamMember{},
		&models.Attendance{},
		&models.ActiveUser{},
		&models.DataVersion{},
		&models.EmailCode{},
	); err != nil {
		return err
	}
	// seed the single data_version row
	return db.Where(models.DataVersion{ID: 1}).
		FirstOrCreate(&models.DataVersion{ID: 1, Version: 1}).Error
}
