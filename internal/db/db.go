package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/eventgenie/internal/config"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if cfg.DBDriver != "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("failed to get sql.DB: %v", err)
		}

		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func Open(driver, dsn string) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,

		// Bookings outlive the service they point at.
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	switch driver {
	case "postgres", "":
		gcfg.PrepareStmt = true
		return gorm.Open(postgres.Open(dsn), gcfg)
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(dsn), gcfg)
		if err != nil {
			return nil, err
		}
		// one writer keeps sqlite from returning SQLITE_BUSY under load
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Customer{}, "BookedServices", &models.CustomerBookedService{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Vendor{},
		&models.Customer{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
		&models.CustomerBookedService{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// at most one live booking per service and date
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_service_date
		ON bookings (service_id, booked_for_date)
		WHERE status <> 'cancelled'
	`).Error
}
