package db

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/config"
	"github.com/salonkit/salon-admin/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.Client{},
		&models.Booking{},
		&models.History{},
	); err != nil {
		return nil, err
	}

	// The range exclusion constraint makes "no overlapping bookings per
	// employee" atomic at the store; the in-transaction check only exists to
	// produce a friendlier error before hitting it.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT FROM pg_constraint WHERE conname = 'bookings_no_overlap'
            ) THEN
                ALTER TABLE bookings
                ADD CONSTRAINT bookings_no_overlap
                EXCLUDE USING gist (
                    employee_id WITH =,
                    tstzrange(start_time, end_time) WITH &&
                );
            END IF;
        END
        $$
    `)

	db.Exec(`
        UPDATE organizations
        SET timezone = 'UTC'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db, nil
}
