package sql

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresORM connects with dsn. VEHICLE_BRIDGE_POSTGRES_PASSWORD, when set, is appended
// so that the password stays out of the config file.
func NewPostgresORM(dsn string) (*DB, error) {
	pass, ok := os.LookupEnv("VEHICLE_BRIDGE_POSTGRES_PASSWORD")
	if ok {
		dsn = fmt.Sprintf("%s password=%s", dsn, pass)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newLogger()})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	return &DB{
		DB:                   gormDB,
		autoMigrationEnabled: true,
	}, nil
}
