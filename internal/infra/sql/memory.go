package sql

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const defaultMemoryDatabase = "vehicle_bridge"

// NewMemoryORM opens a named in-memory sqlite database. Connections opened with the same
// name share the data.
func NewMemoryORM(name string) (*DB, error) {
	if name == "" {
		name = defaultMemoryDatabase
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: newLogger()})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite in-memory db: %w", err)
	}

	return &DB{DB: gormDB, autoMigrationEnabled: true}, nil
}
