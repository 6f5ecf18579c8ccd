package sql

import (
	"fmt"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver string
	// DSN is the sqlite database name or the postgres connection string.
	DSN          string
	QueryTimeout time.Duration
}

// Open connects the ORM selected by cfg.Driver. Tables are migrated on first use.
func Open(cfg Config) (ORM, error) {
	var (
		db  *DB
		err error
	)
	switch cfg.Driver {
	case "", DriverSQLite:
		db, err = NewMemoryORM(cfg.DSN)
	case DriverPostgres:
		db, err = NewPostgresORM(cfg.DSN)
	default:
		return nil, fmt.Errorf("database driver %q not supported", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	db.timeout = cfg.QueryTimeout
	return db, nil
}
