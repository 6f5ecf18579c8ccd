package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

//go:generate mockgen -source=orm.go -destination=../../../test/unit/doubles/infra/sql/orm_mock.go -package=sql -mock_names=ORM=MockORM

// ORM is the subset of gorm the repositories use. Every call returns a new scope.
type ORM interface {
	AutoMigrate(dst ...any) error
	Count(count *int64) ORM
	Create(value any) ORM
	Find(dest any, conds ...any) ORM
	First(dest any, conds ...any) ORM
	Limit(limit int) ORM
	Model(value any) ORM
	Order(value any) ORM
	Save(value any) ORM
	Where(query any, args ...any) ORM
	WithContext(ctx context.Context) ORM
	WithTimeout(ctx context.Context, timeout time.Duration) ORM

	Error() error
}

type DB struct {
	*gorm.DB
	autoMigrationEnabled bool
	timeout              time.Duration
}

var (
	ErrRecordNotFound = errors.New("record not found")
)

func (d DB) Error() error {
	switch {
	case errors.Is(d.DB.Error, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case d.DB.Error != nil:
		return fmt.Errorf("database error: %w", d.DB.Error)
	default:
		return nil
	}
}

var _ ORM = (*DB)(nil)

func (d DB) AutoMigrate(dst ...any) error {
	if d.autoMigrationEnabled {
		return d.DB.AutoMigrate(dst...)
	}

	return nil
}

func (d DB) Count(value *int64) ORM {
	d.DB = d.DB.Count(value)
	return &d
}

func (d DB) Create(value any) ORM {
	d.setSpanAttributes("create")
	d.DB = d.DB.Create(value)
	return &d
}

func (d DB) Find(value any, conds ...any) ORM {
	d.setSpanAttributes("find")
	d.DB = d.DB.Find(value, conds...)
	return &d
}

func (d DB) First(value any, conds ...any) ORM {
	d.setSpanAttributes("first")
	d.DB = d.DB.First(value, conds...)
	return &d
}

func (d DB) Limit(value int) ORM {
	d.DB = d.DB.Limit(value)
	return &d
}

func (d DB) Model(value any) ORM {
	d.DB = d.DB.Model(value)
	return &d
}

func (d DB) Order(value any) ORM {
	d.DB = d.DB.Order(value)
	return &d
}

func (d DB) Save(value any) ORM {
	d.setSpanAttributes("save")
	d.DB = d.DB.Save(value)
	return &d
}

func (d DB) Where(value any, conds ...any) ORM {
	d.DB = d.DB.Where(value, conds...)
	return &d
}

// WithContext applies the configured query timeout, if any.
func (d DB) WithContext(ctx context.Context) ORM {
	if d.timeout > 0 {
		return d.WithTimeout(ctx, d.timeout)
	}

	d.DB = d.DB.WithContext(ctx)
	return &d
}

// WithTimeout releases the timer once the deadline passes or ctx is done.
func (d DB) WithTimeout(ctx context.Context, timeout time.Duration) ORM {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	context.AfterFunc(timeoutCtx, cancel)
	d.DB = d.DB.WithContext(timeoutCtx)
	return &d
}

func (d DB) setSpanAttributes(operation string) {
	if ctx := d.DB.Statement.Context; ctx != nil {
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(
				attribute.String("span.kind", "client"),
				attribute.String("component", "database"),
				attribute.String("db.system", d.DB.Dialector.Name()),
				attribute.String("db.operation", operation),
			)
		}
	}
}
