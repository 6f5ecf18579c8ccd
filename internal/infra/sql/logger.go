package sql

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	slog.Warn("database", slog.String("detail", fmt.Sprintf(format, args...)))
}

// newLogger reports slow queries and errors through slog. Missing records are an expected
// outcome for the journal and are not logged.
func newLogger() logger.Interface {
	return logger.New(slogWriter{}, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
