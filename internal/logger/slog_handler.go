package logger

import (
	"context"
	"log/slog"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ slog.Handler = (*Handler)(nil)

// Handler writes slog records to a zap core so that packages logging through slog end up
// in the same output as the zap logger.
type Handler struct {
	core   zapcore.Core
	prefix string
}

func NewHandler(core zapcore.Core) *Handler {
	return &Handler{core: core}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.core.Enabled(zapLevel(level))
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	entry := zapcore.Entry{
		Level:   zapLevel(record.Level),
		Time:    record.Time,
		Message: record.Message,
	}
	if record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		entry.Caller = zapcore.NewEntryCaller(frame.PC, frame.File, frame.Line, true)
	}

	checked := h.core.Check(entry, nil)
	if checked == nil {
		return nil
	}

	fields := make([]zap.Field, 0, record.NumAttrs())
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendAttr(fields, h.prefix, attr)
		return true
	})
	checked.Write(fields...)
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		fields = appendAttr(fields, h.prefix, attr)
	}
	return &Handler{core: h.core.With(fields), prefix: h.prefix}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &Handler{core: h.core, prefix: h.prefix + name + "."}
}

func appendAttr(fields []zap.Field, prefix string, attr slog.Attr) []zap.Field {
	value := attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return fields
	}

	key := prefix + attr.Key
	switch value.Kind() {
	case slog.KindGroup:
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = key + "."
		}
		for _, nested := range value.Group() {
			fields = appendAttr(fields, groupPrefix, nested)
		}
		return fields
	case slog.KindString:
		return append(fields, zap.String(key, value.String()))
	case slog.KindInt64:
		return append(fields, zap.Int64(key, value.Int64()))
	case slog.KindUint64:
		return append(fields, zap.Uint64(key, value.Uint64()))
	case slog.KindFloat64:
		return append(fields, zap.Float64(key, value.Float64()))
	case slog.KindBool:
		return append(fields, zap.Bool(key, value.Bool()))
	case slog.KindDuration:
		return append(fields, zap.Duration(key, value.Duration()))
	case slog.KindTime:
		return append(fields, zap.Time(key, value.Time()))
	default:
		if err, ok := value.Any().(error); ok {
			return append(fields, zap.NamedError(key, err))
		}
		return append(fields, zap.Any(key, value.Any()))
	}
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
