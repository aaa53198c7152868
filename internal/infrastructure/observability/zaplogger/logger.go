package zaplogger

import (
	"cartpay/internal/observability"
	"go.uber.org/zap"
)

type logger struct{ l *zap.Logger }

// Wrap adapts an already-configured zap logger to the observability.Logger
// port. The binary owns the zap lifecycle (construction and Sync).
func Wrap(l *zap.Logger) observability.Logger {
	if l == nil {
		return observability.NopLogger()
	}
	return &logger{l: l}
}

func (z *logger) With(fields ...observability.Field) observability.Logger {
	if len(fields) == 0 {
		return &logger{l: z.l}
	}
	return &logger{l: z.l.With(toZapFields(fields)...)}
}

func (z *logger) Debug(msg string, fields ...observability.Field) {
	z.l.Debug(msg, toZapFields(fields)...)
}

func (z *logger) Info(msg string, fields ...observability.Field) {
	z.l.Info(msg, toZapFields(fields)...)
}

func (z *logger) Warn(msg string, fields ...observability.Field) {
	z.l.Warn(msg, toZapFields(fields)...)
}

func (z *logger) Error(msg string, fields ...observability.Field) {
	z.l.Error(msg, toZapFields(fields)...)
}

func toZapFields(fs []observability.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fs))
	for _, f := range fs {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
