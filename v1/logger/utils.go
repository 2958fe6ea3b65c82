package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// callerSkip hides the exported method and write from the reported caller.
const callerSkip = 2

// Debug logs at debug level.
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.DebugLevel, msg, err, fields)
}

// Info logs at info level.
//
// Example:
//
//	log.Info("MongoDB client initialized", nil, map[string]interface{}{
//	    "database": "shop",
//	})
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.InfoLevel, msg, err, fields)
}

// Warn logs at warn level.
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.WarnLevel, msg, err, fields)
}

// Error logs at error level.
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.ErrorLevel, msg, err, fields)
}

// Fatal logs at fatal level and then calls os.Exit(1).
func (l *LoggerClient) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.FatalLevel, msg, err, fields)
}

// DebugWithContext is Debug with the trace and span IDs from ctx attached.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.DebugLevel, msg, err, fields)
}

// InfoWithContext is Info with the trace and span IDs from ctx attached.
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.InfoLevel, msg, err, fields)
}

// WarnWithContext is Warn with the trace and span IDs from ctx attached.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.WarnLevel, msg, err, fields)
}

// ErrorWithContext is Error with the trace and span IDs from ctx attached.
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.ErrorLevel, msg, err, fields)
}

func (l *LoggerClient) write(ctx context.Context, lvl zapcore.Level, msg string, err error, fields []map[string]interface{}) {
	ce := l.Zap.Check(lvl, msg)
	if ce == nil {
		return
	}
	ce.Write(l.zapFields(ctx, err, fields)...)
}

// zapFields flattens the error, the field maps and, when enabled, the trace
// context of ctx into zap fields. Later maps override earlier keys.
func (l *LoggerClient) zapFields(ctx context.Context, err error, fields []map[string]interface{}) []zap.Field {
	var out []zap.Field
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			out = append(out, zap.Any(key, value))
		}
	}

	if !l.tracingEnabled || ctx == nil {
		return out
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		out = append(out,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return out
}
