package logging

import (
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes one JSON object per line: ts, level, msg, component and any fields.
type Logger struct {
	z *zap.Logger
}

func NewLogger(levelStr string) *Logger {
	return NewLoggerWithWriter(levelStr, os.Stderr)
}

func NewLoggerWithWriter(levelStr string, w io.Writer) *Logger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), parseLevel(levelStr))
	return &Logger{z: zap.New(core)}
}

func parseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{z: l.z.With(zap.String("component", name))}
}

func (l *Logger) Debugw(msg string, fields map[string]any) {
	l.z.Debug(msg, toZap(fields)...)
}

func (l *Logger) Infow(msg string, fields map[string]any) {
	l.z.Info(msg, toZap(fields)...)
}

func (l *Logger) Warnw(msg string, fields map[string]any) {
	l.z.Warn(msg, toZap(fields)...)
}

func (l *Logger) Errorw(msg string, fields map[string]any) {
	l.z.Error(msg, toZap(fields)...)
}

func (l *Logger) Sync() error {
	return l.z.Sync()
}

// fields are emitted in key order so log lines are stable.
func toZap(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
