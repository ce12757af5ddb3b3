package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields are structured key/value pairs attached to a message.
type Fields map[string]interface{}

// Logger is what btrls components log through.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)

	// Trace is emitted at debug level with a "TRACE: " prefix, and only
	// once verbosity reaches 2.
	Trace(msg string)

	WithFields(fields Fields) Logger
}

// Config selects the threshold, encoding and destination of a Logger.
type Config struct {
	// Verbosity counts -v flags. Any value >= 1 enables debug messages and
	// >= 2 also enables trace messages.
	Verbosity int

	// Quiet hides info messages when Verbosity is 0.
	Quiet bool

	// Console writes human-readable lines instead of JSON objects.
	Console bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

const tracePrefix = "TRACE: "

type zapLogger struct {
	base      *zap.Logger
	verbosity int
}

// NewLogger builds a zap-backed Logger from cfg.
func NewLogger(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(newEncoder(cfg.Console), zapcore.AddSync(out), threshold(cfg))
	return &zapLogger{base: zap.New(core), verbosity: cfg.Verbosity}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return &zapLogger{base: zap.NewNop()}
}

func newEncoder(console bool) zapcore.Encoder {
	enc := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "ts",
		CallerKey:      "caller",
		NameKey:        "logger",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if console {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(enc)
	}
	enc.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(enc)
}

// threshold is the lowest level cfg lets through.
func threshold(cfg Config) zapcore.Level {
	if cfg.Verbosity > 0 {
		return zapcore.DebugLevel
	}
	if cfg.Quiet {
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

func (l *zapLogger) Debug(msg string) { l.base.Debug(msg) }
func (l *zapLogger) Info(msg string)  { l.base.Info(msg) }
func (l *zapLogger) Warn(msg string)  { l.base.Warn(msg) }
func (l *zapLogger) Error(msg string) { l.base.Error(msg) }

func (l *zapLogger) Trace(msg string) {
	if l.verbosity < 2 {
		return
	}
	l.base.Debug(tracePrefix + msg)
}

func (l *zapLogger) WithFields(fields Fields) Logger {
	if len(fields) == 0 {
		return l
	}

	zf := make([]zap.Field, 0, len(fields))
	for key, val := range fields {
		zf = append(zf, zap.Any(key, val))
	}
	return &zapLogger{base: l.base.With(zf...), verbosity: l.verbosity}
}
