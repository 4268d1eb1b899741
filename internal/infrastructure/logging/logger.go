package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/config"
)

// Component names for child loggers. Each appears as the "logger" key.
const (
	ComponentServer  = "server"
	ComponentHTTP    = "http"
	ComponentWS      = "ws"
	ComponentCatalog = "catalog"
	ComponentTrace   = "trace"
)

const serviceName = "retrodesk"

// Config selects level, encoding and destination.
type Config struct {
	Level       string // debug, info, warn, error
	Development bool   // console encoding, stack traces from warn
	Output      string // stdout, stderr or a file path
}

// Logger is the root service logger. Components log through children
// created with Component.
type Logger struct {
	*zap.Logger
	level zap.AtomicLevel
}

// FromConfig builds the root logger from the environment configuration
func FromConfig(cfg config.LogConfig) (*Logger, error) {
	return New(Config{
		Level:       cfg.Level,
		Development: cfg.Development,
		Output:      cfg.Output,
	})
}

// New builds a logger writing to cfg.Output
func New(cfg Config) (*Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	sink, _, err := zap.Open(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %q: %w", cfg.Output, err)
	}

	encoder := zapcore.NewJSONEncoder(jsonEncoding())
	stackLevel := zapcore.ErrorLevel
	if cfg.Development {
		encoder = zapcore.NewConsoleEncoder(consoleEncoding())
		stackLevel = zapcore.WarnLevel
	}

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(stackLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}

	base := zap.New(zapcore.NewCore(encoder, sink, level), opts...)
	if !cfg.Development {
		base = base.With(zap.String("service", serviceName))
	}
	return &Logger{Logger: base, level: level}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.FatalLevel)}
}

// Component returns the child logger for one part of the server
func (l *Logger) Component(name string) *zap.Logger {
	return l.Logger.Named(name)
}

// SetLevel changes the level of this logger and every child
func (l *Logger) SetLevel(level string) error {
	return l.level.UnmarshalText([]byte(level))
}

// Level returns the current minimum level
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

func jsonEncoding() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.MillisDurationEncoder
	return enc
}

func consoleEncoding() zapcore.EncoderConfig {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	enc.EncodeDuration = zapcore.StringDurationEncoder
	return enc
}
