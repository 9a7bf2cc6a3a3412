package zap_adapter

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"orderflow/pkg/logger"
)

type ZapAdapter struct {
	logger *zap.Logger
}

type options struct {
	level   string
	service string
}

type Option func(*options)

// WithLevel sets the minimal level: debug, info, warn or error.
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithService adds a "service" field to every record.
func WithService(name string) Option {
	return func(o *options) {
		o.service = name
	}
}

func NewZapAdapter(opts ...Option) (*ZapAdapter, error) {
	o := options{level: "info"}
	for _, opt := range opts {
		opt(&o)
	}

	level, err := zapcore.ParseLevel(o.level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", o.level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Encoding = "json"
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)
	if err != nil {
		return nil, err
	}
	if o.service != "" {
		zapLogger = zapLogger.With(zap.String("service", o.service))
	}
	return &ZapAdapter{logger: zapLogger}, nil
}

// NewNop discards everything, used by tests and tooling.
func NewNop() *ZapAdapter {
	return &ZapAdapter{logger: zap.NewNop()}
}

func (z *ZapAdapter) Debug(msg string, fields ...logger.Field) {
	z.logger.Debug(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Info(msg string, fields ...logger.Field) {
	z.logger.Info(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Warn(msg string, fields ...logger.Field) {
	z.logger.Warn(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Error(msg string, fields ...logger.Field) {
	z.logger.Error(msg, convertFields(fields)...)
}

func (z *ZapAdapter) With(fields ...logger.Field) logger.Logger {
	return &ZapAdapter{
		logger: z.logger.With(convertFields(fields)...),
	}
}

func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

func convertFields(fields []logger.Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			zapFields = append(zapFields, zap.NamedError(f.Key, err))
			continue
		}
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return zapFields
}
