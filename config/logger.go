package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	platformerrors "github.com/jmgilman/go/fs/entity/errors"
)

// NewLogger builds a zap logger from the logging settings. Development mode
// logs in color to the console; otherwise output is JSON.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "invalid log level")
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       c.Logging.Development,
		Encoding:          encoding(c.Logging.Development),
		EncoderConfig:     encoderConfig(c.Logging.Development),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !c.Logging.Development,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInternal, "failed to build logger")
	}
	return logger, nil
}

func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

func encoding(development bool) string {
	if development {
		return "console"
	}
	return "json"
}

func encoderConfig(development bool) zapcore.EncoderConfig {
	if development {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}
