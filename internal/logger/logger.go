// Package logger builds the zap loggers shared by the catalog processes.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/narwhalmedia/catalog/internal/config"
)

// New builds the process logger. Production environments get the JSON-ready
// production preset; everything else gets the development preset.
func New(server config.ServerConfig, cfg config.LoggerConfig) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if server.Environment == "production" {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	zc.Encoding = "console"
	if cfg.Format == "json" {
		zc.Encoding = "json"
	}

	zc.InitialFields = map[string]interface{}{
		"service": server.Name,
		"env":     server.Environment,
	}
	zc.OutputPaths = []string{"stdout"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}

	if hostname, err := os.Hostname(); err == nil {
		logger = logger.With(zap.String("hostname", hostname))
	}
	return logger, nil
}

// WithRequest returns a logger carrying the request id, when present.
func WithRequest(logger *zap.Logger, requestID string) *zap.Logger {
	if requestID == "" {
		return logger
	}
	return logger.With(zap.String("request_id", requestID))
}

// WithDelivery returns a logger annotated with a broker delivery's identity.
func WithDelivery(logger *zap.Logger, transport string, tag uint64) *zap.Logger {
	return logger.With(
		zap.String("transport", transport),
		zap.Uint64("delivery_tag", tag),
	)
}
