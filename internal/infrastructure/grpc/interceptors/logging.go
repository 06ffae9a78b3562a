package interceptors

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Health probes arrive every few seconds; they are logged at debug level.
const healthPrefix = "/grpc.health.v1.Health/"

func levelFor(method string, err error) zapcore.Level {
	switch {
	case err != nil:
		return zapcore.WarnLevel
	case strings.HasPrefix(method, healthPrefix):
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// UnaryLoggingInterceptor logs unary RPC calls
func UnaryLoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		if ce := logger.Check(levelFor(info.FullMethod, err), "grpc request"); ce != nil {
			ce.Write(
				zap.String("method", info.FullMethod),
				zap.Duration("duration", time.Since(start)),
				zap.String("code", status.Code(err).String()),
				zap.Error(err),
			)
		}
		return resp, err
	}
}

// StreamLoggingInterceptor logs streaming RPC calls such as health watches
func StreamLoggingInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)

		if ce := logger.Check(levelFor(info.FullMethod, err), "grpc stream"); ce != nil {
			ce.Write(
				zap.String("method", info.FullMethod),
				zap.Duration("duration", time.Since(start)),
				zap.String("code", status.Code(err).String()),
				zap.Error(err),
			)
		}
		return err
	}
}
