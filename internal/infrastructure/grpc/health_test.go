package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func status(t *testing.T, s *HealthServer, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	resp, err := s.health.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.Status
}

func TestHealthServer_Refresh(t *testing.T) {
	brokerErr := errors.New("broker down")
	var failing bool
	s := NewHealthServer(0, map[string]Check{
		"database": func(context.Context) error { return nil },
		"broker": func(context.Context) error {
			if failing {
				return brokerErr
			}
			return nil
		},
	}, zaptest.NewLogger(t))

	s.Refresh(context.Background())
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, status(t, s, ConsumerService))

	failing = true
	s.Refresh(context.Background())
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, status(t, s, ConsumerService))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, status(t, s, "broker"))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, status(t, s, "database"))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, status(t, s, ""))
}
