package utils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestHealthMonitorProbe(t *testing.T) {
	mr := miniredis.RunT(t)
	up := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { up.Close(); down.Close() })

	m := NewHealthMonitor([]*redis.Client{up}, nil)
	assert.True(t, m.Probe(context.Background()).Healthy())
	assert.Nil(t, m.Status().Mongo)
	assert.False(t, m.Status().CheckedAt.IsZero())

	m = NewHealthMonitor([]*redis.Client{up, down}, nil)
	status := m.Probe(context.Background())
	assert.Equal(t, []bool{true, false}, status.Redis)
	assert.False(t, status.Healthy())
}
