package cache

import (
	"context"
	"os"
	"testing"

	"github.com/ghuser/cheeseshop/pkg/config"
)

func newTestClient(t *testing.T) *RedisClient {
	t.Helper()
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	rc, err := NewRedisClient(context.Background(), &config.Config{RedisURL: redisURL})
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), &config.Config{RedisURL: "not-a-valid-url"})
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(context.Background(), &config.Config{RedisURL: "redis://localhost:19999"})
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

func TestRedisClient_CloseZeroValue(t *testing.T) {
	var rc RedisClient
	if err := rc.Close(); err != nil {
		t.Fatalf("Close on zero value: %v", err)
	}
}

func TestRedisIntegration(t *testing.T) {
	rc := newTestClient(t)

	if err := rc.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if rc.Client() == nil {
		t.Fatal("expected non-nil underlying client")
	}
}

func TestClientOptions(t *testing.T) {
	tests := []struct {
		name        string
		poolSize    int
		wantPool    int
		wantMinIdle int
	}{
		{name: "default pool", wantPool: defaultPoolSize, wantMinIdle: 2},
		{name: "configured pool", poolSize: 25, wantPool: 25, wantMinIdle: 5},
		{name: "tiny pool keeps one idle", poolSize: 2, wantPool: 2, wantMinIdle: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := clientOptions(&config.Config{RedisURL: "redis://localhost:6379/3", RedisPoolSize: tt.poolSize})
			if err != nil {
				t.Fatalf("clientOptions: %v", err)
			}
			if opts.PoolSize != tt.wantPool || opts.MinIdleConns != tt.wantMinIdle {
				t.Errorf("pool = %d/%d, want %d/%d", opts.PoolSize, opts.MinIdleConns, tt.wantPool, tt.wantMinIdle)
			}
			if opts.DB != 3 {
				t.Errorf("DB = %d, want 3", opts.DB)
			}
		})
	}
}
