package cache

import (
	"testing"
	"time"

	"dontverifyme/internal/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v7"
)

func newTestInstance(t *testing.T) *Instance {
	t.Helper()
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %s", err)
	}
	t.Cleanup(server.Close)
	return &Instance{
		Client:      redis.NewClient(&redis.Options{Addr: server.Addr()}),
		ServiceLogs: common.GetNoopServiceLog(),
	}
}

func TestInstanceSetGet(t *testing.T) {
	cache := newTestInstance(t)

	if err := cache.Set("session:user-a:sess-1", "aal1", time.Minute); err != nil {
		t.Fatalf("failed to set key: %s", err)
	}
	value, err := cache.Get("session:user-a:sess-1")
	if err != nil {
		t.Fatalf("failed to get key: %s", err)
	}
	if value != "aal1" {
		t.Errorf("expected value 'aal1', got '%s'", value)
	}
}

func TestInstanceGetMissingKey(t *testing.T) {
	cache := newTestInstance(t)
	if _, err := cache.Get("does-not-exist"); err == nil {
		t.Error("expected getting a missing key to fail")
	}
}

func TestInstanceScan(t *testing.T) {
	cache := newTestInstance(t)

	for _, key := range []string{"session:user-a:s1", "session:user-a:s2", "session:user-b:s3"} {
		if err := cache.Set(key, "aal1", time.Minute); err != nil {
			t.Fatalf("failed to set key[%s]: %s", key, err)
		}
	}
	keys, err := cache.Scan("session:user-a:*")
	if err != nil {
		t.Fatalf("failed to scan keys: %s", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 keys, got %v: %v", len(keys), keys)
	}
}

func TestInstanceDel(t *testing.T) {
	cache := newTestInstance(t)

	if err := cache.Set("challenge:abc", "factor-id", time.Minute); err != nil {
		t.Fatalf("failed to set key: %s", err)
	}
	if err := cache.Del("challenge:abc"); err != nil {
		t.Fatalf("failed to delete key: %s", err)
	}
	if _, err := cache.Get("challenge:abc"); err == nil {
		t.Error("expected the deleted key to be gone")
	}
}
