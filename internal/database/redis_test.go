package database

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-redis-url")
	if err == nil {
		t.Fatal("NewRedisClient() should fail for an invalid URL")
	}
	if !strings.Contains(err.Error(), "failed to parse Redis URL") {
		t.Errorf("NewRedisClient() error = %v, want parse error", err)
	}
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// nothing listens on port 1
	_, err := NewRedisClient(ctx, "redis://127.0.0.1:1/0")
	if err == nil {
		t.Fatal("NewRedisClient() should fail when Redis is unreachable")
	}
	if !strings.Contains(err.Error(), "failed to connect to Redis at 127.0.0.1:1") {
		t.Errorf("NewRedisClient() error = %v, want connect error", err)
	}
}
