package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-redis-url"); err == nil {
		t.Fatal("expected an error for an invalid URL")
	}
}

func TestGetOnUnreachableServerReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewFromClient(client)
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "verdict:abc")
	if err == nil {
		t.Fatal("expected a connection error")
	}
	if ok {
		t.Error("ok should be false on error")
	}
}

func TestDeleteOnUnreachableServerReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewFromClient(client)
	defer c.Close()

	if err := c.Delete(context.Background(), "verdict:abc"); err == nil {
		t.Fatal("expected a connection error")
	}
}
