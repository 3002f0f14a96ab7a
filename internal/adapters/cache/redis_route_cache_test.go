package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"route-view-service/internal/domain"
)

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisRouteCache(client, time.Hour)
	ctx := context.Background()

	path := []domain.Coordinates{
		{Lat: 35.1, Lng: 139.1},
		{Lat: 35.2, Lng: 139.2},
	}

	if err := c.Put(ctx, "139.1,35.1;139.2,35.2", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, "139.1,35.1;139.2,35.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != len(path) {
		t.Fatalf("path length = %d, want %d", len(got), len(path))
	}
	for i := range path {
		if got[i] != path[i] {
			t.Fatalf("path[%d] = %v, want %v", i, got[i], path[i])
		}
	}
}

func TestRedisRouteCacheMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisRouteCache(client, time.Hour)

	_, ok, err := c.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestRedisRouteCacheEntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisRouteCache(client, time.Minute)
	ctx := context.Background()

	path := []domain.Coordinates{{Lat: 35.1, Lng: 139.1}, {Lat: 35.2, Lng: 139.2}}
	if err := c.Put(ctx, "k", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("entry should have expired")
	}
}
