package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/super0605/customer-service-platform-backend/internal/platform/cache"
)

func TestNewPingsTheServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := cache.New(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := mr.Get("k")
	if err != nil || got != "v" {
		t.Fatalf("expected k=v on the server, got %q err %v", got, err)
	}
}

func TestNewFailsWhenServerUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := cache.New(context.Background(), addr); err == nil {
		t.Fatal("expected a connection error")
	}
}
