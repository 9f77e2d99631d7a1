package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"youthBanking/domain"

	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestTokenRepositoryLifecycle(t *testing.T) {
	repo := NewTokenRepository(testClient(t))
	ctx := context.Background()
	userID := "test-" + time.Now().Format("150405.000000")

	first := domain.TokenData{UserID: userID, Role: "customer", Token: "tok-1", IssuedAt: time.Now()}
	if err := repo.StoreToken(ctx, userID, "tok-1", first, time.Minute); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := repo.ValidateToken(ctx, "tok-1")
	if err != nil || got != userID {
		t.Fatalf("validate: %q %v", got, err)
	}

	second := domain.TokenData{UserID: userID, Role: "customer", Token: "tok-2", IssuedAt: time.Now()}
	if err := repo.StoreToken(ctx, userID, "tok-2", second, time.Minute); err != nil {
		t.Fatalf("store second: %v", err)
	}
	if _, err := repo.ValidateToken(ctx, "tok-1"); err == nil {
		t.Fatal("previous token should be revoked after a new login")
	}

	if err := repo.DeleteToken(ctx, userID, "tok-2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.ValidateToken(ctx, "tok-2"); err == nil {
		t.Fatal("token should be gone after logout")
	}
}
