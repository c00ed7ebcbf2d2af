package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/cookmate/cookmate/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisTokenRevokerUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	revoker := service.NewRedisTokenRevoker(client)
	ctx := context.Background()

	assert.Error(t, revoker.Revoke(ctx, "jti", time.Minute))
	_, err := revoker.IsRevoked(ctx, "jti")
	assert.Error(t, err)

	// Already-expired tokens need no entry.
	assert.NoError(t, revoker.Revoke(ctx, "jti", 0))
}
