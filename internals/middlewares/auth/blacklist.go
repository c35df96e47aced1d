package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "kelasku:revoked:"

func revokedKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return revokedPrefix + hex.EncodeToString(sum[:])
}

// RedisBlacklist: checker untuk AuthJWTOpts.BlacklistChecker.
func RedisBlacklist(rdb *redis.Client) func(rawToken string) (bool, error) {
	return func(raw string) (bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		n, err := rdb.Exists(ctx, revokedKey(raw)).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

// RevokeToken: tandai token sampai ttl (biasanya sisa umur exp).
func RevokeToken(ctx context.Context, rdb *redis.Client, raw string, ttl time.Duration) error {
	return rdb.Set(ctx, revokedKey(raw), 1, ttl).Err()
}
