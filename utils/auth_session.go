package utils

import (
	"context"
	"time"
)

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthSessionTTL bounds how long a verified token hash stays cached before
// the next request falls back to the database check.
const AuthSessionTTL = time.Hour

// CacheAuthTokenHash stores the account's current token hash in the auth
// cache. Logging in overwrites the previous hash, so older tokens stop
// verifying immediately.
func CacheAuthTokenHash(accountID, tokenHash string) error {
	if AuthCacheClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return AuthCacheClient.Set(ctx, AuthCachePrefix+accountID, tokenHash, AuthSessionTTL).Err()
}

// ClearAuthTokenHash drops the cached token hash, forcing the next request
// through the database check.
func ClearAuthTokenHash(accountID string) error {
	if AuthCacheClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return AuthCacheClient.Del(ctx, AuthCachePrefix+accountID).Err()
}
