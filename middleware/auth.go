package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	instructorRepo "drivebook/database/repository/instructor"
	learnerRepo "drivebook/database/repository/learner"
	"drivebook/utils"
)

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// JWTAuthInstructorMiddleware authenticates instructor requests and stores
// the instructor ID in the context.
func JWTAuthInstructorMiddleware(repo instructorRepo.InstructorRepository) gin.HandlerFunc {
	return requireRole("instructor", "instructorID", func(id string) (string, error) {
		instructor, err := repo.GetByID(id)
		if err != nil || instructor == nil {
			return "", err
		}
		return instructor.AuthToken, nil
	})
}

// JWTAuthLearnerMiddleware authenticates learner requests and stores the
// learner ID in the context.
func JWTAuthLearnerMiddleware(repo learnerRepo.LearnerRepository) gin.HandlerFunc {
	return requireRole("learner", "learnerID", func(id string) (string, error) {
		learner, err := repo.GetByID(id)
		if err != nil || learner == nil {
			return "", err
		}
		return learner.AuthToken, nil
	})
}

// requireRole validates the token signature and role claim, then checks the
// token hash against the current session: the auth cache first, the stored
// record on a cache miss. A hash mismatch means a newer login superseded
// this token.
func requireRole(role, contextKey string, storedTokenHash func(id string) (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		id, tokenRole, err := utils.ExtractIDAndRoleFromToken(tokenString)
		if err != nil || id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if tokenRole != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Wrong account type for this endpoint"})
			return
		}

		computedHash := utils.HashToken(tokenString)

		if authCache := utils.AuthCacheClient; authCache != nil {
			ctx := c.Request.Context()
			cacheKey := utils.AuthCachePrefix + id
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
					return
				}
				authCache.Expire(ctx, cacheKey, utils.AuthSessionTTL)
				c.Set(contextKey, id)
				c.Next()
				return
			}
			if err != redis.Nil {
				utils.GetLogger().Warn("auth cache unavailable, falling back to database",
					zap.Error(err))
			}
		}

		// Cache miss: verify against the stored hash, then repopulate.
		hash, err := storedTokenHash(id)
		if err != nil || hash == "" || hash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
			return
		}
		if err := utils.CacheAuthTokenHash(id, computedHash); err != nil {
			utils.GetLogger().Warn("failed to repopulate auth cache", zap.Error(err))
		}

		c.Set(contextKey, id)
		c.Next()
	}
}
