package middleware

import (
	"context"
	"net/http"
	"strings"

	"stayhub/utils"

	userRepo "stayhub/database/repository/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set for downstream handlers.
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

// JWTAuthMiddleware authenticates requests with a Bearer token. The token
// hash is checked against the Redis session cache first and falls back to
// the user document, so a revoked token dies even if the cache is cold.
func JWTAuthMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		if !sessionMatches(userID, computedHash, repo) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUserRole, role)
		c.Next()
	}
}

// sessionMatches verifies the token hash against the cached session, falling
// back to the stored user document on a cache miss.
func sessionMatches(userID, computedHash string, repo userRepo.UserRepository) bool {
	if client := utils.AuthCacheClient; client != nil {
		cached, err := client.Get(context.Background(), utils.AuthCachePrefix+userID).Result()
		if err == nil {
			return cached == computedHash
		}
	}

	u, err := repo.GetByID(userID)
	if err != nil {
		zap.L().Warn("auth fallback lookup failed", zap.String("userId", userID), zap.Error(err))
		return false
	}
	if u.TokenHash == "" || u.TokenHash != computedHash {
		return false
	}

	// Repopulate the cache so the next request skips the database.
	if client := utils.AuthCacheClient; client != nil {
		_ = client.Set(context.Background(), utils.AuthCachePrefix+userID, u.TokenHash, utils.AuthCacheTTL).Err()
	}
	return true
}
