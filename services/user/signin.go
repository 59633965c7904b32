package user

import (
	"context"
	"errors"
	"fmt"

	"stayhub/database/repository"
	"stayhub/models"
	"stayhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies credentials and issues a fresh session token. The
// stored token hash rotates on every sign-in, invalidating prior sessions.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, InvalidCredentialsError{}
		}
		logger.Error("Authenticate: lookup failed", zap.Error(err))
		return nil, fmt.Errorf("sign-in failed, please try again")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, InvalidCredentialsError{}
	}

	token, err := issueSession(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateSetDocument(u.ID, bson.M{"tokenHash": u.TokenHash}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	logger.Info("user signed in", zap.String("userId", u.ID))
	return &AuthResponse{User: u.PublicProfile(), Token: token}, nil
}

// RevokeToken clears the stored token hash and evicts the cached session,
// signing the user out everywhere.
func (s *DefaultUserService) RevokeToken(userID string) error {
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"tokenHash": ""}); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if client := utils.AuthCacheClient; client != nil {
		if err := client.Del(context.Background(), utils.AuthCachePrefix+userID).Err(); err != nil {
			utils.GetLogger().Warn("failed to evict cached session",
				zap.String("userId", userID), zap.Error(err))
		}
	}
	return nil
}

// issueSession signs a token for the user, stamps the matching hash onto the
// document in memory and caches it for the auth middleware.
func issueSession(u *models.User) (string, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, utils.AuthTokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	u.TokenHash = utils.HashToken(token)
	cacheSession(u.ID, u.TokenHash)
	return token, nil
}

func cacheSession(userID, tokenHash string) {
	client := utils.AuthCacheClient
	if client == nil {
		return
	}
	key := utils.AuthCachePrefix + userID
	if err := client.Set(context.Background(), key, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache session", zap.String("userId", userID), zap.Error(err))
	}
}
