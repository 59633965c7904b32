package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stayhub/database/repository"
	"stayhub/models"
	"stayhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Register creates an account and signs the user in. New accounts always
// start with the plain user role; hosting is granted separately.
func (s *DefaultUserService) Register(name, email, password, phone string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.Error("Register: duplicate check failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, DuplicateEmailError{Email: email}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Persist first: a failed insert must not leave a cached session behind.
	if err := s.Repo.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	token, err := issueSession(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateSetDocument(u.ID, bson.M{"tokenHash": u.TokenHash}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	logger.Info("user registered", zap.String("userId", u.ID), zap.String("email", email))
	return &AuthResponse{User: u.PublicProfile(), Token: token}, nil
}
