package user

import (
	"stayhub/models"

	userRepo "stayhub/database/repository/user"
)

// AuthResponse pairs a public user document with a fresh token.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// UserService manages accounts and credentials.
type UserService interface {
	Register(name, email, password, phone string) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetProfile(userID string) (*models.User, error)
	UpdateProfile(userID string, updates map[string]interface{}) (*models.User, error)
	PromoteToHost(userID string) (*models.User, error)
	RevokeToken(userID string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
