package user

import (
	"errors"
	"fmt"
	"time"

	"stayhub/database/repository"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// profileFields are the only fields UpdateProfile will write. Role, email
// and credentials change through dedicated paths.
var profileFields = map[string]bool{
	"name":   true,
	"phone":  true,
	"avatar": true,
}

// GetProfile returns the user's public document.
func (s *DefaultUserService) GetProfile(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, UserNotFoundError{ID: userID}
		}
		return nil, err
	}
	pub := u.PublicProfile()
	return &pub, nil
}

// UpdateProfile applies a whitelisted partial update to the user's profile.
func (s *DefaultUserService) UpdateProfile(userID string, updates map[string]interface{}) (*models.User, error) {
	set := bson.M{}
	for field, value := range updates {
		if profileFields[field] {
			set[field] = value
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no updatable fields supplied")
	}
	set["updatedAt"] = time.Now()

	if err := s.Repo.UpdateSetDocument(userID, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, UserNotFoundError{ID: userID}
		}
		return nil, err
	}
	return s.GetProfile(userID)
}

// PromoteToHost grants the host role. Idempotent; admins keep their role.
func (s *DefaultUserService) PromoteToHost(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, UserNotFoundError{ID: userID}
		}
		return nil, err
	}
	if u.Role == models.RoleUser {
		if err := s.Repo.UpdateSetDocument(userID, bson.M{"role": models.RoleHost, "updatedAt": time.Now()}); err != nil {
			return nil, err
		}
		u.Role = models.RoleHost
	}
	pub := u.PublicProfile()
	return &pub, nil
}
