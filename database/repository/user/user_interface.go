package userRepo

import (
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	ListAll(page, limit int) ([]models.User, int64, error)
}
