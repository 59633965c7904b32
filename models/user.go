package models

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

// User represents a platform account. A user becomes a host by publishing
// listings; admins are provisioned out of band.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar       string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile strips credentials before a user document leaves the API.
func (u User) PublicProfile() User {
	u.Password = ""
	u.PasswordHash = ""
	u.TokenHash = ""
	return u
}

// IsAdmin reports whether the user carries admin permission.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
