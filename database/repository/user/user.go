// Package userRepo persists user accounts in MongoDB.
package userRepo

import (
	"context"
	"time"

	"stayhub/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new instance of MongoUserRepo.
func NewMongoUserRepo() *MongoUserRepo {
	return &MongoUserRepo{coll: database.DB().Collection("users")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
