// Package listingRepo persists listings in MongoDB.
package listingRepo

import (
	"context"
	"time"

	"stayhub/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoListingRepo implements ListingRepository using MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}

// NewMongoListingRepo constructs a new instance of MongoListingRepo.
func NewMongoListingRepo() *MongoListingRepo {
	return &MongoListingRepo{coll: database.DB().Collection("listings")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
