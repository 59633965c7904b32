// Package bookingRepo persists bookings in MongoDB. All status writes go
// through the compare-and-set update in transaction.go; creation goes
// through the transactional conflict guard so two concurrent requests for
// overlapping dates can never both commit.
package bookingRepo

import (
	"context"
	"time"

	"stayhub/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.DB().Collection("bookings")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
