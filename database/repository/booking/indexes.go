package bookingRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes required by the booking collection. The
// compound listingId + status + dates index backs both the conflict check in
// CreateIfNoConflict and FindConsumingOverlaps.
func (r *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "listingId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "dates.checkIn", Value: 1},
				{Key: "dates.checkOut", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "guestId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "hostId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
