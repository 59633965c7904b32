package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"stayhub/database/repository"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateIfNoConflict inserts the booking only if no consuming booking
// overlaps its date range. The overlap re-check and the insert run in one
// Mongo transaction, so of two concurrent creations for overlapping dates
// at most one commits; the loser gets ErrDateConflict.
func (r *MongoBookingRepo) CreateIfNoConflict(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		conflictFilter := bson.M{
			"listingId":      booking.ListingID,
			"status":         bson.M{"$in": models.ConsumingStatuses},
			"dates.checkIn":  bson.M{"$lt": booking.Dates.CheckOut},
			"dates.checkOut": bson.M{"$gt": booking.Dates.CheckIn},
		}
		n, err := r.coll.CountDocuments(sc, conflictFilter)
		if err != nil {
			return fmt.Errorf("conflict re-check failed: %w", err)
		}
		if n > 0 {
			return repository.ErrDateConflict
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == repository.ErrDateConflict {
			return repository.ErrDateConflict
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}

// UpdateStatusCAS performs a compare-and-set status update: the update
// document applies only while the booking still holds fromStatus. Two actors
// racing a transition therefore cannot both win; the loser must re-read.
func (r *MongoBookingRepo) UpdateStatusCAS(id, fromStatus string, set bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	filter := bson.M{"id": id, "status": fromStatus}

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking status for id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrStaleStatus
	}
	return nil
}
