package bookingRepo

import (
	"errors"
	"fmt"
	"time"

	"stayhub/database/repository"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID fetches a booking document by ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// FindConsumingOverlaps returns consuming bookings for the listing whose
// stored [checkIn, checkOut) strictly overlaps [start, end).
func (r *MongoBookingRepo) FindConsumingOverlaps(listingID string, start, end time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"listingId":      listingID,
		"status":         bson.M{"$in": models.ConsumingStatuses},
		"dates.checkIn":  bson.M{"$lt": end},
		"dates.checkOut": bson.M{"$gt": start},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) list(query bson.M, filter ListFilter, page, limit int) ([]models.Booking, int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		dateRange := bson.M{}
		if filter.StartDate != nil {
			dateRange["$gte"] = filter.StartDate
		}
		if filter.EndDate != nil {
			dateRange["$lte"] = filter.EndDate
		}
		query["dates.checkIn"] = dateRange
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortDir := -1
	if filter.SortOrder == "asc" {
		sortDir = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: sortDir}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

// ListByGuest returns a page of a guest's bookings.
func (r *MongoBookingRepo) ListByGuest(guestID string, filter ListFilter, page, limit int) ([]models.Booking, int64, error) {
	return r.list(bson.M{"guestId": guestID}, filter, page, limit)
}

// ListByHost returns a page of bookings received by a host.
func (r *MongoBookingRepo) ListByHost(hostID string, filter ListFilter, page, limit int) ([]models.Booking, int64, error) {
	return r.list(bson.M{"hostId": hostID}, filter, page, limit)
}

// ListAll returns a page of all bookings (admin use).
func (r *MongoBookingRepo) ListAll(filter ListFilter, page, limit int) ([]models.Booking, int64, error) {
	return r.list(bson.M{}, filter, page, limit)
}
