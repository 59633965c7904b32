package listingRepo

import (
	"fmt"
	"time"

	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Search returns a page of active listings matching the filter.
func (r *MongoListingRepo) Search(filter SearchFilter, page, limit int) ([]models.Listing, int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}

	query := bson.M{"status": models.ListingStatusActive}

	if filter.HostID != "" {
		query["hostId"] = filter.HostID
	}
	if filter.Location != "" {
		regex := primitive.Regex{Pattern: filter.Location, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"location.city": regex},
			bson.M{"location.state": regex},
			bson.M{"location.country": regex},
		}
	}
	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		price := bson.M{}
		if filter.MinPrice > 0 {
			price["$gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			price["$lte"] = filter.MaxPrice
		}
		query["price"] = price
	}
	if filter.PropertyType != "" {
		query["propertyType"] = filter.PropertyType
	}
	if filter.RoomType != "" {
		query["roomType"] = filter.RoomType
	}
	if filter.MinGuests > 0 {
		query["capacity.guests"] = bson.M{"$gte": filter.MinGuests}
	}
	if len(filter.Amenities) > 0 {
		query["amenities"] = bson.M{"$in": filter.Amenities}
	}

	// Exclude listings with a host block touching the requested range. The
	// inclusive-boundary sub-cases mirror models.Listing.IsAvailable.
	if filter.CheckIn != nil && filter.CheckOut != nil {
		query["availability.blockedDates"] = bson.M{
			"$not": bson.M{
				"$elemMatch": bson.M{
					"$or": bson.A{
						bson.M{"startDate": bson.M{"$lte": filter.CheckIn}, "endDate": bson.M{"$gte": filter.CheckIn}},
						bson.M{"startDate": bson.M{"$lte": filter.CheckOut}, "endDate": bson.M{"$gte": filter.CheckOut}},
						bson.M{"startDate": bson.M{"$gte": filter.CheckIn}, "endDate": bson.M{"$lte": filter.CheckOut}},
					},
				},
			},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
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
		return nil, 0, fmt.Errorf("failed to search listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, total, nil
}

// ListByHost returns a page of a host's listings, newest first.
func (r *MongoListingRepo) ListByHost(hostID string, page, limit int) ([]models.Listing, int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := bson.M{"hostId": hostID}
	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count host listings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list host listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode host listings: %w", err)
	}
	return listings, total, nil
}

// CountByHost returns the number of listings owned by a host.
func (r *MongoListingRepo) CountByHost(hostID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{"hostId": hostID})
	if err != nil {
		return 0, fmt.Errorf("failed to count host listings: %w", err)
	}
	return total, nil
}
