package bookingRepo

import (
	"fmt"
	"time"

	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// revenueStatuses are the statuses counted toward a host's earnings.
var revenueStatuses = []string{
	models.BookingStatusConfirmed,
	models.BookingStatusPaid,
	models.BookingStatusCheckedIn,
	models.BookingStatusCheckedOut,
	models.BookingStatusCompleted,
}

// StatsByUser groups a user's bookings by status, summing count and revenue
// in a single aggregation pipeline.
func (r *MongoBookingRepo) StatsByUser(userID, role string) ([]models.StatusCount, int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	matchField := "guestId"
	if role == models.RoleHost {
		matchField = "hostId"
	}
	match := bson.M{matchField: userID}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":          "$status",
			"count":        bson.M{"$sum": 1},
			"totalRevenue": bson.M{"$sum": "$pricing.total"},
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}
	defer cursor.Close(ctx)

	var breakdown []models.StatusCount
	if err := cursor.All(ctx, &breakdown); err != nil {
		return nil, 0, fmt.Errorf("failed to decode booking stats: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return breakdown, total, nil
}

// RevenueByHost sums booking totals over revenue-bearing statuses.
func (r *MongoBookingRepo) RevenueByHost(hostID string) (float64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{
			"hostId": hostID,
			"status": bson.M{"$in": revenueStatuses},
		}},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$pricing.total"},
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate host revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("failed to decode host revenue: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

// RecentByHost returns the host's most recent bookings.
func (r *MongoBookingRepo) RecentByHost(hostID string, limit int) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"hostId": hostID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent host bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode recent host bookings: %w", err)
	}
	return bookings, nil
}

// UpcomingByGuest returns the guest's next stays, soonest first.
func (r *MongoBookingRepo) UpcomingByGuest(guestID string, from time.Time, limit int) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"guestId":       guestID,
		"dates.checkIn": bson.M{"$gte": from},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "dates.checkIn", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming guest bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode upcoming guest bookings: %w", err)
	}
	return bookings, nil
}

// CompletedByGuest returns the guest's finished stays and their total spend,
// computed in the store rather than application-side.
func (r *MongoBookingRepo) CompletedByGuest(guestID string) ([]models.Booking, float64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"guestId": guestID,
		"status":  bson.M{"$in": []string{models.BookingStatusCompleted, models.BookingStatusCheckedOut}},
	}

	opts := options.Find().SetSort(bson.D{{Key: "dates.checkOut", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch completed guest bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode completed guest bookings: %w", err)
	}

	pipeline := []bson.M{
		{"$match": filter},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$pricing.total"},
		}},
	}
	aggCursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to aggregate guest spend: %w", err)
	}
	defer aggCursor.Close(ctx)

	var result []struct {
		Total float64 `bson:"total"`
	}
	if err := aggCursor.All(ctx, &result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode guest spend: %w", err)
	}
	spend := 0.0
	if len(result) > 0 {
		spend = result[0].Total
	}
	return bookings, spend, nil
}

// CountByHost returns the number of bookings received by a host.
func (r *MongoBookingRepo) CountByHost(hostID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{"hostId": hostID})
	if err != nil {
		return 0, fmt.Errorf("failed to count host bookings: %w", err)
	}
	return total, nil
}

// CountByGuest returns the number of bookings made by a guest.
func (r *MongoBookingRepo) CountByGuest(guestID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{"guestId": guestID})
	if err != nil {
		return 0, fmt.Errorf("failed to count guest bookings: %w", err)
	}
	return total, nil
}
