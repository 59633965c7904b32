package listingRepo

import (
	"errors"
	"fmt"
	"time"

	"stayhub/database/repository"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new listing document.
func (r *MongoListingRepo) Create(listing *models.Listing) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// GetByID fetches a listing document by ID.
func (r *MongoListingRepo) GetByID(id string) (*models.Listing, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var listing models.Listing
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&listing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch listing with id %s: %w", id, err)
	}
	return &listing, nil
}

// Update replaces the mutable fields of a listing document.
func (r *MongoListingRepo) Update(listing *models.Listing) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	listing.UpdatedAt = time.Now()
	filter := bson.M{"id": listing.ID}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": listing})
	if err != nil {
		return fmt.Errorf("failed to update listing with id %s: %w", listing.ID, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a listing document by its ID.
func (r *MongoListingRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete listing with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
