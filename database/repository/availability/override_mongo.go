package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"drivebook/database"
	"drivebook/models"
)

// OverrideRepository defines methods for availability override data access.
// At most one override exists per instructor per calendar date, enforced by a
// unique compound index.
type OverrideRepository interface {
	// ListByInstructor returns all overrides for an instructor.
	ListByInstructor(instructorID string) ([]models.AvailabilityOverride, error)
	// ListByInstructorAndRange returns overrides with dates in [from, to].
	ListByInstructorAndRange(instructorID, from, to string) ([]models.AvailabilityOverride, error)
	// Upsert creates or replaces the override for the override's date.
	Upsert(override models.AvailabilityOverride) error
	// Delete removes the override for the given date.
	Delete(instructorID, date string) error
}

// MongoOverrideRepo implements OverrideRepository using MongoDB.
type MongoOverrideRepo struct {
	coll *mongo.Collection
}

// NewMongoOverrideRepo creates a new OverrideRepository backed by MongoDB.
func NewMongoOverrideRepo() OverrideRepository {
	repo := &MongoOverrideRepo{coll: database.Collection("availability_overrides")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOverrideRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "instructorId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoOverrideRepo) ListByInstructor(instructorID string) ([]models.AvailabilityOverride, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"instructorId": instructorID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides for instructor %s: %w", instructorID, err)
	}
	defer cursor.Close(ctx)

	var overrides []models.AvailabilityOverride
	if err := cursor.All(ctx, &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode overrides: %w", err)
	}
	return overrides, nil
}

func (r *MongoOverrideRepo) ListByInstructorAndRange(instructorID, from, to string) ([]models.AvailabilityOverride, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"instructorId": instructorID,
		"date":         bson.M{"$gte": from, "$lte": to},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides for instructor %s: %w", instructorID, err)
	}
	defer cursor.Close(ctx)

	var overrides []models.AvailabilityOverride
	if err := cursor.All(ctx, &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode overrides: %w", err)
	}
	return overrides, nil
}

func (r *MongoOverrideRepo) Upsert(override models.AvailabilityOverride) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"instructorId": override.InstructorID, "date": override.Date}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, override, opts); err != nil {
		return fmt.Errorf("failed to upsert override for %s on %s: %w", override.InstructorID, override.Date, err)
	}
	return nil
}

func (r *MongoOverrideRepo) Delete(instructorID, date string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"instructorId": instructorID, "date": date})
	if err != nil {
		return fmt.Errorf("failed to delete override for %s on %s: %w", instructorID, date, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
