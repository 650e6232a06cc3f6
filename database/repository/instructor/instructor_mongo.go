package instructorRepo

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

// MongoInstructorRepo implements InstructorRepository using MongoDB.
type MongoInstructorRepo struct {
	coll *mongo.Collection
}

// NewMongoInstructorRepo creates a new InstructorRepository backed by MongoDB.
func NewMongoInstructorRepo() InstructorRepository {
	repo := &MongoInstructorRepo{coll: database.Collection("instructors")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoInstructorRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "postcode", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoInstructorRepo) GetByID(id string) (*models.Instructor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var instructor models.Instructor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&instructor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch instructor %s: %w", id, err)
	}
	return &instructor, nil
}

func (r *MongoInstructorRepo) GetByEmail(email string) (*models.Instructor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var instructor models.Instructor
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&instructor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch instructor by email: %w", err)
	}
	return &instructor, nil
}

func (r *MongoInstructorRepo) Create(instructor *models.Instructor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	instructor.CreatedAt = time.Now()
	instructor.UpdatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, instructor); err != nil {
		return fmt.Errorf("failed to create instructor: %w", err)
	}
	return nil
}

func (r *MongoInstructorRepo) Update(instructor *models.Instructor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	instructor.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": instructor.ID}, instructor)
	if err != nil {
		return fmt.Errorf("failed to update instructor %s: %w", instructor.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoInstructorRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete instructor %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoInstructorRepo) UpdateWeeklyAvailability(id string, weekly []models.DayAvailability) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"weeklyAvailability": weekly, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update weekly availability for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoInstructorRepo) UpdateCancellationPolicy(id string, policy models.CancellationPolicy) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"cancellationPolicy": policy, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update cancellation policy for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
