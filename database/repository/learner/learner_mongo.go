package learnerRepo

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

// LearnerRepository defines methods for learner data access.
type LearnerRepository interface {
	GetByID(id string) (*models.Learner, error)
	GetByEmail(email string) (*models.Learner, error)
	Create(learner *models.Learner) error
	Update(learner *models.Learner) error
	Delete(id string) error
	// AdjustBalance atomically adds delta (positive or negative) to the
	// learner's balance and returns the updated record.
	AdjustBalance(id string, delta float64) (*models.Learner, error)
}

// MongoLearnerRepo implements LearnerRepository using MongoDB.
type MongoLearnerRepo struct {
	coll *mongo.Collection
}

// NewMongoLearnerRepo creates a new LearnerRepository backed by MongoDB.
func NewMongoLearnerRepo() LearnerRepository {
	repo := &MongoLearnerRepo{coll: database.Collection("learners")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLearnerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoLearnerRepo) GetByID(id string) (*models.Learner, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var learner models.Learner
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&learner); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch learner %s: %w", id, err)
	}
	return &learner, nil
}

func (r *MongoLearnerRepo) GetByEmail(email string) (*models.Learner, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var learner models.Learner
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&learner); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch learner by email: %w", err)
	}
	return &learner, nil
}

func (r *MongoLearnerRepo) Create(learner *models.Learner) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	learner.CreatedAt = time.Now()
	learner.UpdatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, learner); err != nil {
		return fmt.Errorf("failed to create learner: %w", err)
	}
	return nil
}

func (r *MongoLearnerRepo) Update(learner *models.Learner) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	learner.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": learner.ID}, learner)
	if err != nil {
		return fmt.Errorf("failed to update learner %s: %w", learner.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoLearnerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete learner %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoLearnerRepo) AdjustBalance(id string, delta float64) (*models.Learner, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"balance": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var learner models.Learner
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&learner); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to adjust balance for learner %s: %w", id, err)
	}
	return &learner, nil
}
