package lessonRepo

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

// MongoLessonRepo implements LessonRepository using MongoDB.
type MongoLessonRepo struct {
	coll *mongo.Collection
}

// NewMongoLessonRepo creates a new LessonRepository backed by MongoDB.
func NewMongoLessonRepo() LessonRepository {
	repo := &MongoLessonRepo{coll: database.Collection("lessons")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLessonRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "instructorId", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "learnerId", Value: 1}, {Key: "startTime", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "startTime", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoLessonRepo) GetByID(id string) (*models.Lesson, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var lesson models.Lesson
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&lesson); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch lesson %s: %w", id, err)
	}
	return &lesson, nil
}

func (r *MongoLessonRepo) Create(lesson *models.Lesson) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, lesson); err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}
	return nil
}

func (r *MongoLessonRepo) UpdateStatus(id, status, paymentStatus string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": status, "updatedAt": time.Now()}
	if paymentStatus != "" {
		set["paymentStatus"] = paymentStatus
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update lesson %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoLessonRepo) GetByInstructorAndDateRange(instructorID, from, to string) ([]models.Lesson, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"instructorId": instructorID,
		"date":         bson.M{"$gte": from, "$lte": to},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons for instructor %s: %w", instructorID, err)
	}
	defer cursor.Close(ctx)

	var lessons []models.Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("failed to decode lessons: %w", err)
	}
	return lessons, nil
}

func (r *MongoLessonRepo) GetByLearner(learnerID string) ([]models.Lesson, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"learnerId": learnerID},
		options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons for learner %s: %w", learnerID, err)
	}
	defer cursor.Close(ctx)

	var lessons []models.Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("failed to decode lessons: %w", err)
	}
	return lessons, nil
}

func (r *MongoLessonRepo) GetUpcoming(from, to time.Time) ([]models.Lesson, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":    models.LessonStatusScheduled,
		"startTime": bson.M{"$gte": from, "$lte": to},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming lessons: %w", err)
	}
	defer cursor.Close(ctx)

	var lessons []models.Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("failed to decode lessons: %w", err)
	}
	return lessons, nil
}
