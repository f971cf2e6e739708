package mongo

import (
	"context"
	"errors"
	"time"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const feedbackCollectionName = "feedback"

// mongoFeedbackRepository implements repository.FeedbackRepository.
type mongoFeedbackRepository struct {
	collection *mongo.Collection
}

func NewMongoFeedbackRepository(db *mongo.Database) repository.FeedbackRepository {
	return &mongoFeedbackRepository{
		collection: db.Collection(feedbackCollectionName),
	}
}

// Create appends one feedback row.
func (r *mongoFeedbackRepository) Create(ctx context.Context, item *domain.FeedbackItem) (primitive.ObjectID, error) {
	if item.Message == "" {
		return primitive.NilObjectID, errors.New("feedback message is required")
	}

	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// List returns all feedback, newest first.
func (r *mongoFeedbackRepository) List(ctx context.Context) ([]domain.FeedbackItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []domain.FeedbackItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetAddressed flips the addressed flag on one row.
func (r *mongoFeedbackRepository) SetAddressed(ctx context.Context, id primitive.ObjectID, addressed bool) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"addressed": addressed}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureFeedbackIndexes creates necessary indexes for the feedback collection.
func EnsureFeedbackIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
