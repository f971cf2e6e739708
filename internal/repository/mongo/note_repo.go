package mongo

import (
	"context"
	"time"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const noteCollectionName = "session_notes"

// mongoNoteRepository implements repository.NoteRepository.
type mongoNoteRepository struct {
	collection *mongo.Collection
}

func NewMongoNoteRepository(db *mongo.Database) repository.NoteRepository {
	return &mongoNoteRepository{
		collection: db.Collection(noteCollectionName),
	}
}

// ListByUser returns all of the user's notes.
func (r *mongoNoteRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.SessionNote, error) {
	filter := bson.M{"userId": userID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notes []domain.SessionNote
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Upsert writes the note text for (user, session), creating the row if absent.
func (r *mongoNoteRepository) Upsert(ctx context.Context, userID primitive.ObjectID, sessionID, note string) error {
	filter := bson.M{"userId": userID, "sessionId": sessionID}
	update := bson.M{
		"$set": bson.M{
			"note":      note,
			"updatedAt": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"userId":    userID,
			"sessionId": sessionID,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Delete removes the note row for (user, session). Missing rows are a no-op:
// absence already means "no note".
func (r *mongoNoteRepository) Delete(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	filter := bson.M{"userId": userID, "sessionId": sessionID}
	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}

// EnsureNoteIndexes creates necessary indexes for the session_notes collection.
func EnsureNoteIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
