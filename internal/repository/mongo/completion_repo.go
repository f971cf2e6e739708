package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const completionCollectionName = "completed_sessions"

// mongoCompletionRepository implements repository.CompletionRepository.
type mongoCompletionRepository struct {
	collection *mongo.Collection
}

func NewMongoCompletionRepository(db *mongo.Database) repository.CompletionRepository {
	return &mongoCompletionRepository{
		collection: db.Collection(completionCollectionName),
	}
}

// ListByUser returns the session IDs the user has marked done.
func (r *mongoCompletionRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	filter := bson.M{"userId": userID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []domain.CompletedSession
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.SessionID)
	}
	return ids, nil
}

// Insert marks a session done. The unique (userId, sessionId) index makes
// repeats harmless: a duplicate-key error means the row already exists, which
// is the state the caller wanted.
func (r *mongoCompletionRepository) Insert(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	row := domain.CompletedSession{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.collection.InsertOne(ctx, row)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return err
	}
	return nil
}

// Delete unmarks a session. Deleting a row that does not exist is a no-op.
func (r *mongoCompletionRepository) Delete(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	filter := bson.M{"userId": userID, "sessionId": sessionID}
	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}

// Watch opens a change stream on the completions collection and translates
// raw change documents into CompletionEvents. This is the push channel that
// lets a second open tab or device converge without a refresh.
func (r *mongoCompletionRepository) Watch(ctx context.Context) (<-chan domain.CompletionEvent, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"operationType": bson.M{"$in": bson.A{"insert", "delete"}}}}},
	}
	// fullDocumentBeforeChange gives us userId/sessionId on deletes, where the
	// change document otherwise only carries the _id.
	opts := options.ChangeStream().SetFullDocumentBeforeChange(options.WhenAvailable)

	stream, err := r.collection.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, err
	}

	events := make(chan domain.CompletionEvent)
	go func() {
		defer close(events)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var change struct {
				OperationType string                   `bson:"operationType"`
				FullDocument  *domain.CompletedSession `bson:"fullDocument"`
				BeforeChange  *domain.CompletedSession `bson:"fullDocumentBeforeChange"`
			}
			if err := stream.Decode(&change); err != nil {
				log.Printf("ERROR: Failed to decode completion change event: %v", err)
				continue
			}

			var event domain.CompletionEvent
			switch change.OperationType {
			case "insert":
				if change.FullDocument == nil {
					continue
				}
				event = domain.CompletionEvent{
					Type:      domain.CompletionInserted,
					UserID:    change.FullDocument.UserID,
					SessionID: change.FullDocument.SessionID,
				}
			case "delete":
				if change.BeforeChange == nil {
					// Pre-images not enabled on the collection; nothing to relay.
					continue
				}
				event = domain.CompletionEvent{
					Type:      domain.CompletionDeleted,
					UserID:    change.BeforeChange.UserID,
					SessionID: change.BeforeChange.SessionID,
				}
			default:
				continue
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}

		if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("ERROR: Completion change stream ended: %v", err)
		}
	}()

	return events, nil
}

// EnsureCompletionIndexes creates necessary indexes for the completed_sessions collection.
func EnsureCompletionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One row per (user, session); the toggle is presence, not a counter.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
