package repository

import (
	"context"

	"bertmill/hyrox-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// CompletionRepository stores which sessions a user has marked done.
// Insert/Delete are idempotent on the remote side: inserting an existing
// (user, session) pair and deleting a missing one are not errors.
type CompletionRepository interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]string, error)
	Insert(ctx context.Context, userID primitive.ObjectID, sessionID string) error
	Delete(ctx context.Context, userID primitive.ObjectID, sessionID string) error

	// Watch opens the row-level change feed for completions. Events arrive
	// until ctx is cancelled; the returned channel is closed when the feed
	// ends. Ordering is no stronger than eventual delivery.
	Watch(ctx context.Context) (<-chan domain.CompletionEvent, error)
}

// NoteRepository stores per-session free-text notes, at most one row per
// (user, session) pair.
type NoteRepository interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.SessionNote, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, sessionID, note string) error
	Delete(ctx context.Context, userID primitive.ObjectID, sessionID string) error
}

// FeedbackRepository stores user-submitted feedback. Append-only except for
// the addressed flag.
type FeedbackRepository interface {
	Create(ctx context.Context, item *domain.FeedbackItem) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.FeedbackItem, error)
	SetAddressed(ctx context.Context, id primitive.ObjectID, addressed bool) error
}
