package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompletedSession marks one session as done for one user. Existence of the
// row is the whole payload; at most one row per (user, session) pair.
type CompletedSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	SessionID string             `bson:"sessionId" json:"sessionId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// SessionNote is free-text attached to one session by one user. At most one
// row per (user, session); an empty note is deleted, so absence of a row
// means "no note".
type SessionNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	SessionID string             `bson:"sessionId" json:"sessionId"`
	Note      string             `bson:"note" json:"note"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CompletionEventType distinguishes push-channel change notifications.
type CompletionEventType string

const (
	CompletionInserted CompletionEventType = "insert"
	CompletionDeleted  CompletionEventType = "delete"
)

// CompletionEvent is one row-level change delivered on the push channel.
// Consumers must apply events idempotently: an insert for a session already
// marked done, or a delete for one that isn't, is a no-op.
type CompletionEvent struct {
	Type      CompletionEventType `json:"type"`
	UserID    primitive.ObjectID  `json:"userId"`
	SessionID string              `json:"sessionId"`
}
