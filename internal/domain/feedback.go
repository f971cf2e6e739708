package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackItem is one user-submitted feedback message. Rows are append-only;
// only the Addressed flag is ever mutated, and only by an admin.
type FeedbackItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message   string             `bson:"message" json:"message"`
	UserEmail string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"` // Empty for anonymous submissions
	Addressed bool               `bson:"addressed" json:"addressed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
