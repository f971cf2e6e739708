package service

import (
	"context"
	"errors"
	"strings"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrFeedbackEmpty    = errors.New("feedback message cannot be empty")
	ErrFeedbackNotFound = errors.New("feedback item not found")
	ErrNotAdmin         = errors.New("only an admin may moderate feedback")
)

// FeedbackService collects user feedback and lets the admin moderate it.
// The authorization check lives here, not only in the route table, so no
// alternate call path can skip it.
type FeedbackService interface {
	Submit(ctx context.Context, message, userEmail string) (*domain.FeedbackItem, error)
	List(ctx context.Context, actorRole domain.Role) ([]domain.FeedbackItem, error)
	SetAddressed(ctx context.Context, actorRole domain.Role, id primitive.ObjectID, addressed bool) error
}

// feedbackService implements the FeedbackService interface.
type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

// NewFeedbackService creates a new instance of feedbackService.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo}
}

// Submit appends one feedback row. userEmail may be empty for anonymous
// submissions.
func (s *feedbackService) Submit(ctx context.Context, message, userEmail string) (*domain.FeedbackItem, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrFeedbackEmpty
	}

	item := &domain.FeedbackItem{
		Message:   message,
		UserEmail: userEmail,
		Addressed: false,
	}

	id, err := s.feedbackRepo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return item, nil
}

// List returns all feedback, newest first. Admin only.
func (s *feedbackService) List(ctx context.Context, actorRole domain.Role) ([]domain.FeedbackItem, error) {
	if actorRole != domain.RoleAdmin {
		return nil, ErrNotAdmin
	}
	return s.feedbackRepo.List(ctx)
}

// SetAddressed flips the addressed flag on one row. Admin only.
func (s *feedbackService) SetAddressed(ctx context.Context, actorRole domain.Role, id primitive.ObjectID, addressed bool) error {
	if actorRole != domain.RoleAdmin {
		return ErrNotAdmin
	}

	err := s.feedbackRepo.SetAddressed(ctx, id, addressed)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFeedbackNotFound
	}
	return err
}
