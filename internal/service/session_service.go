package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUnknownSession = errors.New("unknown session id")
)

// subscriberBuffer is the per-subscriber event channel depth. A consumer that
// falls further behind than this drops events; the idempotent apply rule means
// a dropped event only delays convergence until the next one.
const subscriberBuffer = 16

// SessionService is the state store for per-user completion marks and session
// notes. It keeps an in-process cache of each user's completed set, mutated
// only after the corresponding remote write succeeded, and fans change events
// out to push-channel subscribers.
type SessionService interface {
	LoadCompleted(ctx context.Context, userID primitive.ObjectID) ([]string, error)
	ToggleCompletion(ctx context.Context, userID primitive.ObjectID, sessionID string) (completed bool, err error)

	LoadNotes(ctx context.Context, userID primitive.ObjectID) (map[string]string, error)
	SaveNote(ctx context.Context, userID primitive.ObjectID, sessionID, text string) error

	// Subscribe registers a push-channel listener for one user's completion
	// changes. Unsubscribe with the returned id when the consumer goes away.
	Subscribe(userID primitive.ObjectID) (uuid.UUID, <-chan domain.CompletionEvent)
	Unsubscribe(userID primitive.ObjectID, id uuid.UUID)

	// Run consumes the repository change feed until ctx is cancelled,
	// applying each event to the cache and fanning it out to subscribers.
	Run(ctx context.Context) error

	// ApplyEvent applies one change-feed event. Idempotent: inserting a
	// present id or deleting an absent one leaves the state unchanged.
	ApplyEvent(event domain.CompletionEvent)
}

// sessionService implements the SessionService interface.
type sessionService struct {
	completionRepo repository.CompletionRepository
	noteRepo       repository.NoteRepository

	mu          sync.Mutex
	completed   map[primitive.ObjectID]map[string]struct{} // per-user cached sets
	loaded      map[primitive.ObjectID]bool                // which user sets came from the store
	subscribers map[primitive.ObjectID]map[uuid.UUID]chan domain.CompletionEvent

	// validIDs is every session id the generator can produce; writes against
	// anything else are rejected before touching the store.
	validIDs map[string]struct{}
}

// NewSessionService creates a new sessionService. sessionIDs is the full set
// of ids the calendar generator produces for this process's plan.
func NewSessionService(completionRepo repository.CompletionRepository, noteRepo repository.NoteRepository, sessionIDs []string) SessionService {
	valid := make(map[string]struct{}, len(sessionIDs))
	for _, id := range sessionIDs {
		valid[id] = struct{}{}
	}
	return &sessionService{
		completionRepo: completionRepo,
		noteRepo:       noteRepo,
		completed:      make(map[primitive.ObjectID]map[string]struct{}),
		loaded:         make(map[primitive.ObjectID]bool),
		subscribers:    make(map[primitive.ObjectID]map[uuid.UUID]chan domain.CompletionEvent),
		validIDs:       valid,
	}
}

// ensureLoadedLocked populates the user's cached set from the store on first
// use. Callers must hold s.mu.
func (s *sessionService) ensureLoadedLocked(ctx context.Context, userID primitive.ObjectID) error {
	if s.loaded[userID] {
		return nil
	}

	// Release the lock for the remote read; re-check after reacquiring.
	s.mu.Unlock()
	ids, err := s.completionRepo.ListByUser(ctx, userID)
	s.mu.Lock()
	if err != nil {
		return err
	}
	if s.loaded[userID] {
		return nil
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s.completed[userID] = set
	s.loaded[userID] = true
	return nil
}

// LoadCompleted returns the session IDs the user has marked done.
func (s *sessionService) LoadCompleted(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx, userID); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(s.completed[userID]))
	for id := range s.completed[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

// ToggleCompletion flips the done mark for (user, session). The cached set is
// consulted for presence and mutated only once the remote write has returned
// success, so a failed write leaves both store and cache at the last
// known-good state and the error reaches the caller.
func (s *sessionService) ToggleCompletion(ctx context.Context, userID primitive.ObjectID, sessionID string) (bool, error) {
	if _, ok := s.validIDs[sessionID]; !ok {
		return false, ErrUnknownSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx, userID); err != nil {
		return false, err
	}

	set := s.completed[userID]
	if _, done := set[sessionID]; done {
		if err := s.completionRepo.Delete(ctx, userID, sessionID); err != nil {
			return true, err
		}
		delete(set, sessionID)
		return false, nil
	}

	if err := s.completionRepo.Insert(ctx, userID, sessionID); err != nil {
		return false, err
	}
	set[sessionID] = struct{}{}
	return true, nil
}

// LoadNotes returns the user's notes keyed by session id.
func (s *sessionService) LoadNotes(ctx context.Context, userID primitive.ObjectID) (map[string]string, error) {
	notes, err := s.noteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(notes))
	for _, n := range notes {
		result[n.SessionID] = n.Note
	}
	return result, nil
}

// SaveNote upserts the note for (user, session). Whitespace-only text deletes
// the row instead: absence of a row is equivalent to "no note".
func (s *sessionService) SaveNote(ctx context.Context, userID primitive.ObjectID, sessionID, text string) error {
	if _, ok := s.validIDs[sessionID]; !ok {
		return ErrUnknownSession
	}

	if strings.TrimSpace(text) == "" {
		return s.noteRepo.Delete(ctx, userID, sessionID)
	}
	return s.noteRepo.Upsert(ctx, userID, sessionID, text)
}

// Subscribe registers a listener for one user's completion change events.
func (s *sessionService) Subscribe(userID primitive.ObjectID) (uuid.UUID, <-chan domain.CompletionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	ch := make(chan domain.CompletionEvent, subscriberBuffer)

	if s.subscribers[userID] == nil {
		s.subscribers[userID] = make(map[uuid.UUID]chan domain.CompletionEvent)
	}
	s.subscribers[userID][id] = ch
	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *sessionService) Unsubscribe(userID primitive.ObjectID, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subscribers[userID]
	if ch, ok := subs[id]; ok {
		delete(subs, id)
		close(ch)
	}
	if len(subs) == 0 {
		delete(s.subscribers, userID)
	}
}

// ApplyEvent applies one change-feed event to the cache and fans it out.
// The apply rule is idempotent, so an event for a change this process already
// made locally collapses into a no-op.
func (s *sessionService) ApplyEvent(event domain.CompletionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Only mutate caches we have actually loaded; an unloaded user's set will
	// be read fresh from the store anyway.
	if s.loaded[event.UserID] {
		set := s.completed[event.UserID]
		switch event.Type {
		case domain.CompletionInserted:
			set[event.SessionID] = struct{}{}
		case domain.CompletionDeleted:
			delete(set, event.SessionID)
		}
	}

	for _, ch := range s.subscribers[event.UserID] {
		select {
		case ch <- event:
		default:
			// Slow consumer; drop rather than block the feed.
		}
	}
}

// Run consumes the repository change feed until ctx is cancelled.
func (s *sessionService) Run(ctx context.Context) error {
	events, err := s.completionRepo.Watch(ctx)
	if err != nil {
		return err
	}

	for event := range events {
		s.ApplyEvent(event)
	}

	if ctx.Err() == nil {
		log.Println("ERROR: Completion change feed closed unexpectedly")
	}
	return ctx.Err()
}
