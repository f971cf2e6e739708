package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bertmill/hyrox-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCompletionRepo implements repository.CompletionRepository in memory.
type fakeCompletionRepo struct {
	mu     sync.Mutex
	rows   map[primitive.ObjectID]map[string]struct{}
	events chan domain.CompletionEvent

	failNextWrite error
}

func newFakeCompletionRepo() *fakeCompletionRepo {
	return &fakeCompletionRepo{
		rows:   make(map[primitive.ObjectID]map[string]struct{}),
		events: make(chan domain.CompletionEvent, 16),
	}
}

func (f *fakeCompletionRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id := range f.rows[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeCompletionRepo) Insert(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNextWrite != nil {
		err := f.failNextWrite
		f.failNextWrite = nil
		return err
	}
	if f.rows[userID] == nil {
		f.rows[userID] = make(map[string]struct{})
	}
	f.rows[userID][sessionID] = struct{}{}
	return nil
}

func (f *fakeCompletionRepo) Delete(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNextWrite != nil {
		err := f.failNextWrite
		f.failNextWrite = nil
		return err
	}
	delete(f.rows[userID], sessionID)
	return nil
}

func (f *fakeCompletionRepo) Watch(ctx context.Context) (<-chan domain.CompletionEvent, error) {
	return f.events, nil
}

func (f *fakeCompletionRepo) has(userID primitive.ObjectID, sessionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[userID][sessionID]
	return ok
}

// fakeNoteRepo implements repository.NoteRepository in memory.
type fakeNoteRepo struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]map[string]string
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{rows: make(map[primitive.ObjectID]map[string]string)}
}

func (f *fakeNoteRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.SessionNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var notes []domain.SessionNote
	for sessionID, text := range f.rows[userID] {
		notes = append(notes, domain.SessionNote{UserID: userID, SessionID: sessionID, Note: text})
	}
	return notes, nil
}

func (f *fakeNoteRepo) Upsert(ctx context.Context, userID primitive.ObjectID, sessionID, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows[userID] == nil {
		f.rows[userID] = make(map[string]string)
	}
	f.rows[userID][sessionID] = note
	return nil
}

func (f *fakeNoteRepo) Delete(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows[userID], sessionID)
	return nil
}

var testSessionIDs = []string{"week1-monday", "week1-tuesday", "week2-monday"}

func newTestSessionService(completions *fakeCompletionRepo, notes *fakeNoteRepo) SessionService {
	return NewSessionService(completions, notes, testSessionIDs)
}

func TestToggleCompletionRoundTrip(t *testing.T) {
	repo := newFakeCompletionRepo()
	svc := newTestSessionService(repo, newFakeNoteRepo())
	userID := primitive.NewObjectID()
	ctx := context.Background()

	done, err := svc.ToggleCompletion(ctx, userID, "week1-monday")
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, repo.has(userID, "week1-monday"))

	// Double-toggle returns to the original state, remotely and locally.
	done, err = svc.ToggleCompletion(ctx, userID, "week1-monday")
	require.NoError(t, err)
	assert.False(t, done)
	assert.False(t, repo.has(userID, "week1-monday"))

	ids, err := svc.LoadCompleted(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestToggleCompletionUnknownSession(t *testing.T) {
	svc := newTestSessionService(newFakeCompletionRepo(), newFakeNoteRepo())

	_, err := svc.ToggleCompletion(context.Background(), primitive.NewObjectID(), "week99-funday")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestToggleCompletionFailedWriteLeavesStateUnchanged(t *testing.T) {
	repo := newFakeCompletionRepo()
	svc := newTestSessionService(repo, newFakeNoteRepo())
	userID := primitive.NewObjectID()
	ctx := context.Background()

	repo.failNextWrite = errors.New("store unavailable")
	_, err := svc.ToggleCompletion(ctx, userID, "week1-monday")
	require.Error(t, err)

	// Neither local cache nor remote store advanced.
	assert.False(t, repo.has(userID, "week1-monday"))
	ids, err := svc.LoadCompleted(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// A later toggle succeeds normally.
	done, err := svc.ToggleCompletion(ctx, userID, "week1-monday")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSaveNoteWhitespaceDeletes(t *testing.T) {
	notes := newFakeNoteRepo()
	svc := newTestSessionService(newFakeCompletionRepo(), notes)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	require.NoError(t, svc.SaveNote(ctx, userID, "week1-monday", "felt strong today"))

	loaded, err := svc.LoadNotes(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "felt strong today", loaded["week1-monday"])

	// Whitespace-only text is equivalent to deleting the note.
	require.NoError(t, svc.SaveNote(ctx, userID, "week1-monday", "   \n\t "))

	loaded, err = svc.LoadNotes(ctx, userID)
	require.NoError(t, err)
	assert.NotContains(t, loaded, "week1-monday")
}

func TestSaveNoteUnknownSession(t *testing.T) {
	svc := newTestSessionService(newFakeCompletionRepo(), newFakeNoteRepo())
	err := svc.SaveNote(context.Background(), primitive.NewObjectID(), "nope", "text")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestApplyEventIdempotent(t *testing.T) {
	repo := newFakeCompletionRepo()
	svc := newTestSessionService(repo, newFakeNoteRepo())
	userID := primitive.NewObjectID()
	ctx := context.Background()

	// Load the cache, then mark one session done.
	_, err := svc.LoadCompleted(ctx, userID)
	require.NoError(t, err)
	_, err = svc.ToggleCompletion(ctx, userID, "week1-monday")
	require.NoError(t, err)

	// A duplicate insert notification for an id already present is a no-op.
	svc.ApplyEvent(domain.CompletionEvent{Type: domain.CompletionInserted, UserID: userID, SessionID: "week1-monday"})
	ids, err := svc.LoadCompleted(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"week1-monday"}, ids)

	// A delete notification for an id not present does not crash or mutate.
	svc.ApplyEvent(domain.CompletionEvent{Type: domain.CompletionDeleted, UserID: userID, SessionID: "week2-monday"})
	ids, err = svc.LoadCompleted(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"week1-monday"}, ids)
}

func TestApplyEventConvergesSecondDevice(t *testing.T) {
	repo := newFakeCompletionRepo()
	svc := newTestSessionService(repo, newFakeNoteRepo())
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.LoadCompleted(ctx, userID)
	require.NoError(t, err)

	// An insert made elsewhere arrives over the push channel.
	svc.ApplyEvent(domain.CompletionEvent{Type: domain.CompletionInserted, UserID: userID, SessionID: "week1-tuesday"})

	ids, err := svc.LoadCompleted(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"week1-tuesday"}, ids)
}

func TestSubscribeReceivesEvents(t *testing.T) {
	repo := newFakeCompletionRepo()
	svc := newTestSessionService(repo, newFakeNoteRepo())
	userID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	subID, events := svc.Subscribe(userID)
	defer svc.Unsubscribe(userID, subID)

	svc.ApplyEvent(domain.CompletionEvent{Type: domain.CompletionInserted, UserID: userID, SessionID: "week1-monday"})
	svc.ApplyEvent(domain.CompletionEvent{Type: domain.CompletionInserted, UserID: otherID, SessionID: "week1-tuesday"})

	// Only the subscriber's own user's event is delivered.
	event := <-events
	assert.Equal(t, domain.CompletionInserted, event.Type)
	assert.Equal(t, "week1-monday", event.SessionID)
	assert.Empty(t, events)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	svc := newTestSessionService(newFakeCompletionRepo(), newFakeNoteRepo())
	userID := primitive.NewObjectID()

	subID, events := svc.Subscribe(userID)
	svc.Unsubscribe(userID, subID)

	_, open := <-events
	assert.False(t, open)
}

func TestRunFeedsSubscribers(t *testing.T) {
	repo := newFakeCompletionRepo()
	svc := newTestSessionService(repo, newFakeNoteRepo())
	userID := primitive.NewObjectID()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = svc.Run(ctx)
		close(done)
	}()

	subID, events := svc.Subscribe(userID)
	defer svc.Unsubscribe(userID, subID)

	repo.events <- domain.CompletionEvent{Type: domain.CompletionInserted, UserID: userID, SessionID: "week2-monday"}

	event := <-events
	assert.Equal(t, "week2-monday", event.SessionID)

	close(repo.events)
	<-done
}
