package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo implements repository.UserRepository in memory.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	f.users[user.Email] = *user
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

const testAdminEmail = "coach@example.com"

func newTestAuthService(repo repository.UserRepository) AuthService {
	return NewAuthService(repo, "test-secret", time.Hour, testAdminEmail)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "Robert", "robert@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAthlete, user.Role)
	assert.Empty(t, user.PasswordHash, "hash must not leak out of the service")

	token, loggedIn, err := svc.Login(ctx, "robert@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Robert", "robert@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "robert@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterAdminEmailGetsAdminRole(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	user, err := svc.Register(context.Background(), "Coach", testAdminEmail, "supersecretpw")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Robert", "robert@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "robert@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
