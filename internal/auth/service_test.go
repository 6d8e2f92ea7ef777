package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/routeledger/routeledger/internal/shared"
)

type mockUserRepo struct {
	users  map[string]User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]User), nextID: 1}
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	u, ok := m.users[email]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user User) (User, error) {
	if _, ok := m.users[user.Email]; ok {
		return User{}, shared.ErrDuplicate
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user
	return user, nil
}

func newTestService(t *testing.T) (*Service, *mockUserRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newMockUserRepo()
	svc := NewService(repo, NewSessionStore(client, time.Hour))
	return svc, repo, mr
}

func seedUser(t *testing.T, repo *mockUserRepo, email, password string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), User{Email: email, PasswordHash: string(hash), IsActive: active})
	require.NoError(t, err)
}

func TestLoginIssuesResolvableToken(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "ops@example.com", "correct horse", true)
	ctx := context.Background()

	session, err := svc.Login(ctx, "ops@example.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	userID, err := svc.Verify(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, userID)
}

func TestLoginFailuresCollapseToInvalidCredentials(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "ops@example.com", "correct horse", true)
	seedUser(t, repo, "gone@example.com", "whatever12", false)
	ctx := context.Background()

	_, err := svc.Login(ctx, "ops@example.com", "wrong password")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "gone@example.com", "whatever12")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials, "inactive users cannot sign in")
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "ops@example.com", "correct horse", true)
	ctx := context.Background()

	session, err := svc.Login(ctx, "ops@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	_, err = svc.Verify(ctx, session.Token)
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestTokenExpiresWithTTL(t *testing.T) {
	svc, repo, mr := newTestService(t)
	seedUser(t, repo, "ops@example.com", "correct horse", true)
	ctx := context.Background()

	session, err := svc.Login(ctx, "ops@example.com", "correct horse")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = svc.Verify(ctx, session.Token)
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "new@example.com", "long enough secret")
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "long enough secret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("long enough secret")))

	_, err = svc.Register(ctx, "short@example.com", "short")
	assert.ErrorIs(t, err, shared.ErrValidation)
	_, ok := repo.users["short@example.com"]
	assert.False(t, ok)
}
