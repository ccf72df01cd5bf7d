package auth

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]User
}

func (m *memUsers) Create(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	m.users[u.Email] = u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type fakeTokens struct{}

func (fakeTokens) Generate(_ context.Context, u User) (string, error) { return "token-" + u.Email, nil }

func newTestService() (*authService, *memUsers) {
	repo := &memUsers{users: map[string]User{}}
	return &authService{repo: repo, tokens: fakeTokens{}, cost: bcrypt.MinCost}, repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	res, err := svc.Register(ctx, "  Jane@Example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.Equal(t, "token-jane@example.com", res.Token)
	assert.NotEqual(t, "s3cret-pass", repo.users["jane@example.com"].PasswordHash)

	res, err = svc.Login(ctx, "JANE@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "token-jane@example.com", res.Token)

	_, err = svc.Login(ctx, "jane@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Register(ctx, "not-an-email", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Register(ctx, "a@b.c", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
	_, err = svc.Register(ctx, "a@b.c", strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register(ctx, "a@b.c", strings.Repeat("x", 72))
	require.NoError(t, err)
	_, err = svc.Register(ctx, "A@B.C", "another-pass")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}
