package service

import (
	"context"
	"testing"

	"golang-stock-screener/internal/entity"
	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/internal/screener/repository"
	"golang-stock-screener/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepository struct {
	users map[string]*entity.User
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	user.ID = "user-" + user.Username
	r.users[user.Username] = user
	return nil
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *memoryUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || (email != "" && u.Email == email) {
			return true, nil
		}
	}
	return false, nil
}

func TestAuthService(t *testing.T) {
	repo := &memoryUserRepository{users: map[string]*entity.User{}}
	svc := NewAuthService(repo, logger.NewNop())
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{Username: " alice ", Email: "Alice@Example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret", repo.users["alice"].PasswordHash)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUserExists)

	logged, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
