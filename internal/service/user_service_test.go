package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetrent/fleetrent/internal/domain"
)

func newUserService(repo *MockUserRepository) *UserService {
	return NewUserService(repo, zerolog.Nop())
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := NewMockUserRepository()
		svc := newUserService(repo)

		out, err := svc.Create(ctx, CreateUserInput{
			Email:    "Test2@Example.com",
			Name:     "Test User",
			Password: "secret",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), out.User.ID)
		assert.Equal(t, "Test2@example.com", out.User.Email)
		assert.Equal(t, "Test User", out.User.Name)
		assert.True(t, out.User.IsActive)
		assert.False(t, out.User.IsStaff)
		assert.False(t, out.User.IsSuperuser)

		// The plain password must never be stored.
		assert.NotEqual(t, "secret", out.User.PasswordHash)
		err = bcrypt.CompareHashAndPassword([]byte(out.User.PasswordHash), []byte("secret"))
		assert.NoError(t, err)
	})

	t.Run("empty email", func(t *testing.T) {
		svc := newUserService(NewMockUserRepository())

		_, err := svc.Create(ctx, CreateUserInput{Password: "secret"})
		assert.ErrorIs(t, err, domain.ErrEmailRequired)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := newUserService(NewMockUserRepository())

		_, err := svc.Create(ctx, CreateUserInput{Email: "not-an-email", Password: "secret"})
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("short password", func(t *testing.T) {
		svc := newUserService(NewMockUserRepository())

		_, err := svc.Create(ctx, CreateUserInput{Email: "user@example.com", Password: "1234"})
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := newUserService(NewMockUserRepository())

		_, err := svc.Create(ctx, CreateUserInput{Email: "user@example.com", Password: "secret"})
		require.NoError(t, err)

		// Same address with a differently cased domain collides.
		_, err = svc.Create(ctx, CreateUserInput{Email: "user@EXAMPLE.COM", Password: "secret"})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})
}

func TestUserService_CreateSuperuser(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(NewMockUserRepository())

	out, err := svc.CreateSuperuser(ctx, CreateUserInput{
		Email:    "admin@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.True(t, out.User.IsStaff)
	assert.True(t, out.User.IsSuperuser)
	assert.True(t, out.User.IsActive)
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := NewMockUserRepository()
	svc := newUserService(repo)

	_, err := svc.Create(ctx, CreateUserInput{Email: "user@example.com", Password: "secret"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "user@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", user.Email)
	})

	t.Run("mixed case email", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "user@EXAMPLE.COM", "secret")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "user@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "secret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		user.IsActive = false
		defer func() { user.IsActive = true }()

		_, err = svc.Authenticate(ctx, "user@example.com", "secret")
		assert.ErrorIs(t, err, domain.ErrUserInactive)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMockUserRepository()
	svc := newUserService(repo)

	out, err := svc.Create(ctx, CreateUserInput{Email: "user@example.com", Name: "Before", Password: "secret"})
	require.NoError(t, err)
	oldHash := out.User.PasswordHash

	t.Run("name only", func(t *testing.T) {
		name := "After"
		user, err := svc.Update(ctx, UpdateUserInput{UserID: out.User.ID, Name: &name})
		require.NoError(t, err)

		assert.Equal(t, "After", user.Name)
		assert.Equal(t, oldHash, user.PasswordHash)
	})

	t.Run("password rehashed", func(t *testing.T) {
		password := "new-secret"
		user, err := svc.Update(ctx, UpdateUserInput{UserID: out.User.ID, Password: &password})
		require.NoError(t, err)

		assert.NotEqual(t, oldHash, user.PasswordHash)
		_, err = svc.Authenticate(ctx, "user@example.com", "new-secret")
		assert.NoError(t, err)
	})

	t.Run("short password rejected", func(t *testing.T) {
		password := "1234"
		_, err := svc.Update(ctx, UpdateUserInput{UserID: out.User.ID, Password: &password})
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		name := "X"
		_, err := svc.Update(ctx, UpdateUserInput{UserID: 999, Name: &name})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMockUserRepository()
	svc := newUserService(repo)

	out, err := svc.Create(ctx, CreateUserInput{Email: "user@example.com", Password: "secret"})
	require.NoError(t, err)

	t.Run("user owns records", func(t *testing.T) {
		repo.ownsRecords[out.User.ID] = true
		err := svc.Delete(ctx, out.User.ID)
		assert.ErrorIs(t, err, domain.ErrUserOwnsRecords)
	})

	t.Run("success", func(t *testing.T) {
		repo.ownsRecords[out.User.ID] = false
		require.NoError(t, svc.Delete(ctx, out.User.ID))

		_, err := repo.GetByID(ctx, out.User.ID)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
