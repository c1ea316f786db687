package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/auth"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/config"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/repository"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/service"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/storage/db"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]model.User
	byEmail map[string]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]model.User),
		byEmail: make(map[string]model.User),
	}
}

func (r *fakeUserRepo) WithDB(db.DB) repository.UserRepository { return r }

func (r *fakeUserRepo) CreateUser(_ context.Context, user model.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (model.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func newAuthService(userRepo repository.UserRepository) service.AuthService {
	tokens := auth.NewTokenManager(config.Auth{
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
		Issuer:        "electronics-store-api",
	})
	return service.NewAuthService(userRepo, tokens, auth.NewPasswordHasher())
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	t.Run("Should register a customer by default and issue a token", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		svc := newAuthService(userRepo)

		result, err := svc.Register(ctx, service.RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "s3cret!",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, model.RoleCustomer, result.User.Role)
		assert.NotEqual(t, "s3cret!", result.User.PasswordHash)
	})

	t.Run("Should reject a duplicate email", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		svc := newAuthService(userRepo)
		params := service.RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "s3cret!",
		}

		_, err := svc.Register(ctx, params)
		require.NoError(t, err)

		_, err = svc.Register(ctx, params)
		require.ErrorIs(t, err, apperr.EmailExistsErr)
	})

	t.Run("Should log in with the registered password", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		svc := newAuthService(userRepo)

		_, err := svc.Register(ctx, service.RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "s3cret!",
			Role:     model.RoleAdmin,
		})
		require.NoError(t, err)

		result, err := svc.Login(ctx, service.LoginParams{
			Email:    "alice@example.com",
			Password: "s3cret!",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, model.RoleAdmin, result.User.Role)
	})

	t.Run("Should reject a wrong password and an unknown email alike", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		svc := newAuthService(userRepo)

		_, err := svc.Register(ctx, service.RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "s3cret!",
		})
		require.NoError(t, err)

		_, err = svc.Login(ctx, service.LoginParams{Email: "alice@example.com", Password: "wrong"})
		require.ErrorIs(t, err, apperr.InvalidCredentialsErr)

		_, err = svc.Login(ctx, service.LoginParams{Email: "bob@example.com", Password: "s3cret!"})
		require.ErrorIs(t, err, apperr.InvalidCredentialsErr)
	})

	t.Run("Should resolve the acting user from a freshly issued token", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		svc := newAuthService(userRepo)

		registered, err := svc.Register(ctx, service.RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "s3cret!",
		})
		require.NoError(t, err)

		user, err := svc.ResolveUser(ctx, registered.Token)

		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, user.ID)
	})

	t.Run("Should reject a garbage token", func(t *testing.T) {
		svc := newAuthService(newFakeUserRepo())

		_, err := svc.ResolveUser(ctx, "not.a.token")

		require.ErrorIs(t, err, apperr.InvalidTokenErr)
	})

	t.Run("Should reject a token whose user no longer exists", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		svc := newAuthService(userRepo)

		registered, err := svc.Register(ctx, service.RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "s3cret!",
		})
		require.NoError(t, err)

		delete(userRepo.byID, registered.User.ID)

		_, err = svc.ResolveUser(ctx, registered.Token)
		require.ErrorIs(t, err, apperr.InvalidTokenErr)
	})
}
