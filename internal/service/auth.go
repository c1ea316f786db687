package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/auth"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/repository"
)

type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

type LoginParams struct {
	Email    string
	Password string
}

// AuthResult is the issued credential plus the public view of the user.
type AuthResult struct {
	Token string
	User  model.User
}

type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (AuthResult, error)
	Login(ctx context.Context, params LoginParams) (AuthResult, error)

	// ResolveUser maps a bearer token to the acting user. It backs the auth
	// gate that runs before the checkout engine.
	ResolveUser(ctx context.Context, token string) (model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	hasher   *auth.PasswordHasher
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	hasher *auth.PasswordHasher,
) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

func (s *authService) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	if _, err := s.userRepo.GetUserByEmail(ctx, params.Email); err == nil {
		return AuthResult{}, apperr.EmailExistsErr
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, fmt.Errorf("user repository get user by email: %w", err)
	}

	role := params.Role
	if role == "" {
		role = model.RoleCustomer
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	user := model.User{
		ID:           id,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return AuthResult{}, apperr.EmailExistsErr
		}
		return AuthResult{}, fmt.Errorf("user repository create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate token: %w", err)
	}

	return AuthResult{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, params LoginParams) (AuthResult, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, params.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, apperr.InvalidCredentialsErr
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("user repository get user by email: %w", err)
	}

	if !s.hasher.Verify(params.Password, user.PasswordHash) {
		return AuthResult{}, apperr.InvalidCredentialsErr
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate token: %w", err)
	}

	return AuthResult{Token: token, User: user}, nil
}

func (s *authService) ResolveUser(ctx context.Context, token string) (model.User, error) {
	userID, err := s.tokens.VerifyToken(token)
	if err != nil {
		return model.User{}, apperr.InvalidTokenErr
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return model.User{}, apperr.InvalidTokenErr
	}
	if err != nil {
		return model.User{}, fmt.Errorf("user repository get user by id: %w", err)
	}

	return user, nil
}
