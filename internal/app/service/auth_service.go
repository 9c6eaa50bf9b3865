package service

import (
	"context"
	"errors"
	"fmt"

	"flight_tracker/internal/common"
	"flight_tracker/internal/common/security"
	"flight_tracker/internal/domain/model"
	"flight_tracker/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdatePasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (s *AuthService) CreateAccount(ctx context.Context, req CredentialsRequest) error {
	if req.Username == "" || req.Password == "" {
		return common.ErrValidation
	}

	salt, err := security.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Salt:           salt,
		HashedPassword: security.HashPassword(req.Password, salt),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict for duplicate usernames
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login verifies the credentials and mints a session token. Unknown users and
// wrong passwords fail the same way so callers cannot probe which accounts
// exist.
func (s *AuthService) Login(ctx context.Context, req CredentialsRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrValidation
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.VerifyPassword(req.Password, user.Salt, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResponse{Message: "Login successful", Token: token}, nil
}

// UpdatePassword re-salts and re-hashes after verifying the current password.
// Unlike Login, an unknown username is reported as such.
func (s *AuthService) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	if req.Username == "" || req.CurrentPassword == "" || req.NewPassword == "" {
		return common.ErrValidation
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !security.VerifyPassword(req.CurrentPassword, user.Salt, user.HashedPassword) {
		return common.ErrUnauthorized
	}

	salt, err := security.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	hashed := security.HashPassword(req.NewPassword, salt)
	if err := s.userRepo.UpdateCredentials(ctx, req.Username, salt, hashed); err != nil {
		return fmt.Errorf("failed to update credentials: %w", err)
	}
	return nil
}
