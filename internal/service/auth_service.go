package service

import (
	"context"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users repository.UserRepositoryInterface
}

func NewAuthService(users repository.UserRepositoryInterface) *AuthService {
	return &AuthService{users: users}
}

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates a user with a bcrypt-hashed password. The returned user's
// hash field is populated but never serialized.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if len(in.FirstName) < 2 || len(in.LastName) < 2 {
		return nil, apperr.Validationf("First and last name must be at least 2 characters")
	}
	if len(in.Password) < 8 {
		return nil, apperr.Validationf("Password must be at least 8 characters")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperr.Validationf("Passwords do not match")
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflictf("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         "member",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. The failure message is identical for an unknown
// email and a wrong password so account existence never leaks.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Authf("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Authf("Invalid email or password")
	}
	return user, nil
}
