package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront-identity/internal/domain"
	"storefront-identity/internal/repository"
)

// ProfileUpdate carries the self-service profile fields. Nil fields are left
// untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Username  *string
}

// UserService describes customer-facing identity lifecycle operations. Every
// successful register and authenticate appends exactly one activity event.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	RecordLogout(ctx context.Context, userID, email string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error
}

type userService struct {
	users    repository.UserRepository
	activity repository.ActivityRepository
}

func NewUserService(users repository.UserRepository, activity repository.ActivityRepository) UserService {
	return &userService{users: users, activity: activity}
}

func (s *userService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Validation("Please enter a valid email")
	}
	if len(password) < 8 {
		return nil, domain.Validation("Please enter a strong password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.appendEvent(ctx, user.ID, user.Email, domain.EventSignup); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.appendEvent(ctx, user.ID, user.Email, domain.EventLogin); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) RecordLogout(ctx context.Context, userID, email string) error {
	if userID == "" || email == "" {
		return domain.Validation("Missing userId or email")
	}
	return s.appendEvent(ctx, userID, email, domain.EventLogout)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		user.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		user.LastName = strings.TrimSpace(*update.LastName)
	}
	if update.Username != nil {
		user.Username = strings.TrimSpace(*update.Username)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.Validation("Current password is incorrect")
	}
	if len(newPassword) < 6 {
		return domain.Validation("New password must be at least 6 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	return s.users.Update(ctx, user)
}

func (s *userService) appendEvent(ctx context.Context, userID, email string, eventType domain.EventType) error {
	return s.activity.Append(ctx, &domain.ActivityEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	})
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
