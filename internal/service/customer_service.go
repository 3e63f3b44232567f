package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront-identity/internal/domain"
	"storefront-identity/internal/repository"
	"storefront-identity/internal/token"
)

// CustomerUpdate carries the admin-editable customer fields. Nil fields are
// left untouched (partial update semantics).
type CustomerUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	IsActive  *bool
}

// CustomerService is the admin-facing customer management surface, including
// the impersonation controller. Every operation assumes the caller already
// passed the admin gate; authority is not re-checked here.
type CustomerService interface {
	List(ctx context.Context, search, status string) ([]domain.User, error)
	Update(ctx context.Context, id string, update CustomerUpdate) error
	ResetPassword(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
	Impersonate(ctx context.Context, targetID string) (string, *domain.User, error)
}

type customerService struct {
	users      repository.UserRepository
	activity   repository.ActivityRepository
	tokens     *token.Service
	adminEmail string
}

func NewCustomerService(users repository.UserRepository, activity repository.ActivityRepository, tokens *token.Service, adminEmail string) CustomerService {
	return &customerService{
		users:      users,
		activity:   activity,
		tokens:     tokens,
		adminEmail: adminEmail,
	}
}

func (s *customerService) List(ctx context.Context, search, status string) ([]domain.User, error) {
	filter := repository.UserFilter{Search: search}
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "":
	case "active":
		active := true
		filter.Active = &active
	case "inactive", "blocked":
		active := false
		filter.Active = &active
	}

	users, err := s.users.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *customerService) Update(ctx context.Context, id string, update CustomerUpdate) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if update.FirstName != nil {
		user.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		user.LastName = strings.TrimSpace(*update.LastName)
	}
	if update.Email != nil {
		user.Email = strings.TrimSpace(*update.Email)
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	return s.users.Update(ctx, user)
}

func (s *customerService) ResetPassword(ctx context.Context, id string) (string, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash temporary password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	// plaintext is returned exactly once and never persisted
	return tempPassword, nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// Impersonate mints a credential token for the target customer on behalf of
// the admin. The token is indistinguishable from one obtained by a normal
// login; the only server-side trace is the appended activity event. Exiting
// impersonation is purely client-side.
func (s *customerService) Impersonate(ctx context.Context, targetID string) (string, *domain.User, error) {
	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return "", nil, err
	}

	tok, err := s.tokens.Mint(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("mint impersonation token: %w", err)
	}

	event := &domain.ActivityEvent{
		ID:        uuid.NewString(),
		UserID:    token.AdminSubject,
		Email:     s.adminEmail,
		EventType: domain.EventImpersonate,
		Timestamp: time.Now().UTC(),
	}
	if err := s.activity.Append(ctx, event); err != nil {
		return "", nil, err
	}

	return tok, sanitizeUser(user), nil
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
