package service

import (
	"context"
	"errors"
	"time"

	"storefront-identity/internal/domain"
	"storefront-identity/internal/repository"
	"storefront-identity/internal/token"
)

// ActivityEntry is an audit event joined with the actor's display name.
type ActivityEntry struct {
	UserID    string
	Name      string
	Email     string
	EventType domain.EventType
	Timestamp time.Time
}

// ActivityService reads the audit trail for the admin console.
type ActivityService interface {
	List(ctx context.Context) ([]ActivityEntry, error)
}

type activityService struct {
	activity repository.ActivityRepository
	users    repository.UserRepository
}

func NewActivityService(activity repository.ActivityRepository, users repository.UserRepository) ActivityService {
	return &activityService{activity: activity, users: users}
}

// List returns every recorded event, newest first, enriched with the actor's
// current display name. Events whose user record has since been deleted keep
// the email snapshot as the name so the trail stays complete.
func (s *activityService) List(ctx context.Context) ([]ActivityEntry, error) {
	events, err := s.activity.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	entries := make([]ActivityEntry, 0, len(events))
	for _, event := range events {
		name, ok := names[event.UserID]
		if !ok {
			name, err = s.resolveName(ctx, event)
			if err != nil {
				return nil, err
			}
			names[event.UserID] = name
		}
		entries = append(entries, ActivityEntry{
			UserID:    event.UserID,
			Name:      name,
			Email:     event.Email,
			EventType: event.EventType,
			Timestamp: event.Timestamp,
		})
	}
	return entries, nil
}

func (s *activityService) resolveName(ctx context.Context, event domain.ActivityEvent) (string, error) {
	if token.IsAdminSubject(event.UserID) {
		return "Administrator", nil
	}
	user, err := s.users.GetByID(ctx, event.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return event.Email, nil
		}
		return "", err
	}
	return user.DisplayName(), nil
}
