package domain

import (
	"strings"
	"time"
)

// User represents a customer identity record.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	FirstName    string
	LastName     string
	Username     string
	AvatarPath   string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the best available human-readable name for the user.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	return u.Email
}
