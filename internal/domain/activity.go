package domain

import "time"

// EventType tags an activity event. It is an open set of string tags so new
// event kinds do not require a schema change.
type EventType string

const (
	EventLogin       EventType = "login"
	EventLogout      EventType = "logout"
	EventSignup      EventType = "signup"
	EventImpersonate EventType = "impersonate"
)

// ActivityEvent is an append-only audit record of an identity-changing action.
// The email is a snapshot taken at event time; the user record it points to
// may be mutated or deleted later.
type ActivityEvent struct {
	ID        string
	UserID    string
	Email     string
	EventType EventType
	Timestamp time.Time
}
