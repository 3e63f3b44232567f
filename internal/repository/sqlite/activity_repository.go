package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"storefront-identity/internal/domain"
	"storefront-identity/internal/repository"
)

// event_type is free-form text so new event kinds need no migration
const createActivityTable = `
CREATE TABLE IF NOT EXISTS user_activity (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	email TEXT NOT NULL,
	event_type TEXT NOT NULL,
	timestamp DATETIME NOT NULL
);
`

const createActivityIndex = `
CREATE INDEX IF NOT EXISTS idx_user_activity_timestamp ON user_activity (timestamp DESC);
`

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createActivityTable); err != nil {
		return fmt.Errorf("create user_activity table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createActivityIndex); err != nil {
		return fmt.Errorf("create user_activity index: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Append(ctx context.Context, event *domain.ActivityEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_activity (id, user_id, email, event_type, timestamp)
VALUES (?, ?, ?, ?, ?)`,
		event.ID,
		event.UserID,
		event.Email,
		string(event.EventType),
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}

func (r *ActivityRepository) List(ctx context.Context) ([]domain.ActivityEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, email, event_type, timestamp
FROM user_activity
ORDER BY timestamp DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list activity events: %w", err)
	}
	defer rows.Close()

	var events []domain.ActivityEvent
	for rows.Next() {
		var event domain.ActivityEvent
		var eventType string
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Email,
			&eventType,
			&event.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan activity event: %w", err)
		}
		event.EventType = domain.EventType(eventType)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity events: %w", err)
	}
	return events, nil
}
