package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront-identity/internal/domain"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	start := time.Now().UTC()

	user, err := env.users.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Empty(t, user.PasswordHash, "sanitized user must not carry the hash")
	require.True(t, user.IsActive)

	got, err := env.users.Authenticate(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = env.users.Authenticate(ctx, "alice@example.com", "wrong-password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// one signup and one login event, each stamped after the request started
	events, err := env.events.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	kinds := map[domain.EventType]int{}
	for _, event := range events {
		kinds[event.EventType]++
		require.False(t, event.Timestamp.Before(start.Truncate(time.Second)))
	}
	require.Equal(t, map[domain.EventType]int{domain.EventSignup: 1, domain.EventLogin: 1}, kinds)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, "Bad", "not-an-email", "password123")
	require.True(t, domain.IsValidation(err))

	_, err = env.users.Register(ctx, "Weak", "weak@example.com", "short")
	require.True(t, domain.IsValidation(err))

	// failed registrations must leave no audit trace
	events, err := env.events.List(ctx)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, "Bob", "bob@example.com", "password123")
	require.NoError(t, err)

	_, err = env.users.Register(ctx, "Bob Again", "bob@example.com", "password456")
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = env.users.Register(ctx, "Bob Shouting", "BOB@EXAMPLE.COM", "password456")
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	// unknown email and wrong password are indistinguishable to the caller
	_, err := env.users.Authenticate(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRecordLogout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.Error(t, env.users.RecordLogout(ctx, "", "a@example.com"))
	require.Error(t, env.users.RecordLogout(ctx, "user-1", ""))

	require.NoError(t, env.users.RecordLogout(ctx, "user-1", "a@example.com"))
	events, err := env.events.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, domain.EventLogout, events[0].EventType)
}

func TestUpdateProfilePartial(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "Carol", "carol@example.com", "password123")
	require.NoError(t, err)

	first := "Carol"
	username := "carol_s"
	_, err = env.users.UpdateProfile(ctx, user.ID, ProfileUpdate{FirstName: &first, Username: &username})
	require.NoError(t, err)

	// a second partial update leaves omitted fields untouched
	last := "Smith"
	updated, err := env.users.UpdateProfile(ctx, user.ID, ProfileUpdate{LastName: &last})
	require.NoError(t, err)
	require.Equal(t, "Carol", updated.FirstName)
	require.Equal(t, "Smith", updated.LastName)
	require.Equal(t, "carol_s", updated.Username)

	_, err = env.users.UpdateProfile(ctx, "no-such-id", ProfileUpdate{LastName: &last})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "Dan", "dan@example.com", "password123")
	require.NoError(t, err)

	err = env.users.ChangePassword(ctx, user.ID, "wrong-current", "newpassword")
	require.True(t, domain.IsValidation(err))

	err = env.users.ChangePassword(ctx, user.ID, "password123", "tiny")
	require.True(t, domain.IsValidation(err))

	require.NoError(t, env.users.ChangePassword(ctx, user.ID, "password123", "newpassword"))

	_, err = env.users.Authenticate(ctx, "dan@example.com", "password123")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = env.users.Authenticate(ctx, "dan@example.com", "newpassword")
	require.NoError(t, err)
}
