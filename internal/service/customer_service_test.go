package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront-identity/internal/domain"
	"storefront-identity/internal/token"
)

func TestListCustomers(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	bob, err := env.users.Register(ctx, "Bob", "bob@example.com", "password123")
	require.NoError(t, err)

	blocked := false
	require.NoError(t, env.customers.Update(ctx, bob.ID, CustomerUpdate{IsActive: &blocked}))

	all, err := env.customers.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, u := range all {
		require.Empty(t, u.PasswordHash)
	}

	actives, err := env.customers.List(ctx, "", "Active")
	require.NoError(t, err)
	require.Len(t, actives, 1)
	require.Equal(t, "Alice", actives[0].Name)

	// "blocked" and "inactive" both map to isActive=false
	for _, status := range []string{"inactive", "blocked"} {
		inactives, err := env.customers.List(ctx, "", status)
		require.NoError(t, err)
		require.Len(t, inactives, 1)
		require.Equal(t, "Bob", inactives[0].Name)
	}

	found, err := env.customers.List(ctx, "ali", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Alice", found[0].Name)
}

func TestUpdateCustomerPartial(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "Carol", "carol@example.com", "password123")
	require.NoError(t, err)

	first := "Carol"
	require.NoError(t, env.customers.Update(ctx, user.ID, CustomerUpdate{FirstName: &first}))

	email := "carol.smith@example.com"
	blocked := false
	require.NoError(t, env.customers.Update(ctx, user.ID, CustomerUpdate{Email: &email, IsActive: &blocked}))

	got, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Carol", got.FirstName)
	require.Equal(t, "carol.smith@example.com", got.Email)
	require.False(t, got.IsActive)

	require.ErrorIs(t, env.customers.Update(ctx, "no-such-id", CustomerUpdate{FirstName: &first}), domain.ErrNotFound)
}

func TestResetPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "Dan", "dan@example.com", "password123")
	require.NoError(t, err)

	temp, err := env.customers.ResetPassword(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, temp, 12)

	// previous password no longer authenticates, the temporary one does
	_, err = env.users.Authenticate(ctx, "dan@example.com", "password123")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = env.users.Authenticate(ctx, "dan@example.com", temp)
	require.NoError(t, err)

	_, err = env.customers.ResetPassword(ctx, "no-such-id")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCustomer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "Eve", "eve@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, env.customers.Delete(ctx, user.ID))
	require.ErrorIs(t, env.customers.Delete(ctx, user.ID), domain.ErrNotFound)

	_, err = env.users.GetByID(ctx, user.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImpersonate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "Frank", "frank@example.com", "password123")
	require.NoError(t, err)

	tok, target, err := env.customers.Impersonate(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, target.ID)
	require.Empty(t, target.PasswordHash)

	// the token resolves to the customer, same as a normal login token
	subject, err := env.tokens.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, user.ID, subject)

	// exactly one impersonate event, attributed to the admin principal
	events, err := env.events.List(ctx)
	require.NoError(t, err)
	var impersonations []domain.ActivityEvent
	for _, event := range events {
		if event.EventType == domain.EventImpersonate {
			impersonations = append(impersonations, event)
		}
	}
	require.Len(t, impersonations, 1)
	require.Equal(t, token.AdminSubject, impersonations[0].UserID)
	require.Equal(t, testAdminEmail, impersonations[0].Email)
}

func TestImpersonateMissingUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.customers.Impersonate(ctx, "no-such-id")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// a failed impersonation leaves no audit trace
	events, err := env.events.List(ctx)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestActivityListEnrichment(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "Grace", "grace@example.com", "password123")
	require.NoError(t, err)
	_, _, err = env.customers.Impersonate(ctx, user.ID)
	require.NoError(t, err)

	entries, err := env.activity.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byType := map[domain.EventType]ActivityEntry{}
	for _, entry := range entries {
		byType[entry.EventType] = entry
	}
	require.Equal(t, "Grace", byType[domain.EventSignup].Name)
	require.Equal(t, "Administrator", byType[domain.EventImpersonate].Name)

	// deleting the user keeps the trail complete via the email snapshot
	require.NoError(t, env.customers.Delete(ctx, user.ID))
	entries, err = env.activity.List(ctx)
	require.NoError(t, err)
	byType = map[domain.EventType]ActivityEntry{}
	for _, entry := range entries {
		byType[entry.EventType] = entry
	}
	require.Equal(t, "grace@example.com", byType[domain.EventSignup].Name)
}
