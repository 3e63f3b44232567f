package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdminAuthenticator(t *testing.T) {
	t.Parallel()

	auth := NewAdminAuthenticator("admin@example.com", "s3cret")

	require.True(t, auth.Verify("admin@example.com", "s3cret"))
	require.True(t, auth.Verify("  admin@example.com  ", "s3cret"))
	require.False(t, auth.Verify("admin@example.com", "wrong"))
	require.False(t, auth.Verify("other@example.com", "s3cret"))
	require.False(t, auth.Verify("", ""))
	require.Equal(t, "admin@example.com", auth.Email())
}

func TestAdminAuthenticatorUnconfigured(t *testing.T) {
	t.Parallel()

	auth := NewAdminAuthenticator("", "")
	require.False(t, auth.Verify("", ""))
}
