package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront-identity/internal/repository"
	"storefront-identity/internal/repository/sqlite"
	"storefront-identity/internal/token"
)

const testAdminEmail = "admin@example.com"

type testEnv struct {
	users     UserService
	customers CustomerService
	activity  ActivityService
	userRepo  repository.UserRepository
	events    repository.ActivityRepository
	tokens    *token.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, activityRepo.Init(ctx))

	tokens := token.NewService("test-secret")
	return &testEnv{
		users:     NewUserService(userRepo, activityRepo),
		customers: NewCustomerService(userRepo, activityRepo, tokens, testAdminEmail),
		activity:  NewActivityService(activityRepo, userRepo),
		userRepo:  userRepo,
		events:    activityRepo,
		tokens:    tokens,
	}
}
