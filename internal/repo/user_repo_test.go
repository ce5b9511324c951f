package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookhubapp/bookhub/internal/model"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
	"github.com/bookhubapp/bookhub/internal/pkg/timeutil"
	"github.com/bookhubapp/bookhub/internal/repo"
	"github.com/bookhubapp/bookhub/internal/testutil"
)

func newPendingUser(id, email, username string) *model.User {
	now := timeutil.NowUnix()
	return &model.User{
		ID:           id,
		Email:        email,
		Username:     username,
		PasswordHash: "x",
		IsActive:     model.UserInactive,
		IsVerified:   0,
		Ctime:        now,
		Mtime:        now,
	}
}

func TestUserRepoCreateAndActivate(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	user := newPendingUser("user-act-1", "act1@example.com", "act1")
	require.NoError(t, users.Create(context.Background(), user))

	dup := newPendingUser("user-act-2", "act1@example.com", "act2")
	require.ErrorIs(t, users.Create(context.Background(), dup), appErr.ErrConflict)

	fetched, err := users.GetByUsername(context.Background(), "act1")
	require.NoError(t, err)
	require.Equal(t, model.UserInactive, fetched.IsActive)
	require.Equal(t, 0, fetched.IsVerified)

	require.NoError(t, users.Activate(context.Background(), user.ID, timeutil.NowUnix()))
	fetched, err = users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, model.UserActive, fetched.IsActive)
	require.Equal(t, 1, fetched.IsVerified)

	require.ErrorIs(t, users.Activate(context.Background(), "missing", timeutil.NowUnix()), appErr.ErrNotFound)
}

func TestUserRepoDeleteUnverifiedBefore(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	now := timeutil.NowUnix()

	stale := newPendingUser("user-del-1", "del1@example.com", "del1")
	stale.Ctime = now - 600
	require.NoError(t, users.Create(context.Background(), stale))

	fresh := newPendingUser("user-del-2", "del2@example.com", "del2")
	require.NoError(t, users.Create(context.Background(), fresh))

	verified := newPendingUser("user-del-3", "del3@example.com", "del3")
	verified.Ctime = now - 600
	require.NoError(t, users.Create(context.Background(), verified))
	require.NoError(t, users.Activate(context.Background(), verified.ID, now))

	removed, err := users.DeleteUnverifiedBefore(context.Background(), now-180)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	_, err = users.GetByID(context.Background(), stale.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
	_, err = users.GetByID(context.Background(), fresh.ID)
	require.NoError(t, err)
	_, err = users.GetByID(context.Background(), verified.ID)
	require.NoError(t, err)
}
