package repo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookhubapp/bookhub/internal/model"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
	"github.com/bookhubapp/bookhub/internal/repo"
	"github.com/bookhubapp/bookhub/internal/testutil"
)

func TestOtpRepoLatestForUser(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	tokens := repo.NewOtpRepo(db)
	userID := "otp-user-1"

	_, err := tokens.LatestForUser(context.Background(), userID)
	require.ErrorIs(t, err, appErr.ErrNotFound)

	base := int64(1700000000)
	for i := 0; i < 3; i++ {
		require.NoError(t, tokens.Create(context.Background(), &model.OtpToken{
			ID:        fmt.Sprintf("otp-%d", i),
			UserID:    userID,
			Code:      fmt.Sprintf("%06d", i),
			Ctime:     base + int64(i),
			ExpiresAt: base + int64(i) + 120,
		}))
	}

	latest, err := tokens.LatestForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, "otp-2", latest.ID)
	require.Equal(t, "000002", latest.Code)
}

func TestOtpRepoLatestSameSecondInsertionOrderWins(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	tokens := repo.NewOtpRepo(db)
	userID := "otp-user-2"
	base := int64(1700000000)

	// ids sort against insertion order; seq must decide, not id
	require.NoError(t, tokens.Create(context.Background(), &model.OtpToken{
		ID: "otp-zz", UserID: userID, Code: "111111", Ctime: base, ExpiresAt: base + 120,
	}))
	require.NoError(t, tokens.Create(context.Background(), &model.OtpToken{
		ID: "otp-aa", UserID: userID, Code: "222222", Ctime: base, ExpiresAt: base + 120,
	}))

	latest, err := tokens.LatestForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, "otp-aa", latest.ID)
	require.Greater(t, latest.Seq, int64(0))
}

func TestOtpRepoFindByUserAndCode(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	tokens := repo.NewOtpRepo(db)
	userID := "otp-user-4"
	base := int64(1700000000)

	require.NoError(t, tokens.Create(context.Background(), &model.OtpToken{
		ID: "otp-find", UserID: userID, Code: "555555", Ctime: base, ExpiresAt: base + 120,
	}))

	found, err := tokens.FindByUserAndCode(context.Background(), userID, "555555")
	require.NoError(t, err)
	require.Equal(t, "otp-find", found.ID)

	_, err = tokens.FindByUserAndCode(context.Background(), userID, "555556")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestOtpRepoDeleteBefore(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	tokens := repo.NewOtpRepo(db)
	userID := "otp-user-3"
	base := int64(1700000000)

	require.NoError(t, tokens.Create(context.Background(), &model.OtpToken{
		ID: "otp-old", UserID: userID, Code: "333333", Ctime: base - 600, ExpiresAt: base - 480,
	}))
	require.NoError(t, tokens.Create(context.Background(), &model.OtpToken{
		ID: "otp-new", UserID: userID, Code: "444444", Ctime: base, ExpiresAt: base + 120,
	}))

	removed, err := tokens.DeleteBefore(context.Background(), base-180)
	require.NoError(t, err)
	require.GreaterOrEqual(t, removed, int64(1))

	latest, err := tokens.LatestForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, "otp-new", latest.ID)
}
