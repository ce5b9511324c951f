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

func TestThemeRepoCreateAndList(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	themes := repo.NewThemeRepo(db)
	now := timeutil.NowUnix()
	theme := &model.Theme{
		ID:        "theme-1",
		Slug:      "space-opera",
		Name:      "Space Opera",
		Tagline:   "galaxy-spanning adventures",
		SortOrder: 1,
		IsActive:  1,
		Ctime:     now,
	}
	require.NoError(t, themes.Create(context.Background(), theme))

	dup := &model.Theme{ID: "theme-2", Slug: "space-opera", Name: "Space Opera II", IsActive: 1, Ctime: now}
	require.ErrorIs(t, themes.Create(context.Background(), dup), appErr.ErrConflict)

	fetched, err := themes.GetBySlug(context.Background(), "space-opera")
	require.NoError(t, err)
	require.Equal(t, "Space Opera", fetched.Name)

	inactive := &model.Theme{ID: "theme-3", Slug: "retired", Name: "Retired", IsActive: 0, Ctime: now}
	require.NoError(t, themes.Create(context.Background(), inactive))

	active, err := themes.ListActive(context.Background())
	require.NoError(t, err)
	for _, item := range active {
		require.NotEqual(t, "retired", item.Slug)
	}
}

func TestThemeRepoAttach(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	themes := repo.NewThemeRepo(db)
	now := timeutil.NowUnix()
	theme := &model.Theme{ID: "theme-att", Slug: "attach-test", Name: "Attach", IsActive: 1, Ctime: now}
	require.NoError(t, themes.Create(context.Background(), theme))

	link := &model.BookTheme{BookID: "book-att-1", ThemeID: theme.ID, CuratorPick: 1, SortOrder: 0, Ctime: now}
	require.NoError(t, themes.Attach(context.Background(), link))
	require.ErrorIs(t, themes.Attach(context.Background(), link), appErr.ErrConflict)

	ids, err := themes.BookIDsForTheme(context.Background(), theme.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"book-att-1"}, ids)
}
