package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/bookhubapp/bookhub/internal/model"
	"github.com/bookhubapp/bookhub/internal/pkg/dbutil"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
)

var themeFields = []string{"id", "slug", "name", "tagline", "sort_order", "is_active", "ctime"}

type ThemeRepo struct {
	db *sql.DB
}

func NewThemeRepo(db *sql.DB) *ThemeRepo {
	return &ThemeRepo{db: db}
}

func (r *ThemeRepo) Create(ctx context.Context, theme *model.Theme) error {
	data := map[string]interface{}{
		"id":         theme.ID,
		"slug":       theme.Slug,
		"name":       theme.Name,
		"tagline":    theme.Tagline,
		"sort_order": theme.SortOrder,
		"is_active":  theme.IsActive,
		"ctime":      theme.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("themes", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ThemeRepo) GetBySlug(ctx context.Context, slug string) (*model.Theme, error) {
	where := map[string]interface{}{"slug": slug}
	sqlStr, args, err := builder.BuildSelect("themes", where, themeFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var theme model.Theme
	if err := rows.Scan(&theme.ID, &theme.Slug, &theme.Name, &theme.Tagline, &theme.SortOrder, &theme.IsActive, &theme.Ctime); err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *ThemeRepo) ListActive(ctx context.Context) ([]*model.Theme, error) {
	where := map[string]interface{}{
		"is_active": 1,
		"_orderby":  "sort_order asc, name asc",
	}
	sqlStr, args, err := builder.BuildSelect("themes", where, themeFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var themes []*model.Theme
	for rows.Next() {
		var theme model.Theme
		if err := rows.Scan(&theme.ID, &theme.Slug, &theme.Name, &theme.Tagline, &theme.SortOrder, &theme.IsActive, &theme.Ctime); err != nil {
			return nil, err
		}
		themes = append(themes, &theme)
	}
	return themes, rows.Err()
}

func (r *ThemeRepo) Attach(ctx context.Context, link *model.BookTheme) error {
	data := map[string]interface{}{
		"book_id":      link.BookID,
		"theme_id":     link.ThemeID,
		"curator_pick": link.CuratorPick,
		"sort_order":   link.SortOrder,
		"ctime":        link.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("book_themes", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ThemeRepo) BookIDsForTheme(ctx context.Context, themeID string) ([]string, error) {
	where := map[string]interface{}{
		"theme_id": themeID,
		"_orderby": "sort_order asc, ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("book_themes", where, []string{"book_id"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
