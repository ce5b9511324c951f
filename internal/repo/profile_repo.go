package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/bookhubapp/bookhub/internal/model"
	"github.com/bookhubapp/bookhub/internal/pkg/dbutil"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
)

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Create(ctx context.Context, profile *model.UserProfile) error {
	data := map[string]interface{}{
		"user_id": profile.UserID,
		"bio":     profile.Bio,
		"avatar":  profile.Avatar,
		"ctime":   profile.Ctime,
		"mtime":   profile.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("user_profiles", []map[string]interface{}{data})
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

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	where := map[string]interface{}{"user_id": userID}
	sqlStr, args, err := builder.BuildSelect("user_profiles", where, []string{"user_id", "bio", "avatar", "ctime", "mtime"})
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
	var profile model.UserProfile
	if err := rows.Scan(&profile.UserID, &profile.Bio, &profile.Avatar, &profile.Ctime, &profile.Mtime); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepo) Update(ctx context.Context, profile *model.UserProfile) error {
	where := map[string]interface{}{"user_id": profile.UserID}
	update := map[string]interface{}{
		"bio":    profile.Bio,
		"avatar": profile.Avatar,
		"mtime":  profile.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("user_profiles", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
