package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/bookhubapp/bookhub/internal/model"
	"github.com/bookhubapp/bookhub/internal/pkg/dbutil"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
)

var otpFields = []string{"id", "seq", "user_id", "code", "ctime", "expires_at"}

// OtpRepo is append-only: rows are inserted and never updated. Older
// rows for a user are superseded by newer ones, not invalidated.
type OtpRepo struct {
	db *sql.DB
}

func NewOtpRepo(db *sql.DB) *OtpRepo {
	return &OtpRepo{db: db}
}

func (r *OtpRepo) Create(ctx context.Context, token *model.OtpToken) error {
	data := map[string]interface{}{
		"id":         token.ID,
		"user_id":    token.UserID,
		"code":       token.Code,
		"ctime":      token.Ctime,
		"expires_at": token.ExpiresAt,
	}
	sqlStr, args, err := builder.BuildInsert("otp_tokens", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// LatestForUser returns the most recently created token for the user.
// ctime is second-granular, so the serial seq breaks ties: of two
// tokens inserted within the same second, the later insert wins.
func (r *OtpRepo) LatestForUser(ctx context.Context, userID string) (*model.OtpToken, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc, seq desc",
		"_limit":   []uint{0, 1},
	}
	sqlStr, args, err := builder.BuildSelect("otp_tokens", where, otpFields)
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
	var token model.OtpToken
	if err := rows.Scan(&token.ID, &token.Seq, &token.UserID, &token.Code, &token.Ctime, &token.ExpiresAt); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *OtpRepo) FindByUserAndCode(ctx context.Context, userID, code string) (*model.OtpToken, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"code":     code,
		"_orderby": "ctime desc, seq desc",
		"_limit":   []uint{0, 1},
	}
	sqlStr, args, err := builder.BuildSelect("otp_tokens", where, otpFields)
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
	var token model.OtpToken
	if err := rows.Scan(&token.ID, &token.Seq, &token.UserID, &token.Code, &token.Ctime, &token.ExpiresAt); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *OtpRepo) DeleteBefore(ctx context.Context, cutoff int64) (int64, error) {
	where := map[string]interface{}{"ctime <": cutoff}
	sqlStr, args, err := builder.BuildDelete("otp_tokens", where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
