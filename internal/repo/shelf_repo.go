package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/bookhubapp/bookhub/internal/model"
	"github.com/bookhubapp/bookhub/internal/pkg/dbutil"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
)

type ShelfRepo struct {
	db *sql.DB
}

func NewShelfRepo(db *sql.DB) *ShelfRepo {
	return &ShelfRepo{db: db}
}

func (r *ShelfRepo) Add(ctx context.Context, entry *model.ShelfEntry) error {
	data := map[string]interface{}{
		"user_id": entry.UserID,
		"book_id": entry.BookID,
		"shelf":   entry.Shelf,
		"ctime":   entry.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("book_shelves", []map[string]interface{}{data})
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

func (r *ShelfRepo) Remove(ctx context.Context, userID, bookID, shelf string) error {
	where := map[string]interface{}{
		"user_id": userID,
		"book_id": bookID,
		"shelf":   shelf,
	}
	sqlStr, args, err := builder.BuildDelete("book_shelves", where)
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

func (r *ShelfRepo) ListBookIDs(ctx context.Context, userID, shelf string) ([]string, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"shelf":    shelf,
		"_orderby": "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("book_shelves", where, []string{"book_id"})
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
