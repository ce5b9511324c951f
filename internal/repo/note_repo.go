package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/bookhubapp/bookhub/internal/model"
	"github.com/bookhubapp/bookhub/internal/pkg/dbutil"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
)

var noteFields = []string{"id", "user_id", "book_id", "note", "is_public", "ctime", "mtime"}

type NoteRepo struct {
	db *sql.DB
}

func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

func (r *NoteRepo) Create(ctx context.Context, note *model.ReadingNote) error {
	data := map[string]interface{}{
		"id":        note.ID,
		"user_id":   note.UserID,
		"book_id":   note.BookID,
		"note":      note.Note,
		"is_public": note.IsPublic,
		"ctime":     note.Ctime,
		"mtime":     note.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("reading_notes", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *NoteRepo) Update(ctx context.Context, note *model.ReadingNote) error {
	where := map[string]interface{}{
		"id":      note.ID,
		"user_id": note.UserID,
	}
	update := map[string]interface{}{
		"note":      note.Note,
		"is_public": note.IsPublic,
		"mtime":     note.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("reading_notes", where, update)
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

func (r *NoteRepo) Delete(ctx context.Context, userID, noteID string) error {
	where := map[string]interface{}{
		"id":      noteID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("reading_notes", where)
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

func (r *NoteRepo) GetByID(ctx context.Context, noteID string) (*model.ReadingNote, error) {
	where := map[string]interface{}{"id": noteID}
	return r.selectOne(ctx, where)
}

func (r *NoteRepo) ListByUser(ctx context.Context, userID string) ([]*model.ReadingNote, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	return r.selectMany(ctx, where)
}

func (r *NoteRepo) ListPublicByBook(ctx context.Context, bookID string) ([]*model.ReadingNote, error) {
	where := map[string]interface{}{
		"book_id":   bookID,
		"is_public": 1,
		"_orderby":  "ctime desc",
	}
	return r.selectMany(ctx, where)
}

func (r *NoteRepo) selectOne(ctx context.Context, where map[string]interface{}) (*model.ReadingNote, error) {
	sqlStr, args, err := builder.BuildSelect("reading_notes", where, noteFields)
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
	return scanNote(rows)
}

func (r *NoteRepo) selectMany(ctx context.Context, where map[string]interface{}) ([]*model.ReadingNote, error) {
	sqlStr, args, err := builder.BuildSelect("reading_notes", where, noteFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var notes []*model.ReadingNote
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func scanNote(rows *sql.Rows) (*model.ReadingNote, error) {
	var note model.ReadingNote
	if err := rows.Scan(&note.ID, &note.UserID, &note.BookID, &note.Note, &note.IsPublic, &note.Ctime, &note.Mtime); err != nil {
		return nil, err
	}
	return &note, nil
}
