package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/bookhubapp/bookhub/internal/model"
	"github.com/bookhubapp/bookhub/internal/pkg/dbutil"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
)

var bookFields = []string{
	"id", "google_books_id", "slug", "title", "authors", "description",
	"cover_image", "info_link", "preview_link", "published_date",
	"page_count", "categories", "is_curated", "is_featured", "view_count",
	"ctime", "mtime",
}

type BookRepo struct {
	db *sql.DB
}

func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{db: db}
}

func (r *BookRepo) Create(ctx context.Context, book *model.Book) error {
	data := map[string]interface{}{
		"id":              book.ID,
		"google_books_id": book.GoogleBooksID,
		"slug":            book.Slug,
		"title":           book.Title,
		"authors":         book.Authors,
		"description":     book.Description,
		"cover_image":     book.CoverImage,
		"info_link":       book.InfoLink,
		"preview_link":    book.PreviewLink,
		"published_date":  book.PublishedDate,
		"page_count":      book.PageCount,
		"categories":      book.Categories,
		"is_curated":      book.IsCurated,
		"is_featured":     book.IsFeatured,
		"view_count":      book.ViewCount,
		"ctime":           book.Ctime,
		"mtime":           book.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("books", []map[string]interface{}{data})
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

func (r *BookRepo) GetBySlug(ctx context.Context, slug string) (*model.Book, error) {
	return r.getBy(ctx, map[string]interface{}{"slug": slug})
}

func (r *BookRepo) GetByID(ctx context.Context, bookID string) (*model.Book, error) {
	return r.getBy(ctx, map[string]interface{}{"id": bookID})
}

func (r *BookRepo) GetByGoogleBooksID(ctx context.Context, googleBooksID string) (*model.Book, error) {
	return r.getBy(ctx, map[string]interface{}{"google_books_id": googleBooksID})
}

func (r *BookRepo) getBy(ctx context.Context, where map[string]interface{}) (*model.Book, error) {
	sqlStr, args, err := builder.BuildSelect("books", where, bookFields)
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
	return scanBook(rows)
}

type BookFilter struct {
	CuratedOnly  bool
	FeaturedOnly bool
	Offset       uint
	Limit        uint
}

func (r *BookRepo) List(ctx context.Context, filter BookFilter) ([]*model.Book, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc",
	}
	if filter.CuratedOnly {
		where["is_curated"] = 1
	}
	if filter.FeaturedOnly {
		where["is_featured"] = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	where["_limit"] = []uint{filter.Offset, limit}
	sqlStr, args, err := builder.BuildSelect("books", where, bookFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (r *BookRepo) ListByIDs(ctx context.Context, bookIDs []string) ([]*model.Book, error) {
	if len(bookIDs) == 0 {
		return nil, nil
	}
	where := map[string]interface{}{"id in": bookIDs}
	sqlStr, args, err := builder.BuildSelect("books", where, bookFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// IncrementViewCount is best-effort; a missed increment is not an error
// worth failing a page view over, but the caller decides that.
func (r *BookRepo) IncrementViewCount(ctx context.Context, bookID string) error {
	sqlStr := "UPDATE books SET view_count = view_count + 1 WHERE id = $1"
	_, err := r.db.ExecContext(ctx, sqlStr, bookID)
	return err
}

func scanBook(rows *sql.Rows) (*model.Book, error) {
	var book model.Book
	if err := rows.Scan(
		&book.ID, &book.GoogleBooksID, &book.Slug, &book.Title, &book.Authors,
		&book.Description, &book.CoverImage, &book.InfoLink, &book.PreviewLink,
		&book.PublishedDate, &book.PageCount, &book.Categories, &book.IsCurated,
		&book.IsFeatured, &book.ViewCount, &book.Ctime, &book.Mtime,
	); err != nil {
		return nil, err
	}
	return &book, nil
}
