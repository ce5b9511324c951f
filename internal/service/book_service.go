package service

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bookhubapp/bookhub/internal/model"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
	"github.com/bookhubapp/bookhub/internal/pkg/timeutil"
	"github.com/bookhubapp/bookhub/internal/repo"
)

type BookService struct {
	books  *repo.BookRepo
	themes *repo.ThemeRepo
}

func NewBookService(books *repo.BookRepo, themes *repo.ThemeRepo) *BookService {
	return &BookService{books: books, themes: themes}
}

func (s *BookService) Browse(ctx context.Context, filter repo.BookFilter) ([]*model.Book, error) {
	return s.books.List(ctx, filter)
}

// GetBySlug returns the book and bumps its view counter. A failed
// bump is logged, not surfaced; the page view matters more.
func (s *BookService) GetBySlug(ctx context.Context, slug string) (*model.Book, error) {
	book, err := s.books.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.books.IncrementViewCount(ctx, book.ID); err != nil {
		logutil.GetLogger(ctx).Warn("increment view count failed",
			zap.String("book_id", book.ID), zap.Error(err))
	} else {
		book.ViewCount++
	}
	return book, nil
}

// FindBySlug resolves a book without touching its view counter; used
// where the book is looked up as a side step, not viewed.
func (s *BookService) FindBySlug(ctx context.Context, slug string) (*model.Book, error) {
	return s.books.GetBySlug(ctx, slug)
}

func (s *BookService) ListThemes(ctx context.Context) ([]*model.Theme, error) {
	return s.themes.ListActive(ctx)
}

// CreateTheme registers a curated shelf front. Slug collisions are a
// conflict, not an overwrite.
func (s *BookService) CreateTheme(ctx context.Context, name, tagline string, sortOrder int) (*model.Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErr.ErrInvalid
	}
	theme := &model.Theme{
		ID:        newID(),
		Slug:      slugify(name),
		Name:      name,
		Tagline:   tagline,
		SortOrder: sortOrder,
		IsActive:  1,
		Ctime:     timeutil.NowUnix(),
	}
	if theme.Slug == "" {
		theme.Slug = theme.ID[:12]
	}
	if err := s.themes.Create(ctx, theme); err != nil {
		return nil, err
	}
	return theme, nil
}

// AttachToTheme links an imported book to a theme. Re-attaching is
// idempotent.
func (s *BookService) AttachToTheme(ctx context.Context, themeSlug, bookID string, curatorPick bool) error {
	theme, err := s.themes.GetBySlug(ctx, themeSlug)
	if err != nil {
		return err
	}
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	link := &model.BookTheme{
		BookID:  book.ID,
		ThemeID: theme.ID,
		Ctime:   timeutil.NowUnix(),
	}
	if curatorPick {
		link.CuratorPick = 1
	}
	if err := s.themes.Attach(ctx, link); err != nil && !appErr.IsConflict(err) {
		return err
	}
	return nil
}

func (s *BookService) ThemeBooks(ctx context.Context, slug string) (*model.Theme, []*model.Book, error) {
	theme, err := s.themes.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	ids, err := s.themes.BookIDsForTheme(ctx, theme.ID)
	if err != nil {
		return nil, nil, err
	}
	books, err := s.books.ListByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return theme, books, nil
}
