package service

import (
	"context"

	"github.com/bookhubapp/bookhub/internal/model"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
	"github.com/bookhubapp/bookhub/internal/pkg/timeutil"
	"github.com/bookhubapp/bookhub/internal/repo"
)

type ProfileService struct {
	profiles *repo.ProfileRepo
	shelves  *repo.ShelfRepo
	books    *repo.BookRepo
}

func NewProfileService(profiles *repo.ProfileRepo, shelves *repo.ShelfRepo, books *repo.BookRepo) *ProfileService {
	return &ProfileService{profiles: profiles, shelves: shelves, books: books}
}

// Get returns the profile, creating an empty one on first access.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !appErr.IsNotFound(err) {
		return nil, err
	}
	now := timeutil.NowUnix()
	profile = &model.UserProfile{UserID: userID, Ctime: now, Mtime: now}
	if err := s.profiles.Create(ctx, profile); err != nil && !appErr.IsConflict(err) {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Update(ctx context.Context, userID, bio, avatar string) (*model.UserProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Bio = bio
	profile.Avatar = avatar
	profile.Mtime = timeutil.NowUnix()
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func validShelf(shelf string) bool {
	switch shelf {
	case model.ShelfFavorite, model.ShelfReading, model.ShelfRead:
		return true
	}
	return false
}

// AddToShelf is idempotent: re-adding an already shelved book is not
// an error.
func (s *ProfileService) AddToShelf(ctx context.Context, userID, bookID, shelf string) error {
	if !validShelf(shelf) {
		return appErr.ErrInvalid
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return err
	}
	entry := &model.ShelfEntry{
		UserID: userID,
		BookID: bookID,
		Shelf:  shelf,
		Ctime:  timeutil.NowUnix(),
	}
	if err := s.shelves.Add(ctx, entry); err != nil && !appErr.IsConflict(err) {
		return err
	}
	return nil
}

func (s *ProfileService) RemoveFromShelf(ctx context.Context, userID, bookID, shelf string) error {
	if !validShelf(shelf) {
		return appErr.ErrInvalid
	}
	return s.shelves.Remove(ctx, userID, bookID, shelf)
}

func (s *ProfileService) ListShelf(ctx context.Context, userID, shelf string) ([]*model.Book, error) {
	if !validShelf(shelf) {
		return nil, appErr.ErrInvalid
	}
	ids, err := s.shelves.ListBookIDs(ctx, userID, shelf)
	if err != nil {
		return nil, err
	}
	return s.books.ListByIDs(ctx, ids)
}
