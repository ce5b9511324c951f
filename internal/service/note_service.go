package service

import (
	"bytes"
	"context"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/bookhubapp/bookhub/internal/model"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
	"github.com/bookhubapp/bookhub/internal/pkg/timeutil"
	"github.com/bookhubapp/bookhub/internal/repo"
)

type NoteService struct {
	notes    *repo.NoteRepo
	books    *repo.BookRepo
	markdown goldmark.Markdown
}

func NewNoteService(notes *repo.NoteRepo, books *repo.BookRepo) *NoteService {
	return &NoteService{
		notes:    notes,
		books:    books,
		markdown: goldmark.New(),
	}
}

func (s *NoteService) Create(ctx context.Context, userID, bookID, text string, isPublic bool) (*model.ReadingNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, appErr.ErrInvalid
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	note := &model.ReadingNote{
		ID:     newID(),
		UserID: userID,
		BookID: bookID,
		Note:   text,
		Ctime:  now,
		Mtime:  now,
	}
	if isPublic {
		note.IsPublic = 1
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, userID, noteID, text string, isPublic bool) (*model.ReadingNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, appErr.ErrInvalid
	}
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, appErr.ErrForbidden
	}
	note.Note = text
	note.IsPublic = 0
	if isPublic {
		note.IsPublic = 1
	}
	note.Mtime = timeutil.NowUnix()
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	return s.notes.Delete(ctx, userID, noteID)
}

func (s *NoteService) ListMine(ctx context.Context, userID string) ([]*model.ReadingNote, error) {
	return s.notes.ListByUser(ctx, userID)
}

type PublicNote struct {
	ID    string `json:"id"`
	HTML  string `json:"html"`
	Ctime int64  `json:"ctime"`
}

// PublicForBook lists the book's public notes with markdown rendered
// to HTML for display.
func (s *NoteService) PublicForBook(ctx context.Context, bookID string) ([]PublicNote, error) {
	notes, err := s.notes.ListPublicByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	result := make([]PublicNote, 0, len(notes))
	for _, note := range notes {
		var buf bytes.Buffer
		if err := s.markdown.Convert([]byte(note.Note), &buf); err != nil {
			return nil, err
		}
		result = append(result, PublicNote{
			ID:    note.ID,
			HTML:  buf.String(),
			Ctime: note.Ctime,
		})
	}
	return result, nil
}
