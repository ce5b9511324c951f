package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bookhubapp/bookhub/internal/catalog"
	"github.com/bookhubapp/bookhub/internal/filestore"
	"github.com/bookhubapp/bookhub/internal/model"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
	"github.com/bookhubapp/bookhub/internal/pkg/timeutil"
	"github.com/bookhubapp/bookhub/internal/repo"
)

type catalogSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]catalog.Volume, error)
	GetVolume(ctx context.Context, volumeID string) (*catalog.Volume, error)
}

// CatalogService bridges the external book catalog and the local
// books table.
type CatalogService struct {
	catalog catalogSearcher
	books   *repo.BookRepo
	covers  filestore.Store
	client  *http.Client
	baseURL string
}

func NewCatalogService(cat catalogSearcher, books *repo.BookRepo, covers filestore.Store, baseURL string) *CatalogService {
	return &CatalogService{
		catalog: cat,
		books:   books,
		covers:  covers,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

func (s *CatalogService) Search(ctx context.Context, query string, maxResults int) ([]catalog.Volume, error) {
	return s.catalog.Search(ctx, query, maxResults)
}

// Import pulls a volume from the catalog into the books table. An
// already-imported volume is returned as-is.
func (s *CatalogService) Import(ctx context.Context, volumeID string, curated bool) (*model.Book, error) {
	existing, err := s.books.GetByGoogleBooksID(ctx, volumeID)
	if err == nil {
		return existing, nil
	}
	if !appErr.IsNotFound(err) {
		return nil, err
	}
	volume, err := s.catalog.GetVolume(ctx, volumeID)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	book := &model.Book{
		ID:            newID(),
		GoogleBooksID: volume.ID,
		Slug:          slugify(volume.VolumeInfo.Title),
		Title:         volume.VolumeInfo.Title,
		Authors:       strings.Join(volume.VolumeInfo.Authors, ", "),
		Description:   volume.VolumeInfo.Description,
		CoverImage:    volume.VolumeInfo.ImageLinks.Thumbnail,
		InfoLink:      volume.VolumeInfo.InfoLink,
		PreviewLink:   volume.VolumeInfo.PreviewLink,
		PublishedDate: volume.VolumeInfo.PublishedDate,
		PageCount:     volume.VolumeInfo.PageCount,
		Categories:    strings.Join(volume.VolumeInfo.Categories, ", "),
		Ctime:         now,
		Mtime:         now,
	}
	if book.Slug == "" {
		book.Slug = book.ID[:12]
	}
	if curated {
		book.IsCurated = 1
	}
	if key, err := s.mirrorCover(ctx, book); err != nil {
		logutil.GetLogger(ctx).Warn("mirror cover failed",
			zap.String("volume_id", volume.ID), zap.Error(err))
	} else if key != "" {
		book.CoverImage = s.covers.URL(key, s.baseURL)
	}
	if err := s.books.Create(ctx, book); err != nil {
		if appErr.IsConflict(err) {
			// slug collision with a different volume
			book.Slug = book.Slug + "-" + book.ID[:6]
			if err := s.books.Create(ctx, book); err != nil {
				return nil, err
			}
			return book, nil
		}
		return nil, err
	}
	return book, nil
}

// mirrorCover downloads the remote thumbnail into the cover store so
// the app does not hotlink the catalog CDN.
func (s *CatalogService) mirrorCover(ctx context.Context, book *model.Book) (string, error) {
	if s.covers == nil || book.CoverImage == "" {
		return "", nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, book.CoverImage, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", appErr.ErrNotFound
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return "", err
	}
	key := book.ID + ".jpg"
	if err := s.covers.Save(ctx, key, nopCloser{bytes.NewReader(data)}, int64(len(data))); err != nil {
		return "", err
	}
	return key, nil
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error {
	return nil
}
