package usecase

import (
	"context"
	"log/slog"
	"strings"

	"notemark/apperr"
	"notemark/dto"
	"notemark/logger"
	"notemark/model"
	"notemark/repository"
	"notemark/utils"
)

// TitleResolver returns a page title or "" when none can be found.
type TitleResolver interface {
	Resolve(ctx context.Context, url string) string
}

type BookmarksService struct {
	store    repository.BookmarkStore
	resolver TitleResolver
}

func NewBookmarksService(store repository.BookmarkStore, resolver TitleResolver) *BookmarksService {
	return &BookmarksService{store: store, resolver: resolver}
}

// CreateBookmark resolves the title from the page when none is given and
// falls back to the URL itself.
func (s *BookmarksService) CreateBookmark(ctx context.Context, req dto.CreateBookmarkRequest) (*model.Bookmark, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, apperr.BadRequest("URL is required")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = s.resolver.Resolve(ctx, url)
		if title == "" {
			title = url
		}
		logger.Debug(ctx, "bookmark title resolved",
			slog.String("url", url), slog.String("title", title))
	}

	bookmark := &model.Bookmark{
		URL:         url,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Tags:        NormalizeTags(req.Tags),
		IsFavorite:  req.IsFavorite,
	}

	created, err := s.store.Create(ctx, bookmark)
	if err != nil {
		return nil, err
	}

	utils.TrackResourceOperation("bookmark", "create")
	return created, nil
}

func (s *BookmarksService) ListBookmarks(ctx context.Context, q model.ListQuery) ([]*model.Bookmark, error) {
	bookmarks, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(bookmarks, q), nil
}

func (s *BookmarksService) GetBookmark(ctx context.Context, id string) (*model.Bookmark, error) {
	return s.store.Get(ctx, id)
}

// UpdateBookmark merges only the fields present in req. The title is
// never re-resolved on update.
func (s *BookmarksService) UpdateBookmark(ctx context.Context, id string, req dto.UpdateBookmarkRequest) (*model.Bookmark, error) {
	updated, err := s.store.Update(ctx, id, func(b *model.Bookmark) error {
		if req.URL != nil {
			url := strings.TrimSpace(*req.URL)
			if url == "" {
				return apperr.BadRequest("URL cannot be empty")
			}
			b.URL = url
		}
		if req.Title != nil {
			b.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			b.Description = strings.TrimSpace(*req.Description)
		}
		if req.Tags != nil {
			b.Tags = NormalizeTags(*req.Tags)
		}
		if req.IsFavorite != nil {
			b.IsFavorite = *req.IsFavorite
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.TrackResourceOperation("bookmark", "update")
	return updated, nil
}

func (s *BookmarksService) DeleteBookmark(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	utils.TrackResourceOperation("bookmark", "delete")
	return nil
}
