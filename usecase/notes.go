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

type NotesService struct {
	store repository.NoteStore
}

func NewNotesService(store repository.NoteStore) *NotesService {
	return &NotesService{store: store}
}

func (s *NotesService) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*model.Note, error) {
	note := &model.Note{
		Title:      strings.TrimSpace(req.Title),
		Content:    strings.TrimSpace(req.Content),
		Tags:       NormalizeTags(req.Tags),
		IsFavorite: req.IsFavorite,
	}
	if note.Title == "" {
		return nil, apperr.BadRequest("Title is required")
	}
	if note.Content == "" {
		return nil, apperr.BadRequest("Content is required")
	}

	created, err := s.store.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	utils.TrackResourceOperation("note", "create")
	logger.Debug(ctx, "note created", slog.String("note_id", created.ID))
	return created, nil
}

func (s *NotesService) ListNotes(ctx context.Context, q model.ListQuery) ([]*model.Note, error) {
	notes, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(notes, q), nil
}

func (s *NotesService) GetNote(ctx context.Context, id string) (*model.Note, error) {
	return s.store.Get(ctx, id)
}

// UpdateNote merges only the fields present in req.
func (s *NotesService) UpdateNote(ctx context.Context, id string, req dto.UpdateNoteRequest) (*model.Note, error) {
	updated, err := s.store.Update(ctx, id, func(n *model.Note) error {
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return apperr.BadRequest("Title cannot be empty")
			}
			n.Title = title
		}
		if req.Content != nil {
			content := strings.TrimSpace(*req.Content)
			if content == "" {
				return apperr.BadRequest("Content cannot be empty")
			}
			n.Content = content
		}
		if req.Tags != nil {
			n.Tags = NormalizeTags(*req.Tags)
		}
		if req.IsFavorite != nil {
			n.IsFavorite = *req.IsFavorite
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.TrackResourceOperation("note", "update")
	return updated, nil
}

func (s *NotesService) DeleteNote(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	utils.TrackResourceOperation("note", "delete")
	return nil
}
