package service

import (
	"context"
	"errors"
	"strings"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/idx"
)

var (
	ErrInvalidNoteEntity = errors.New("service: invalid note entity type")
	ErrEmptyNoteBody     = errors.New("service: note body is empty")
)

type NoteService struct {
	Store store.Store
}

func (s *NoteService) CreateNote(ctx context.Context, orgID, authorID string, n domain.Note) (domain.Note, error) {
	if !domain.ValidNoteEntity(n.EntityType) {
		return domain.Note{}, ErrInvalidNoteEntity
	}
	if strings.TrimSpace(n.Body) == "" {
		return domain.Note{}, ErrEmptyNoteBody
	}

	n.ID = idx.New().String()
	n.OrgID = orgID
	n.AuthorID = authorID
	if err := s.Store.Notes().CreateNote(ctx, n); err != nil {
		return domain.Note{}, err
	}
	return s.Store.Notes().GetNoteByID(ctx, orgID, n.ID)
}

func (s *NoteService) GetNote(ctx context.Context, orgID, id string) (domain.Note, error) {
	return s.Store.Notes().GetNoteByID(ctx, orgID, id)
}

func (s *NoteService) ListNotes(ctx context.Context, orgID string, f store.NoteFilter) ([]domain.Note, error) {
	return s.Store.Notes().ListNotes(ctx, orgID, f)
}

func (s *NoteService) UpdateNote(ctx context.Context, orgID, id, body string) (domain.Note, error) {
	if strings.TrimSpace(body) == "" {
		return domain.Note{}, ErrEmptyNoteBody
	}
	if err := s.Store.Notes().UpdateNoteBody(ctx, orgID, id, body); err != nil {
		return domain.Note{}, err
	}
	return s.Store.Notes().GetNoteByID(ctx, orgID, id)
}

func (s *NoteService) DeleteNote(ctx context.Context, orgID, id string) error {
	return s.Store.Notes().SoftDeleteNote(ctx, orgID, id)
}
