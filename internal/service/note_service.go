package service

import (
	"swipenotes/internal/dto"
	"swipenotes/internal/entity"
	"swipenotes/internal/repository/memory"
)

// INoteService is the local CRUD surface over the note store. It only talks
// to the local map; the sync engine moves notes to and from the server.
type INoteService interface {
	Create(req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(id string) (*dto.NoteResponse, error)
	Update(id string, req *dto.UpdateNoteRequest) error
	Move(id string, req *dto.MoveNoteRequest) error
	Archive(id string) error
	Delete(id string, cascade bool) error

	TopLevel() []*dto.NoteResponse
	ChildrenOf(parentId string) []*dto.NoteResponse
	Archived() []*dto.NoteResponse
	NestingLevel(id string) *dto.NestingLevelResponse
}

type noteService struct {
	store *memory.NoteStore
}

func NewNoteService(store *memory.NoteStore) INoteService {
	return &noteService{store: store}
}

func (c *noteService) Create(req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	note, err := c.store.Create(req.ParentId, req.Content)
	if err != nil {
		return nil, err
	}
	return c.toResponse(note), nil
}

func (c *noteService) Show(id string) (*dto.NoteResponse, error) {
	note, ok := c.store.Get(id)
	if !ok {
		return nil, nil // Not found
	}
	return c.toResponse(note), nil
}

func (c *noteService) Update(id string, req *dto.UpdateNoteRequest) error {
	return c.store.Update(id, memory.NoteUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
}

func (c *noteService) Move(id string, req *dto.MoveNoteRequest) error {
	return c.store.Move(id, req.ParentId)
}

func (c *noteService) Archive(id string) error {
	return c.store.Archive(id)
}

func (c *noteService) Delete(id string, cascade bool) error {
	if cascade {
		return c.store.DeleteWithDescendants(id)
	}
	return c.store.Delete(id)
}

func (c *noteService) TopLevel() []*dto.NoteResponse {
	return c.toResponses(c.store.TopLevel())
}

func (c *noteService) ChildrenOf(parentId string) []*dto.NoteResponse {
	return c.toResponses(c.store.ChildrenOf(parentId))
}

func (c *noteService) Archived() []*dto.NoteResponse {
	return c.toResponses(c.store.Archived())
}

func (c *noteService) NestingLevel(id string) *dto.NestingLevelResponse {
	level := c.store.NestingLevelOf(id)
	return &dto.NestingLevelResponse{
		Level: level.Level,
		Path:  level.Path,
	}
}

func (c *noteService) toResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:               n.Id,
		Title:            n.Title,
		Content:          n.Content,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
		ParentId:         n.ParentId,
		OriginalParentId: n.OriginalParentId,
		IsArchived:       n.IsArchived,
		SyncStatus:       string(n.SyncStatus),
		LastSyncedAt:     n.LastSyncedAt,
		CanCreateSubnote: c.store.CanCreateSubnoteUnder(n.Id),
	}
}

func (c *noteService) toResponses(notes []*entity.Note) []*dto.NoteResponse {
	out := make([]*dto.NoteResponse, len(notes))
	for i, n := range notes {
		out[i] = c.toResponse(n)
	}
	return out
}
