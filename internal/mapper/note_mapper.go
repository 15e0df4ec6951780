package mapper

import (
	"swipenotes/internal/entity"
	"swipenotes/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

// ToModel maps a local note to its remote row shape. SyncStatus, ConflictData
// and LastSyncedAt are client-only and never uploaded.
func (m *NoteMapper) ToModel(n *entity.Note, userId string) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		Id:               n.Id,
		UserId:           userId,
		Title:            n.Title,
		Content:          n.Content,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
		ParentId:         n.ParentId,
		IsArchived:       n.IsArchived,
		OriginalParentId: n.OriginalParentId,
	}
}

// ToEntity maps a remote row back to the local shape. Sync bookkeeping is
// left untagged; the sync engine stamps it when a row is adopted locally.
func (m *NoteMapper) ToEntity(r *model.Note) *entity.Note {
	if r == nil {
		return nil
	}
	return &entity.Note{
		Id:               r.Id,
		Title:            r.Title,
		Content:          r.Content,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		ParentId:         r.ParentId,
		IsArchived:       r.IsArchived,
		OriginalParentId: r.OriginalParentId,
	}
}

func (m *NoteMapper) ToEntities(rows []*model.Note) []*entity.Note {
	notes := make([]*entity.Note, len(rows))
	for i, r := range rows {
		notes[i] = m.ToEntity(r)
	}
	return notes
}
