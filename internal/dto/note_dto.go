package dto

import "time"

type CreateNoteRequest struct {
	Content  string  `json:"content"`
	ParentId *string `json:"parent_id"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type MoveNoteRequest struct {
	ParentId *string `json:"parent_id"`
}

type NoteResponse struct {
	Id               string     `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ParentId         *string    `json:"parent_id,omitempty"`
	OriginalParentId *string    `json:"original_parent_id,omitempty"`
	IsArchived       bool       `json:"is_archived"`
	SyncStatus       string     `json:"sync_status,omitempty"`
	LastSyncedAt     *time.Time `json:"last_synced_at,omitempty"`
	CanCreateSubnote bool       `json:"can_create_subnote"`
}

type NestingLevelResponse struct {
	Level int      `json:"level"`
	Path  []string `json:"path"`
}
