package dto

import "time"

// SyncEventMessage is the payload published on the sync event topic.
type SyncEventMessage struct {
	Type       string    `json:"type"`
	UserId     string    `json:"user_id,omitempty"`
	NoteId     string    `json:"note_id,omitempty"`
	Synced     int       `json:"synced,omitempty"`
	Conflicts  int       `json:"conflicts,omitempty"`
	Failures   int       `json:"failures,omitempty"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type SyncStatusResponse struct {
	Status           string     `json:"status"`
	Enabled          bool       `json:"enabled"`
	AutoSync         bool       `json:"auto_sync"`
	SyncIntervalMs   int64      `json:"sync_interval_ms"`
	LastSyncAt       *time.Time `json:"last_sync_at,omitempty"`
	UserId           string     `json:"user_id,omitempty"`
	PendingConflicts int        `json:"pending_conflicts"`
	UnsyncedNotes    int        `json:"unsynced_notes"`
}

type SyncTriggerResponse struct {
	Success   bool               `json:"success"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

type ConflictResponse struct {
	NoteId string       `json:"note_id"`
	Local  NoteResponse `json:"local"`
	Server NoteResponse `json:"server"`
}

type ResolveConflictRequest struct {
	UseLocal *bool `json:"use_local" validate:"required"`
}

type UpdateSyncSettingsRequest struct {
	AutoSync       *bool  `json:"auto_sync"`
	SyncIntervalMs *int64 `json:"sync_interval_ms"`
}
