package entity

import (
	"time"
)

// SyncStatus is the per-note sync tag. The zero value means the note has
// never been considered for sync (treated like offline by the engine).
type SyncStatus string

const (
	SyncStatusUnset    SyncStatus = ""
	SyncStatusOffline  SyncStatus = "offline"
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusConflict SyncStatus = "conflict"
	SyncStatusSyncing  SyncStatus = "syncing"
)

// NeedsUpload reports whether a note with this tag is a candidate for the
// next upload pass.
func (s SyncStatus) NeedsUpload() bool {
	return s == SyncStatusUnset || s == SyncStatusOffline
}

// EngineStatus is the whole-engine state, distinct from per-note tags.
type EngineStatus string

const (
	EngineStatusIdle    EngineStatus = "idle"
	EngineStatusSyncing EngineStatus = "syncing"
	EngineStatusError   EngineStatus = "error"
)

// SyncSettings is the session-scoped sync configuration owned by the engine.
type SyncSettings struct {
	Enabled      bool
	User         *User
	LastSyncAt   *time.Time
	AutoSync     bool
	SyncInterval time.Duration
}

// NoteConflict pairs a locally conflicted note with the competing server
// snapshot that caused the flag.
type NoteConflict struct {
	Note       *Note
	ServerNote *Note
}

// NoteFailure records a note whose upload failed for a non-conflict reason.
// The note keeps its offline tag and is retried on the next pass.
type NoteFailure struct {
	Note *Note
	Err  error
}

// UploadResult separates the three per-note outcomes of an upload pass.
type UploadResult struct {
	Synced    []*Note
	Conflicts []*NoteConflict
	Failures  []*NoteFailure
}

// SyncResult is the outcome of a full bidirectional pass.
type SyncResult struct {
	Success   bool
	Conflicts []*NoteConflict
}
