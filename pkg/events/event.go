package events

// Event codes published by the sync engine on the event topic. The consumer
// logs them; a notification surface can subscribe to the same topic.
const (
	TypeSyncCompleted  = "SYNC_COMPLETED"
	TypeSyncFailed     = "SYNC_FAILED"
	TypeNoteConflict   = "NOTE_CONFLICT"
	TypeUserRegistered = "USER_REGISTERED"
)
