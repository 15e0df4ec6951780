package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"swipenotes/internal/common"
	"swipenotes/internal/dto"
	"swipenotes/internal/entity"
	"swipenotes/internal/pkg/logger"
	"swipenotes/internal/repository/memory"
	"swipenotes/internal/repository/unitofwork"
	"swipenotes/pkg/database"
	"swipenotes/pkg/events"
)

// ISyncService reconciles the local note store against the remote store
// under a timestamp-based optimistic-concurrency policy.
//
// Per-note status transitions:
//
//	offline/unset -> (upload) -> synced | conflict | offline (failure)
//	conflict      -> (manual resolution) -> synced
//	synced        -> (local edit) -> offline
type ISyncService interface {
	RegisterUser(ctx context.Context, passphrase string) (*entity.User, error)
	UploadNotes(ctx context.Context, notes []*entity.Note, userId string) *entity.UploadResult
	DownloadNotes(ctx context.Context, userId string) ([]*entity.Note, error)
	SyncNotes(ctx context.Context) *entity.SyncResult
	ResolveConflict(ctx context.Context, noteId string, useLocal bool) (*entity.Note, error)

	Status() entity.EngineStatus
	Settings() entity.SyncSettings
	SetAutoSync(autoSync bool, interval time.Duration)
	CurrentUser() *entity.User
	PendingConflicts() []*entity.NoteConflict
}

type syncService struct {
	uowFactory    unitofwork.RepositoryFactory
	store         *memory.NoteStore
	settingsStore *memory.SettingsStore
	identity      IIdentityService
	publisher     IPublisherService
	logger        logger.ILogger
	callTimeout   time.Duration

	// Single-flight latch: a second full pass while one is running gets an
	// immediate no-op result instead of queuing.
	inFlight atomic.Bool

	mu        sync.Mutex
	settings  entity.SyncSettings
	status    entity.EngineStatus
	conflicts []*entity.NoteConflict
}

// NewSyncService builds the engine from the configured defaults, overlaid
// with the persisted settings snapshot when one exists. Enabled always comes
// from config; auto-sync preferences, the registered user and last_sync_at
// survive restarts.
func NewSyncService(
	uowFactory unitofwork.RepositoryFactory,
	store *memory.NoteStore,
	settingsStore *memory.SettingsStore,
	identity IIdentityService,
	publisher IPublisherService,
	sysLogger logger.ILogger,
	settings entity.SyncSettings,
	callTimeout time.Duration,
) ISyncService {
	s := &syncService{
		uowFactory:    uowFactory,
		store:         store,
		settingsStore: settingsStore,
		identity:      identity,
		publisher:     publisher,
		logger:        sysLogger,
		settings:      settings,
		status:        entity.EngineStatusIdle,
		callTimeout:   callTimeout,
	}
	if settingsStore != nil {
		persisted, err := settingsStore.Load()
		if err != nil {
			sysLogger.Warn("sync", "failed to load settings snapshot", map[string]interface{}{
				"error": err.Error(),
			})
		} else if persisted != nil {
			s.settings.AutoSync = persisted.AutoSync
			if persisted.SyncInterval > 0 {
				s.settings.SyncInterval = persisted.SyncInterval
			}
			s.settings.LastSyncAt = persisted.LastSyncAt
			s.settings.User = persisted.User
		}
	}
	store.SetSyncEnabled(s.settings.Enabled)
	return s
}

func (s *syncService) saveSettings() {
	if s.settingsStore == nil {
		return
	}
	s.mu.Lock()
	snapshot := s.settings
	s.mu.Unlock()
	if err := s.settingsStore.Save(snapshot); err != nil {
		s.logger.Warn("sync", "failed to persist settings snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *syncService) RegisterUser(ctx context.Context, passphrase string) (*entity.User, error) {
	passphrase = strings.TrimSpace(passphrase)
	if passphrase == "" {
		return nil, common.ErrEmptyPassphrase
	}

	userId, err := s.identity.GenerateUserID(passphrase)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	cctx, cancel := s.callContext(ctx)
	existing, err := uow.UserRepository().FindByID(cctx, userId)
	cancel()
	if err != nil {
		if database.IsUndefinedTable(err) {
			return nil, fmt.Errorf("%w: %v", common.ErrDatabaseNotSetUp, err)
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if existing != nil {
		if existing.Passphrase != passphrase {
			// Two phrases hashing to the same id must not be silently
			// treated as the same account.
			return nil, common.ErrPassphraseMismatch
		}
		s.attachUser(existing)
		return existing, nil
	}

	user := &entity.User{
		Id:         userId,
		Passphrase: passphrase,
		CreatedAt:  time.Now(),
	}
	cctx, cancel = s.callContext(ctx)
	err = uow.UserRepository().Create(cctx, user)
	cancel()
	if err != nil {
		if database.IsUndefinedTable(err) {
			return nil, fmt.Errorf("%w: %v", common.ErrDatabaseNotSetUp, err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.attachUser(user)
	s.publish(ctx, events.TypeUserRegistered, dto.SyncEventMessage{UserId: user.Id})
	s.logger.Info("sync", "user registered", map[string]interface{}{"user_id": user.Id})
	return user, nil
}

// UploadNotes pushes each candidate note to the remote store. A server row
// with a strictly newer updated_at flags a conflict and is never overwritten;
// an equal timestamp favors the local write to avoid spurious conflicts from
// clock-equal round trips. Per-note errors re-tag the note offline and never
// abort the pass.
func (s *syncService) UploadNotes(ctx context.Context, notes []*entity.Note, userId string) *entity.UploadResult {
	result := &entity.UploadResult{}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	for _, candidate := range notes {
		note := candidate.Clone()

		cctx, cancel := s.callContext(ctx)
		server, err := uow.RemoteNoteRepository().FindByIDAndUser(cctx, note.Id, userId)
		cancel()
		if err != nil {
			result.Failures = append(result.Failures, s.failure(note, err))
			continue
		}

		if server != nil && server.UpdatedAt.After(note.UpdatedAt) {
			note.SyncStatus = entity.SyncStatusConflict
			note.ConflictData = server
			result.Conflicts = append(result.Conflicts, &entity.NoteConflict{
				Note:       note,
				ServerNote: server,
			})
			continue
		}

		cctx, cancel = s.callContext(ctx)
		err = uow.RemoteNoteRepository().Upsert(cctx, note, userId)
		cancel()
		if err != nil {
			result.Failures = append(result.Failures, s.failure(note, err))
			continue
		}

		now := time.Now()
		note.SyncStatus = entity.SyncStatusSynced
		note.LastSyncedAt = &now
		note.ConflictData = nil
		result.Synced = append(result.Synced, note)
	}
	return result
}

func (s *syncService) failure(note *entity.Note, err error) *entity.NoteFailure {
	note.SyncStatus = entity.SyncStatusOffline
	s.logger.Warn("sync", "note upload failed", map[string]interface{}{
		"note_id": note.Id,
		"error":   err.Error(),
	})
	return &entity.NoteFailure{Note: note, Err: err}
}

// DownloadNotes fetches all server rows for the user, newest created first,
// tagged synced with a fresh last_synced_at.
func (s *syncService) DownloadNotes(ctx context.Context, userId string) ([]*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cctx, cancel := s.callContext(ctx)
	defer cancel()
	rows, err := uow.RemoteNoteRepository().ListByUser(cctx, userId)
	if err != nil {
		return nil, fmt.Errorf("download notes: %w", err)
	}

	now := time.Now()
	for _, n := range rows {
		n.SyncStatus = entity.SyncStatusSynced
		syncedAt := now
		n.LastSyncedAt = &syncedAt
	}
	return rows, nil
}

// SyncNotes runs one full bidirectional pass: upload every offline/untagged
// note, merge the outcomes back into the local store, then adopt server-only
// notes. Existing local ids are never blindly overwritten on download; only
// the upload path flags divergence.
func (s *syncService) SyncNotes(ctx context.Context) *entity.SyncResult {
	noop := &entity.SyncResult{Success: false, Conflicts: []*entity.NoteConflict{}}

	if !s.inFlight.CompareAndSwap(false, true) {
		return noop
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	enabled := s.settings.Enabled
	user := s.settings.User
	s.mu.Unlock()
	if !enabled || user == nil {
		return noop
	}

	s.setStatus(entity.EngineStatusSyncing)

	result, err := s.runPass(ctx, user)
	if err != nil {
		s.setStatus(entity.EngineStatusError)
		s.logger.Error("sync", "sync pass failed", map[string]interface{}{
			"user_id": user.Id,
			"error":   err.Error(),
		})
		s.publish(ctx, events.TypeSyncFailed, dto.SyncEventMessage{UserId: user.Id, Error: err.Error()})
		return noop
	}

	now := time.Now()
	s.mu.Lock()
	s.settings.LastSyncAt = &now
	s.mu.Unlock()
	s.saveSettings()
	s.setStatus(entity.EngineStatusIdle)

	s.publish(ctx, events.TypeSyncCompleted, dto.SyncEventMessage{
		UserId:    user.Id,
		Synced:    result.syncedCount,
		Conflicts: len(result.conflicts),
		Failures:  result.failureCount,
	})
	return &entity.SyncResult{Success: true, Conflicts: result.conflicts}
}

type passOutcome struct {
	conflicts    []*entity.NoteConflict
	syncedCount  int
	failureCount int
}

func (s *syncService) runPass(ctx context.Context, user *entity.User) (*passOutcome, error) {
	candidates := s.store.NeedingUpload()
	up := s.UploadNotes(ctx, candidates, user.Id)

	for _, n := range up.Synced {
		if err := s.store.Put(n); err != nil {
			return nil, fmt.Errorf("merge synced note %s: %w", n.Id, err)
		}
	}
	for _, c := range up.Conflicts {
		if err := s.store.Put(c.Note); err != nil {
			return nil, fmt.Errorf("merge conflicted note %s: %w", c.Note.Id, err)
		}
		s.publish(ctx, events.TypeNoteConflict, dto.SyncEventMessage{UserId: user.Id, NoteId: c.Note.Id})
	}
	for _, f := range up.Failures {
		if err := s.store.Put(f.Note); err != nil {
			return nil, fmt.Errorf("merge failed note %s: %w", f.Note.Id, err)
		}
	}

	// The pending list holds true conflicts only; failures are visible via
	// the offline tag on the notes themselves.
	s.mu.Lock()
	s.conflicts = up.Conflicts
	s.mu.Unlock()

	downloaded, err := s.DownloadNotes(ctx, user.Id)
	if err != nil {
		return nil, err
	}
	for _, dn := range downloaded {
		if _, exists := s.store.Get(dn.Id); exists {
			continue
		}
		if err := s.store.Put(dn); err != nil {
			return nil, fmt.Errorf("adopt server note %s: %w", dn.Id, err)
		}
	}

	return &passOutcome{
		conflicts:    up.Conflicts,
		syncedCount:  len(up.Synced),
		failureCount: len(up.Failures),
	}, nil
}

// ResolveConflict is the only path that clears a conflict tag. The engine
// never auto-resolves.
func (s *syncService) ResolveConflict(ctx context.Context, noteId string, useLocal bool) (*entity.Note, error) {
	local, ok := s.store.Get(noteId)
	if !ok {
		return nil, common.ErrNoteNotFound
	}
	if local.SyncStatus != entity.SyncStatusConflict || local.ConflictData == nil {
		return nil, common.ErrNotInConflict
	}

	var resolved *entity.Note
	if useLocal {
		resolved = local
	} else {
		resolved = local.ConflictData
		resolved.Id = noteId
	}

	now := time.Now()
	resolved.SyncStatus = entity.SyncStatusSynced
	resolved.LastSyncedAt = &now
	resolved.ConflictData = nil

	if err := s.store.Put(resolved); err != nil {
		return nil, fmt.Errorf("write resolved note: %w", err)
	}

	s.mu.Lock()
	kept := s.conflicts[:0]
	for _, c := range s.conflicts {
		if c.Note.Id != noteId {
			kept = append(kept, c)
		}
	}
	s.conflicts = kept
	s.mu.Unlock()

	s.logger.Info("sync", "conflict resolved", map[string]interface{}{
		"note_id":   noteId,
		"use_local": useLocal,
	})
	return resolved, nil
}

func (s *syncService) Status() entity.EngineStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *syncService) Settings() entity.SyncSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *syncService) SetAutoSync(autoSync bool, interval time.Duration) {
	s.mu.Lock()
	s.settings.AutoSync = autoSync
	if interval > 0 {
		s.settings.SyncInterval = interval
	}
	s.mu.Unlock()
	s.saveSettings()
}

func (s *syncService) CurrentUser() *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.User
}

func (s *syncService) PendingConflicts() []*entity.NoteConflict {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.NoteConflict, len(s.conflicts))
	copy(out, s.conflicts)
	return out
}

func (s *syncService) attachUser(user *entity.User) {
	s.mu.Lock()
	s.settings.User = user
	s.mu.Unlock()
	s.saveSettings()
}

func (s *syncService) setStatus(status entity.EngineStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *syncService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

func (s *syncService) publish(ctx context.Context, eventType string, payload dto.SyncEventMessage) {
	if s.publisher == nil {
		return
	}
	payload.Type = eventType
	payload.OccurredAt = time.Now()
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	// Events are auxiliary; a publish failure never fails the sync pass.
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.logger.Warn("sync", "failed to publish sync event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
