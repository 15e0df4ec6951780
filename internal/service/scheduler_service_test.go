package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"swipenotes/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSyncService counts full-pass triggers and serves canned settings.
type stubSyncService struct {
	passes atomic.Int64

	mu       sync.Mutex
	settings entity.SyncSettings
}

func (s *stubSyncService) SyncNotes(ctx context.Context) *entity.SyncResult {
	s.passes.Add(1)
	return &entity.SyncResult{Success: true}
}

func (s *stubSyncService) Settings() entity.SyncSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *stubSyncService) setSettings(settings entity.SyncSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func (s *stubSyncService) RegisterUser(ctx context.Context, passphrase string) (*entity.User, error) {
	return nil, nil
}

func (s *stubSyncService) UploadNotes(ctx context.Context, notes []*entity.Note, userId string) *entity.UploadResult {
	return &entity.UploadResult{}
}

func (s *stubSyncService) DownloadNotes(ctx context.Context, userId string) ([]*entity.Note, error) {
	return nil, nil
}

func (s *stubSyncService) ResolveConflict(ctx context.Context, noteId string, useLocal bool) (*entity.Note, error) {
	return nil, nil
}

func (s *stubSyncService) Status() entity.EngineStatus { return entity.EngineStatusIdle }

func (s *stubSyncService) SetAutoSync(autoSync bool, interval time.Duration) {}

func (s *stubSyncService) CurrentUser() *entity.User { return nil }

func (s *stubSyncService) PendingConflicts() []*entity.NoteConflict { return nil }

func TestSchedulerStartStop(t *testing.T) {
	stub := &stubSyncService{}
	sched := NewSchedulerService(stub, noopLogger{})

	assert.False(t, sched.Running())

	sched.Start(5 * time.Millisecond)
	assert.True(t, sched.Running())

	require.Eventually(t, func() bool {
		return stub.passes.Load() >= 2
	}, time.Second, time.Millisecond, "expected periodic sync passes")

	sched.Stop()
	assert.False(t, sched.Running())

	settled := stub.passes.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, stub.passes.Load(), "no passes after stop")
}

func TestSchedulerStop_Idempotent(t *testing.T) {
	sched := NewSchedulerService(&stubSyncService{}, noopLogger{})
	sched.Stop()
	sched.Stop()
	assert.False(t, sched.Running())
}

func TestSchedulerStart_RestartsExistingTimer(t *testing.T) {
	stub := &stubSyncService{}
	sched := NewSchedulerService(stub, noopLogger{})

	sched.Start(time.Hour)
	sched.Start(5 * time.Millisecond)
	assert.True(t, sched.Running())

	// The hour-long timer must be gone; the fast one drives the passes.
	require.Eventually(t, func() bool {
		return stub.passes.Load() >= 1
	}, time.Second, time.Millisecond)

	sched.Stop()
}

func TestSchedulerStart_IgnoresNonPositiveInterval(t *testing.T) {
	sched := NewSchedulerService(&stubSyncService{}, noopLogger{})
	sched.Start(0)
	assert.False(t, sched.Running())
	sched.Start(-time.Second)
	assert.False(t, sched.Running())
}

func TestSchedulerApplySettings(t *testing.T) {
	stub := &stubSyncService{}
	sched := NewSchedulerService(stub, noopLogger{})

	user := &entity.User{Id: "abcd1234"}

	// Auto-sync off: nothing starts.
	stub.setSettings(entity.SyncSettings{Enabled: true, AutoSync: false, User: user, SyncInterval: time.Minute})
	sched.ApplySettings()
	assert.False(t, sched.Running())

	// Auto-sync on but no user yet: still nothing.
	stub.setSettings(entity.SyncSettings{Enabled: true, AutoSync: true, SyncInterval: time.Minute})
	sched.ApplySettings()
	assert.False(t, sched.Running())

	// Fully enabled: timer starts.
	stub.setSettings(entity.SyncSettings{Enabled: true, AutoSync: true, User: user, SyncInterval: time.Minute})
	sched.ApplySettings()
	assert.True(t, sched.Running())

	// Same settings again: stays running, no restart churn.
	sched.ApplySettings()
	assert.True(t, sched.Running())

	// Turning auto-sync off stops the timer.
	stub.setSettings(entity.SyncSettings{Enabled: true, AutoSync: false, User: user, SyncInterval: time.Minute})
	sched.ApplySettings()
	assert.False(t, sched.Running())
}
