package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"swipenotes/internal/entity"
)

// SettingsStore persists the sync settings as a JSON snapshot so auto-sync
// preferences and the registered user survive a restart. Same atomic-write
// discipline as the note snapshot.
type SettingsStore struct {
	path string
	mu   sync.Mutex
}

func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

type storedSettings struct {
	Enabled        bool        `json:"enabled"`
	AutoSync       bool        `json:"auto_sync"`
	SyncIntervalMs int64       `json:"sync_interval_ms"`
	LastSyncAt     *time.Time  `json:"last_sync_at,omitempty"`
	User           *storedUser `json:"user,omitempty"`
}

type storedUser struct {
	Id         string    `json:"id"`
	Passphrase string    `json:"passphrase"`
	CreatedAt  time.Time `json:"created_at"`
}

// Load returns (nil, nil) when no snapshot exists yet.
func (s *SettingsStore) Load() (*entity.SyncSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var r storedSettings
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode settings snapshot: %w", err)
	}

	settings := &entity.SyncSettings{
		Enabled:      r.Enabled,
		AutoSync:     r.AutoSync,
		SyncInterval: time.Duration(r.SyncIntervalMs) * time.Millisecond,
		LastSyncAt:   r.LastSyncAt,
	}
	if r.User != nil {
		settings.User = &entity.User{
			Id:         r.User.Id,
			Passphrase: r.User.Passphrase,
			CreatedAt:  r.User.CreatedAt,
		}
	}
	return settings, nil
}

func (s *SettingsStore) Save(settings entity.SyncSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	r := storedSettings{
		Enabled:        settings.Enabled,
		AutoSync:       settings.AutoSync,
		SyncIntervalMs: settings.SyncInterval.Milliseconds(),
		LastSyncAt:     settings.LastSyncAt,
	}
	if settings.User != nil {
		r.User = &storedUser{
			Id:         settings.User.Id,
			Passphrase: settings.User.Passphrase,
			CreatedAt:  settings.User.CreatedAt,
		}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
