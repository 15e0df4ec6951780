package memory

import (
	"path/filepath"
	"testing"
	"time"

	"swipenotes/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStore_LoadAbsent(t *testing.T) {
	s := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewSettingsStore(path)

	lastSync := time.Now().Truncate(time.Millisecond)
	require.NoError(t, s.Save(entity.SyncSettings{
		Enabled:      true,
		AutoSync:     true,
		SyncInterval: 45 * time.Second,
		LastSyncAt:   &lastSync,
		User: &entity.User{
			Id:         "abcd1234",
			Passphrase: "legal winner thank year wave sausage worth useful legal winner thank yellow",
			CreatedAt:  time.Now().Truncate(time.Millisecond),
		},
	}))

	got, err := NewSettingsStore(path).Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Enabled)
	assert.True(t, got.AutoSync)
	assert.Equal(t, 45*time.Second, got.SyncInterval)
	require.NotNil(t, got.LastSyncAt)
	assert.True(t, got.LastSyncAt.Equal(lastSync))
	require.NotNil(t, got.User)
	assert.Equal(t, "abcd1234", got.User.Id)
}

func TestSettingsStore_SaveWithoutUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewSettingsStore(path)

	require.NoError(t, s.Save(entity.SyncSettings{Enabled: true}))

	got, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.User)
	assert.Nil(t, got.LastSyncAt)
}
