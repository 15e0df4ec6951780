package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"markdown heading", "# Groceries\nmilk, eggs", "Groceries"},
		{"deep heading", "### Weekly Plan", "Weekly Plan"},
		{"plain first line", "call the plumber\ntomorrow", "call the plumber"},
		{"skips blank lines", "\n\n  \nfirst real line", "first real line"},
		{"empty content", "", "Untitled"},
		{"whitespace only", "  \n\t\n", "Untitled"},
		{"bare hashes", "##\n", "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromContent(tt.content))
		})
	}
}

func TestNoteClone(t *testing.T) {
	now := time.Now()
	parent := "p1"
	note := &Note{
		Id:           "n1",
		Title:        "title",
		Content:      "content",
		CreatedAt:    now,
		UpdatedAt:    now,
		ParentId:     &parent,
		SyncStatus:   SyncStatusConflict,
		LastSyncedAt: &now,
		ConflictData: &Note{Id: "n1", Content: "server"},
	}

	clone := note.Clone()
	require.NotSame(t, note, clone)

	*clone.ParentId = "other"
	clone.ConflictData.Content = "mutated"
	clone.Content = "changed"

	assert.Equal(t, "p1", *note.ParentId)
	assert.Equal(t, "server", note.ConflictData.Content)
	assert.Equal(t, "content", note.Content)
}

func TestNoteClone_Nil(t *testing.T) {
	var n *Note
	assert.Nil(t, n.Clone())
}

func TestSyncStatusNeedsUpload(t *testing.T) {
	assert.True(t, SyncStatusUnset.NeedsUpload())
	assert.True(t, SyncStatusOffline.NeedsUpload())
	assert.False(t, SyncStatusSynced.NeedsUpload())
	assert.False(t, SyncStatusConflict.NeedsUpload())
	assert.False(t, SyncStatusSyncing.NeedsUpload())
}
