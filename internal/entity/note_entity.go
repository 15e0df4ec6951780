package entity

import (
	"strings"
	"time"
)

// MaxNestingLevel bounds the note tree depth. Root notes live at level 0,
// so the deepest allowed note sits at level MaxNestingLevel-1.
const MaxNestingLevel = 3

type Note struct {
	Id               string
	Title            string
	Content          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ParentId         *string
	OriginalParentId *string
	IsArchived       bool

	// Client-only sync bookkeeping. Never uploaded.
	SyncStatus   SyncStatus
	LastSyncedAt *time.Time
	ConflictData *Note
}

// Clone returns a deep copy, including the conflict snapshot if present.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	if n.ParentId != nil {
		v := *n.ParentId
		c.ParentId = &v
	}
	if n.OriginalParentId != nil {
		v := *n.OriginalParentId
		c.OriginalParentId = &v
	}
	if n.LastSyncedAt != nil {
		v := *n.LastSyncedAt
		c.LastSyncedAt = &v
	}
	c.ConflictData = n.ConflictData.Clone()
	return &c
}

// TitleFromContent derives a display title from the first heading or
// non-empty line of the content.
func TitleFromContent(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			return line
		}
	}
	return "Untitled"
}
