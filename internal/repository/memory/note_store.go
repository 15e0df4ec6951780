package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"swipenotes/internal/common"
	"swipenotes/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// NoteStore owns the authoritative local copy of every note, keyed by id.
// Derived views are recomputed from the underlying map on each access.
// Mutations are persisted as a whole-map JSON snapshot so a partial write is
// never observable.
type NoteStore struct {
	cache *cache.Cache
	path  string

	mu          sync.Mutex // serializes mutations and snapshot writes
	syncEnabled bool
}

// NestingLevel reports a note's depth (root = 0) and the root-to-node path.
type NestingLevel struct {
	Level int
	Path  []string
}

// NoteUpdate carries the fields an edit may change. Nil fields are left as-is.
type NoteUpdate struct {
	Title   *string
	Content *string
}

func NewNoteStore(path string) (*NoteStore, error) {
	s := &NoteStore{
		cache: cache.New(cache.NoExpiration, 0),
		path:  path,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetSyncEnabled controls whether newly created or edited notes are tagged
// offline (sync candidates) or left untagged.
func (s *NoteStore) SetSyncEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncEnabled = enabled
}

func (s *NoteStore) Create(parentId *string, content string) (*entity.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if parentId != nil {
		if !s.canCreateSubnoteUnder(*parentId) {
			return nil, fmt.Errorf("cannot create subnote under %s", *parentId)
		}
	}

	now := time.Now()
	note := &entity.Note{
		Id:        uuid.NewString(),
		Title:     entity.TitleFromContent(content),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
		ParentId:  parentId,
	}
	if s.syncEnabled {
		note.SyncStatus = entity.SyncStatusOffline
	}

	s.cache.Set(note.Id, note, cache.NoExpiration)
	if err := s.persist(); err != nil {
		s.cache.Delete(note.Id)
		return nil, err
	}
	return note.Clone(), nil
}

// Update merges the patch into an existing note and refreshes updated_at.
// Unknown ids are a no-op. An edit invalidates a prior sync agreement, so a
// synced note is demoted back to offline when sync is enabled.
func (s *NoteStore) Update(id string, patch NoteUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.get(id)
	if !ok {
		return nil
	}
	if patch.Content != nil {
		note.Content = *patch.Content
		note.Title = entity.TitleFromContent(*patch.Content)
	}
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	note.UpdatedAt = time.Now()
	if s.syncEnabled && note.SyncStatus == entity.SyncStatusSynced {
		note.SyncStatus = entity.SyncStatusOffline
	}

	s.cache.Set(note.Id, note, cache.NoExpiration)
	return s.persist()
}

// Move reparents an active note. A nil parentId promotes it to root.
func (s *NoteStore) Move(id string, parentId *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.get(id)
	if !ok {
		return common.ErrNoteNotFound
	}
	if parentId != nil {
		if *parentId == id {
			return fmt.Errorf("cannot nest a note under itself")
		}
		if !s.canCreateSubnoteUnder(*parentId) {
			return fmt.Errorf("cannot create subnote under %s", *parentId)
		}
	}
	note.ParentId = parentId
	note.UpdatedAt = time.Now()
	if s.syncEnabled && note.SyncStatus == entity.SyncStatusSynced {
		note.SyncStatus = entity.SyncStatusOffline
	}
	s.cache.Set(note.Id, note, cache.NoExpiration)
	return s.persist()
}

// Archive soft-deletes the note: it leaves the active tree, remembers its
// parent as original_parent_id and is promoted to root.
func (s *NoteStore) Archive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.get(id)
	if !ok {
		return common.ErrNoteNotFound
	}
	note.IsArchived = true
	note.OriginalParentId = note.ParentId
	note.ParentId = nil
	note.UpdatedAt = time.Now()
	if s.syncEnabled && note.SyncStatus == entity.SyncStatusSynced {
		note.SyncStatus = entity.SyncStatusOffline
	}
	s.cache.Set(note.Id, note, cache.NoExpiration)
	return s.persist()
}

func (s *NoteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.get(id); !ok {
		return common.ErrNoteNotFound
	}
	s.cache.Delete(id)
	return s.persist()
}

// DeleteWithDescendants removes the note and every note transitively
// reachable via parent_id, all at once.
func (s *NoteStore) DeleteWithDescendants(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.get(id); !ok {
		return common.ErrNoteNotFound
	}
	for _, victim := range s.collectDescendants(id) {
		s.cache.Delete(victim)
	}
	return s.persist()
}

// collectDescendants walks the live map depth-first and returns id plus all
// transitive children. Caller holds the lock.
func (s *NoteStore) collectDescendants(id string) []string {
	childrenByParent := make(map[string][]string)
	for _, item := range s.cache.Items() {
		n := item.Object.(*entity.Note)
		if n.ParentId != nil {
			childrenByParent[*n.ParentId] = append(childrenByParent[*n.ParentId], n.Id)
		}
	}

	var result []string
	seen := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		result = append(result, cur)
		stack = append(stack, childrenByParent[cur]...)
	}
	return result
}

// Put inserts or overwrites a note under its own id. Used by the sync engine
// to merge upload/download results back into the store.
func (s *NoteStore) Put(note *entity.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Set(note.Id, note.Clone(), cache.NoExpiration)
	return s.persist()
}

func (s *NoteStore) Get(id string) (*entity.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.get(id)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

func (s *NoteStore) All() []*entity.Note {
	return s.filter(func(n *entity.Note) bool { return true })
}

func (s *NoteStore) Active() []*entity.Note {
	return s.filter(func(n *entity.Note) bool { return !n.IsArchived })
}

func (s *NoteStore) Archived() []*entity.Note {
	return s.filter(func(n *entity.Note) bool { return n.IsArchived })
}

func (s *NoteStore) ChildrenOf(parentId string) []*entity.Note {
	return s.filter(func(n *entity.Note) bool {
		return !n.IsArchived && n.ParentId != nil && *n.ParentId == parentId
	})
}

func (s *NoteStore) TopLevel() []*entity.Note {
	return s.filter(func(n *entity.Note) bool {
		return !n.IsArchived && n.ParentId == nil
	})
}

// NeedingUpload returns the notes the next sync pass should push: offline or
// never tagged.
func (s *NoteStore) NeedingUpload() []*entity.Note {
	return s.filter(func(n *entity.Note) bool {
		return n.SyncStatus.NeedsUpload()
	})
}

// Conflicted returns the notes waiting for manual resolution.
func (s *NoteStore) Conflicted() []*entity.Note {
	return s.filter(func(n *entity.Note) bool {
		return n.SyncStatus == entity.SyncStatusConflict
	})
}

// NestingLevelOf walks the parent chain up to the root. The walk is bounded:
// a missing or cyclic parent chain terminates gracefully and the last
// reachable note is treated as root.
func (s *NoteStore) NestingLevelOf(id string) NestingLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nestingLevelOf(id)
}

func (s *NoteStore) nestingLevelOf(id string) NestingLevel {
	var path []string
	cur, ok := s.get(id)
	if !ok {
		return NestingLevel{Level: 0, Path: nil}
	}
	path = append(path, cur.Id)

	// parent_id is not validated against cycles at write time, so the walk
	// is capped rather than trusted to terminate. An exhausted cap means
	// corrupted data; fail closed and treat the note as root.
	for i := 0; cur.ParentId != nil; i++ {
		if i >= entity.MaxNestingLevel+1 {
			return NestingLevel{Level: 0, Path: []string{id}}
		}
		parent, ok := s.get(*cur.ParentId)
		if !ok {
			break
		}
		path = append(path, parent.Id)
		cur = parent
	}

	// reverse to root-first
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return NestingLevel{Level: len(path) - 1, Path: path}
}

func (s *NoteStore) CanCreateSubnoteUnder(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canCreateSubnoteUnder(id)
}

func (s *NoteStore) canCreateSubnoteUnder(id string) bool {
	note, ok := s.get(id)
	if !ok || note.IsArchived {
		return false
	}
	return s.nestingLevelOf(id).Level < entity.MaxNestingLevel-1
}

func (s *NoteStore) get(id string) (*entity.Note, bool) {
	if x, found := s.cache.Get(id); found {
		return x.(*entity.Note), true
	}
	return nil, false
}

func (s *NoteStore) filter(keep func(*entity.Note) bool) []*entity.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notes []*entity.Note
	for _, item := range s.cache.Items() {
		n := item.Object.(*entity.Note)
		if keep(n) {
			notes = append(notes, n.Clone())
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes
}

// Snapshot persistence. The whole map is written to a temp file and renamed
// into place so readers never observe a torn write.

type storedNote struct {
	Id               string            `json:"id"`
	Title            string            `json:"title"`
	Content          string            `json:"content"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	ParentId         *string           `json:"parent_id,omitempty"`
	OriginalParentId *string           `json:"original_parent_id,omitempty"`
	IsArchived       bool              `json:"is_archived"`
	SyncStatus       entity.SyncStatus `json:"sync_status,omitempty"`
	LastSyncedAt     *time.Time        `json:"last_synced_at,omitempty"`
	ConflictData     *storedNote       `json:"conflict_data,omitempty"`
}

func toStored(n *entity.Note) *storedNote {
	if n == nil {
		return nil
	}
	return &storedNote{
		Id:               n.Id,
		Title:            n.Title,
		Content:          n.Content,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
		ParentId:         n.ParentId,
		OriginalParentId: n.OriginalParentId,
		IsArchived:       n.IsArchived,
		SyncStatus:       n.SyncStatus,
		LastSyncedAt:     n.LastSyncedAt,
		ConflictData:     toStored(n.ConflictData),
	}
}

func fromStored(r *storedNote) *entity.Note {
	if r == nil {
		return nil
	}
	return &entity.Note{
		Id:               r.Id,
		Title:            r.Title,
		Content:          r.Content,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		ParentId:         r.ParentId,
		OriginalParentId: r.OriginalParentId,
		IsArchived:       r.IsArchived,
		SyncStatus:       r.SyncStatus,
		LastSyncedAt:     r.LastSyncedAt,
		ConflictData:     fromStored(r.ConflictData),
	}
}

func (s *NoteStore) persist() error {
	if s.path == "" {
		return nil
	}

	snapshot := make(map[string]*storedNote)
	for id, item := range s.cache.Items() {
		snapshot[id] = toStored(item.Object.(*entity.Note))
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode note snapshot: %w", err)
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

func (s *NoteStore) load() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var snapshot map[string]*storedNote
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decode note snapshot: %w", err)
	}
	for id, r := range snapshot {
		s.cache.Set(id, fromStored(r), cache.NoExpiration)
	}
	return nil
}
