package service

import (
	"path/filepath"
	"testing"

	"swipenotes/internal/dto"
	"swipenotes/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoteService(t *testing.T) INoteService {
	t.Helper()
	store, err := memory.NewNoteStore(filepath.Join(t.TempDir(), "notes.json"))
	require.NoError(t, err)
	return NewNoteService(store)
}

func TestNoteService_CreateAndShow(t *testing.T) {
	svc := newNoteService(t)

	created, err := svc.Create(&dto.CreateNoteRequest{Content: "# Shopping\nmilk"})
	require.NoError(t, err)
	assert.Equal(t, "Shopping", created.Title)
	assert.True(t, created.CanCreateSubnote)

	shown, err := svc.Show(created.Id)
	require.NoError(t, err)
	require.NotNil(t, shown)
	assert.Equal(t, created.Id, shown.Id)

	missing, err := svc.Show("missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNoteService_CanCreateSubnoteReflectsDepth(t *testing.T) {
	svc := newNoteService(t)

	root, err := svc.Create(&dto.CreateNoteRequest{Content: "root"})
	require.NoError(t, err)
	child, err := svc.Create(&dto.CreateNoteRequest{Content: "child", ParentId: &root.Id})
	require.NoError(t, err)
	grandchild, err := svc.Create(&dto.CreateNoteRequest{Content: "grandchild", ParentId: &child.Id})
	require.NoError(t, err)

	assert.True(t, root.CanCreateSubnote)
	assert.True(t, child.CanCreateSubnote)
	assert.False(t, grandchild.CanCreateSubnote)

	lvl := svc.NestingLevel(grandchild.Id)
	assert.Equal(t, 2, lvl.Level)
	assert.Equal(t, []string{root.Id, child.Id, grandchild.Id}, lvl.Path)
}

func TestNoteService_ListViews(t *testing.T) {
	svc := newNoteService(t)

	root, err := svc.Create(&dto.CreateNoteRequest{Content: "root"})
	require.NoError(t, err)
	child, err := svc.Create(&dto.CreateNoteRequest{Content: "child", ParentId: &root.Id})
	require.NoError(t, err)

	top := svc.TopLevel()
	require.Len(t, top, 1)
	assert.Equal(t, root.Id, top[0].Id)

	children := svc.ChildrenOf(root.Id)
	require.Len(t, children, 1)
	assert.Equal(t, child.Id, children[0].Id)

	require.NoError(t, svc.Archive(child.Id))
	archived := svc.Archived()
	require.Len(t, archived, 1)
	assert.Equal(t, child.Id, archived[0].Id)
	assert.Empty(t, svc.ChildrenOf(root.Id))
}

func TestNoteService_DeleteCascade(t *testing.T) {
	svc := newNoteService(t)

	root, err := svc.Create(&dto.CreateNoteRequest{Content: "root"})
	require.NoError(t, err)
	child, err := svc.Create(&dto.CreateNoteRequest{Content: "child", ParentId: &root.Id})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(root.Id, true))

	gone, err := svc.Show(child.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
