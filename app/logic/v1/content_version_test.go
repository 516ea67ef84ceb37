package v1

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftly-ai/draftly/pkg/types"
)

func TestCreateVersionSequentialNumbering(t *testing.T) {
	st := newFakeStore()
	logic := NewContentVersionLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	for i := 1; i <= 3; i++ {
		version, err := logic.CreateVersion("proj-1", "sess-1", "", "Draft", "", "content")
		require.NoError(t, err)
		assert.Equal(t, i, version.VersionNumber)
	}

	// 其他会话从 1 重新开始
	version, err := logic.CreateVersion("proj-1", "sess-2", "", "Draft", "", "content")
	require.NoError(t, err)
	assert.Equal(t, 1, version.VersionNumber)
}

func TestPublishVersionSupersedesPrevious(t *testing.T) {
	st := newFakeStore()
	logic := NewContentVersionLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	v1, err := logic.CreateVersion("proj-1", "sess-1", "", "Draft", "", "first draft")
	require.NoError(t, err)
	v2, err := logic.CreateVersion("proj-1", "sess-1", "", "Draft", "", "second draft")
	require.NoError(t, err)

	published, err := logic.PublishVersion("proj-1", "sess-1", v1.ID, "doc-1")
	require.NoError(t, err)
	assert.True(t, published.Published)

	published, err = logic.PublishVersion("proj-1", "sess-1", v2.ID, "doc-2")
	require.NoError(t, err)
	assert.True(t, published.Published)

	got1, err := st.cv.Get(context.Background(), v1.ID)
	require.NoError(t, err)
	assert.False(t, got1.Published, "v1 should be superseded")
	assert.Zero(t, got1.PublishedAt)

	got2, err := st.cv.Get(context.Background(), v2.ID)
	require.NoError(t, err)
	assert.True(t, got2.Published)
	assert.Equal(t, "doc-2", got2.DocumentID)

	// 发布切换后会话下有且只有一条 published_content 知识条目
	entries, err := st.kb.List(context.Background(), types.GetKnowledgeBaseOptions{
		ProjectID: "proj-1",
		SessionID: "sess-1",
		Source:    types.KNOWLEDGE_SOURCE_PUBLISHED_CONTENT,
	}, types.NO_PAGING, types.NO_PAGING)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "second draft", entries[0].Content)
}

func TestRepublishIsIdempotent(t *testing.T) {
	st := newFakeStore()
	logic := NewContentVersionLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	v1, err := logic.CreateVersion("proj-1", "sess-1", "", "Draft", "", "the draft")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = logic.PublishVersion("proj-1", "sess-1", v1.ID, "doc-1")
		require.NoError(t, err)
	}

	entries, err := st.kb.List(context.Background(), types.GetKnowledgeBaseOptions{
		Source: types.KNOWLEDGE_SOURCE_PUBLISHED_CONTENT,
	}, types.NO_PAGING, types.NO_PAGING)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPublishSucceedsWhenKnowledgeDeleteFails(t *testing.T) {
	st := newFakeStore()
	st.kb.deleteErr = errors.New("knowledge base unavailable")
	logic := NewContentVersionLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	v1, err := logic.CreateVersion("proj-1", "sess-1", "", "Draft", "", "the draft")
	require.NoError(t, err)

	published, err := logic.PublishVersion("proj-1", "sess-1", v1.ID, "doc-1")
	require.NoError(t, err, "knowledge sync is best-effort, publish must not fail")
	assert.True(t, published.Published)

	got, err := st.cv.Get(context.Background(), v1.ID)
	require.NoError(t, err)
	assert.True(t, got.Published)
}

func TestPublishVersionScopeMismatch(t *testing.T) {
	st := newFakeStore()
	logic := NewContentVersionLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	v1, err := logic.CreateVersion("proj-1", "sess-1", "", "Draft", "", "the draft")
	require.NoError(t, err)

	_, err = logic.PublishVersion("proj-2", "sess-1", v1.ID, "doc-1")
	assert.Error(t, err)

	got, err := st.cv.Get(context.Background(), v1.ID)
	require.NoError(t, err)
	assert.False(t, got.Published)
}

func TestUnpublishVersionRemovesKnowledgeEntry(t *testing.T) {
	st := newFakeStore()
	logic := NewContentVersionLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	v1, err := logic.CreateVersion("proj-1", "sess-1", "", "Draft", "", "the draft")
	require.NoError(t, err)
	_, err = logic.PublishVersion("proj-1", "sess-1", v1.ID, "doc-1")
	require.NoError(t, err)

	require.NoError(t, logic.UnpublishVersion("proj-1", "sess-1", v1.ID))

	got, err := st.cv.Get(context.Background(), v1.ID)
	require.NoError(t, err)
	assert.False(t, got.Published)
	assert.Empty(t, got.DocumentID)

	entries, err := st.kb.List(context.Background(), types.GetKnowledgeBaseOptions{
		Source: types.KNOWLEDGE_SOURCE_PUBLISHED_CONTENT,
	}, types.NO_PAGING, types.NO_PAGING)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdateContentRefreshesPublishedEntry(t *testing.T) {
	st := newFakeStore()
	logic := NewContentVersionLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	v1, err := logic.CreateVersion("proj-1", "sess-1", "", "Draft", "", "old content")
	require.NoError(t, err)
	_, err = logic.PublishVersion("proj-1", "sess-1", v1.ID, "doc-1")
	require.NoError(t, err)

	_, err = logic.UpdateContent(v1.ID, "new content")
	require.NoError(t, err)

	entries, err := st.kb.List(context.Background(), types.GetKnowledgeBaseOptions{
		Source: types.KNOWLEDGE_SOURCE_PUBLISHED_CONTENT,
	}, types.NO_PAGING, types.NO_PAGING)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new content", entries[0].Content)
}

func TestUpdateContentUnpublishedSkipsKnowledgeSync(t *testing.T) {
	st := newFakeStore()
	driver := &fakeAIDriver{}
	logic := NewContentVersionLogic(context.Background(), newTestCore(st, driver))

	v1, err := logic.CreateVersion("proj-1", "sess-1", "", "Draft", "", "old content")
	require.NoError(t, err)

	_, err = logic.UpdateContent(v1.ID, "new content")
	require.NoError(t, err)

	assert.Zero(t, driver.embedCalls)

	got, err := st.cv.Get(context.Background(), v1.ID)
	require.NoError(t, err)
	assert.Equal(t, "new content", got.Content)
}
