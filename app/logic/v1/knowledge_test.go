package v1

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftly-ai/draftly/pkg/types"
)

func TestIngestDocumentChunksAndStores(t *testing.T) {
	st := newFakeStore()
	logic := NewKnowledgeLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	// 2500 字符强制切分为多块
	content := strings.Repeat("Sentence number one is here. ", 90)
	ids, err := logic.IngestDocument("proj-1", "", content, types.KNOWLEDGE_SOURCE_USER_UPLOAD, types.Metadata{"filename": "doc.txt"})
	require.NoError(t, err)
	assert.Greater(t, len(ids), 1)
	assert.Len(t, st.kb.entries, len(ids))

	for _, entry := range st.kb.entries {
		assert.Equal(t, "proj-1", entry.ProjectID)
		assert.Equal(t, types.KNOWLEDGE_SOURCE_USER_UPLOAD, entry.Source)
		assert.NotEmpty(t, entry.Content)
	}
}

func TestIngestDocumentShortTextSingleEntry(t *testing.T) {
	st := newFakeStore()
	logic := NewKnowledgeLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	ids, err := logic.IngestDocument("proj-1", "sess-1", "a short note", types.KNOWLEDGE_SOURCE_GENERATED_CONTENT, nil)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, "sess-1", st.kb.entries[0].SessionID)
}

func TestIngestDocumentEmbeddingFailure(t *testing.T) {
	st := newFakeStore()
	logic := NewKnowledgeLogic(context.Background(), newTestCore(st, &fakeAIDriver{embedErr: assert.AnError}))

	_, err := logic.IngestDocument("proj-1", "", "some content", types.KNOWLEDGE_SOURCE_USER_UPLOAD, nil)
	assert.Error(t, err)
	assert.Empty(t, st.kb.entries)
}

func TestBulkStoreSkipsEmptyChunks(t *testing.T) {
	st := newFakeStore()
	logic := NewKnowledgeLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	ids, err := logic.BulkStore("proj-1", "", []string{"one", "", "two"}, types.KNOWLEDGE_SOURCE_WEB_SCRAPING, nil)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestCleanupGeneratedContent(t *testing.T) {
	st := newFakeStore()
	seedKnowledge(st, "proj-1", "sess-1", 3, types.KNOWLEDGE_SOURCE_GENERATED_CONTENT)
	seedKnowledge(st, "proj-1", "sess-1", 2, types.KNOWLEDGE_SOURCE_USER_UPLOAD)
	logic := NewKnowledgeLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))

	affected, err := logic.CleanupGeneratedContent("proj-1", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	assert.Len(t, st.kb.entries, 2, "other sources must survive cleanup")
}
