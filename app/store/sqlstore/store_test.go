package sqlstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftly-ai/draftly/pkg/testutils"
	"github.com/draftly-ai/draftly/pkg/types"
	"github.com/draftly-ai/draftly/pkg/utils"
)

type testPGConfig struct {
	DSN string
}

func (c testPGConfig) FormatDSN() string {
	return c.DSN
}

func setupTestProvider(t *testing.T) *Provider {
	t.Helper()
	testutils.LoadEnvOrPanic()

	dsn := os.Getenv("DRAFTLY_API_POSTGRESQL_DSN")
	if dsn == "" {
		t.Skip("DRAFTLY_API_POSTGRESQL_DSN is not set")
	}

	utils.SetupIDWorker(1)
	p := MustSetup(testPGConfig{DSN: dsn})()
	require.NoError(t, p.Install())
	return p
}

// 与 001_init.sql 中 VECTOR(1536) 保持一致
const testEmbeddingDims = 1536

func testVector(fill float32) pgvector.Vector {
	data := make([]float32, testEmbeddingDims)
	for i := range data {
		data[i] = fill
	}
	return pgvector.NewVector(data)
}

func TestKnowledgeSimilaritySearch(t *testing.T) {
	p := setupTestProvider(t)
	store := p.KnowledgeBaseStore()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	projectID := "test-" + utils.GenUniqIDStr()
	defer func() {
		_ = store.Delete(context.Background(), types.GetKnowledgeBaseOptions{ProjectID: projectID})
	}()

	entries := []*types.KnowledgeBaseEntry{
		{
			ID:        utils.GenUniqIDStr(),
			ProjectID: projectID,
			Content:   "project level entry",
			Source:    types.KNOWLEDGE_SOURCE_USER_UPLOAD,
			Embedding: testVector(0.1),
			CreatedAt: time.Now().Unix(),
		},
		{
			ID:        utils.GenUniqIDStr(),
			ProjectID: projectID,
			SessionID: "session-1",
			Content:   "session level entry",
			Source:    types.KNOWLEDGE_SOURCE_GENERATED_CONTENT,
			Embedding: testVector(0.1),
			CreatedAt: time.Now().Unix() + 1,
		},
	}
	require.NoError(t, store.BatchCreate(ctx, entries))

	result, err := store.SimilaritySearch(ctx, projectID, "", testVector(0.1), 0.3, 5)
	require.NoError(t, err)
	require.NotEmpty(t, result)
	assert.InDelta(t, 1.0, result[0].Similarity, 0.01)

	scoped, err := store.SimilaritySearch(ctx, projectID, "session-1", testVector(0.1), 0.2, 5)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "session level entry", scoped[0].Content)
}

func TestKnowledgeListFallbackOrdering(t *testing.T) {
	p := setupTestProvider(t)
	store := p.KnowledgeBaseStore()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	projectID := "test-" + utils.GenUniqIDStr()
	defer func() {
		_ = store.Delete(context.Background(), types.GetKnowledgeBaseOptions{ProjectID: projectID})
	}()

	now := time.Now().Unix()
	entries := []*types.KnowledgeBaseEntry{
		{ID: utils.GenUniqIDStr(), ProjectID: projectID, Content: "old upload", Source: types.KNOWLEDGE_SOURCE_USER_UPLOAD, CreatedAt: now - 10},
		{ID: utils.GenUniqIDStr(), ProjectID: projectID, Content: "new upload", Source: types.KNOWLEDGE_SOURCE_USER_UPLOAD, CreatedAt: now},
		{ID: utils.GenUniqIDStr(), ProjectID: projectID, Content: "generated", Source: types.KNOWLEDGE_SOURCE_GENERATED_CONTENT, CreatedAt: now},
	}
	require.NoError(t, store.BatchCreate(ctx, entries))

	result, err := store.ListFallback(ctx, projectID, "", 10)
	require.NoError(t, err)
	require.Len(t, result, 3)
	// source 升序，同 source 内时间倒序
	assert.Equal(t, "generated", result[0].Content)
	assert.Equal(t, "new upload", result[1].Content)
	assert.Equal(t, "old upload", result[2].Content)
}

func TestContentVersionPublishFlow(t *testing.T) {
	p := setupTestProvider(t)
	store := p.ContentVersionStore()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	projectID := "test-" + utils.GenUniqIDStr()
	sessionID := "session-" + utils.GenUniqIDStr()
	now := time.Now().Unix()

	v1 := types.ContentVersion{
		ID:            utils.GenUniqIDStr(),
		SessionID:     sessionID,
		ProjectID:     projectID,
		VersionNumber: 1,
		Content:       "first draft",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Create(ctx, v1))
	require.NoError(t, store.UpdatePublishState(ctx, v1.ID, types.UpdatePublishStateArgs{
		Published:   true,
		PublishedAt: now,
		Touch:       true,
	}))

	max, err := store.MaxVersionNumber(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, max)

	v2 := types.ContentVersion{
		ID:            utils.GenUniqIDStr(),
		SessionID:     sessionID,
		ProjectID:     projectID,
		VersionNumber: max + 1,
		Content:       "second draft",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Create(ctx, v2))

	affected, err := store.UnpublishAll(ctx, sessionID, projectID, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	require.NoError(t, store.UpdatePublishState(ctx, v2.ID, types.UpdatePublishStateArgs{
		Published:   true,
		PublishedAt: now,
		Touch:       true,
	}))

	latest, err := store.GetLatest(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, v2.ID, latest.ID)
	assert.True(t, latest.Published)

	old, err := store.Get(ctx, v1.ID)
	require.NoError(t, err)
	assert.False(t, old.Published)
}
