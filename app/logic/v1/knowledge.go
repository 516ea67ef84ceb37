package v1

import (
	"context"
	"net/http"

	"github.com/pgvector/pgvector-go"
	"github.com/samber/lo"

	"github.com/draftly-ai/draftly/app/core"
	"github.com/draftly-ai/draftly/pkg/chunk"
	"github.com/draftly-ai/draftly/pkg/errors"
	"github.com/draftly-ai/draftly/pkg/i18n"
	"github.com/draftly-ai/draftly/pkg/types"
	"github.com/draftly-ai/draftly/pkg/utils"
)

type KnowledgeLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewKnowledgeLogic(ctx context.Context, core *core.Core) *KnowledgeLogic {
	return &KnowledgeLogic{
		ctx:  ctx,
		core: core,
	}
}

// IngestDocument 文档入库，切分后逐块向量化再批量写入
// sessionID 为空表示项目级知识
func (l *KnowledgeLogic) IngestDocument(projectID, sessionID, content string, source types.KnowledgeSource, metadata types.Metadata) ([]string, error) {
	if content == "" {
		return nil, errors.New("KnowledgeLogic.IngestDocument.emptyContent", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	chunks := chunk.SplitDefault(content)
	if len(chunks) == 0 {
		return nil, nil
	}

	embeddings, err := l.core.Srv().AI().EmbeddingForDocument(l.ctx, chunks)
	if err != nil {
		return nil, errors.New("KnowledgeLogic.IngestDocument.AI.EmbeddingForDocument", i18n.ERROR_EMBEDDING_MODEL_FAILED, err)
	}
	if len(embeddings.Data) != len(chunks) {
		return nil, errors.New("KnowledgeLogic.IngestDocument.AI.EmbeddingForDocument.mismatch", i18n.ERROR_EMBEDDING_MODEL_FAILED, nil)
	}

	entries := lo.Map(chunks, func(item string, i int) *types.KnowledgeBaseEntry {
		return &types.KnowledgeBaseEntry{
			ID:        utils.GenUniqIDStr(),
			ProjectID: projectID,
			SessionID: sessionID,
			Content:   item,
			Source:    source,
			Metadata:  metadata,
			Embedding: pgvector.NewVector(embeddings.Data[i]),
			CreatedAt: types.GetCurrentTimestamp(),
		}
	})

	if err = l.core.Store().KnowledgeBaseStore().BatchCreate(l.ctx, entries); err != nil {
		return nil, errors.New("KnowledgeLogic.IngestDocument.KnowledgeBaseStore.BatchCreate", i18n.ERROR_INTERNAL, err)
	}

	return lo.Map(entries, func(item *types.KnowledgeBaseEntry, _ int) string {
		return item.ID
	}), nil
}

// BulkStore 直接写入已经切分好的内容块
func (l *KnowledgeLogic) BulkStore(projectID, sessionID string, contents []string, source types.KnowledgeSource, metadata types.Metadata) ([]string, error) {
	contents = lo.Filter(contents, func(item string, _ int) bool {
		return item != ""
	})
	if len(contents) == 0 {
		return nil, nil
	}

	embeddings, err := l.core.Srv().AI().EmbeddingForDocument(l.ctx, contents)
	if err != nil {
		return nil, errors.New("KnowledgeLogic.BulkStore.AI.EmbeddingForDocument", i18n.ERROR_EMBEDDING_MODEL_FAILED, err)
	}
	if len(embeddings.Data) != len(contents) {
		return nil, errors.New("KnowledgeLogic.BulkStore.AI.EmbeddingForDocument.mismatch", i18n.ERROR_EMBEDDING_MODEL_FAILED, nil)
	}

	entries := lo.Map(contents, func(item string, i int) *types.KnowledgeBaseEntry {
		return &types.KnowledgeBaseEntry{
			ID:        utils.GenUniqIDStr(),
			ProjectID: projectID,
			SessionID: sessionID,
			Content:   item,
			Source:    source,
			Metadata:  metadata,
			Embedding: pgvector.NewVector(embeddings.Data[i]),
			CreatedAt: types.GetCurrentTimestamp(),
		}
	})

	if err = l.core.Store().KnowledgeBaseStore().BatchCreate(l.ctx, entries); err != nil {
		return nil, errors.New("KnowledgeLogic.BulkStore.KnowledgeBaseStore.BatchCreate", i18n.ERROR_INTERNAL, err)
	}

	return lo.Map(entries, func(item *types.KnowledgeBaseEntry, _ int) string {
		return item.ID
	}), nil
}

// CleanupGeneratedContent 清理会话产生的 generated_content 条目
func (l *KnowledgeLogic) CleanupGeneratedContent(projectID, sessionID string) (int64, error) {
	affected, err := l.core.Store().KnowledgeBaseStore().DeleteWithCount(l.ctx, types.GetKnowledgeBaseOptions{
		ProjectID: projectID,
		SessionID: sessionID,
		Source:    types.KNOWLEDGE_SOURCE_GENERATED_CONTENT,
	})
	if err != nil {
		return 0, errors.New("KnowledgeLogic.CleanupGeneratedContent.KnowledgeBaseStore.DeleteWithCount", i18n.ERROR_INTERNAL, err)
	}
	return affected, nil
}

func (l *KnowledgeLogic) ListKnowledge(opts types.GetKnowledgeBaseOptions, page, pageSize uint64) ([]*types.KnowledgeBaseEntry, uint64, error) {
	list, err := l.core.Store().KnowledgeBaseStore().List(l.ctx, opts, page, pageSize)
	if err != nil {
		return nil, 0, errors.New("KnowledgeLogic.ListKnowledge.KnowledgeBaseStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().KnowledgeBaseStore().Total(l.ctx, opts)
	if err != nil {
		return nil, 0, errors.New("KnowledgeLogic.ListKnowledge.KnowledgeBaseStore.Total", i18n.ERROR_INTERNAL, err)
	}
	return list, total, nil
}

func (l *KnowledgeLogic) DeleteKnowledge(projectID, id string) error {
	if err := l.core.Store().KnowledgeBaseStore().Delete(l.ctx, types.GetKnowledgeBaseOptions{
		ID:        id,
		ProjectID: projectID,
	}); err != nil {
		return errors.New("KnowledgeLogic.DeleteKnowledge.KnowledgeBaseStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
