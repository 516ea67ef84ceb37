package v1

import (
	"context"
	"log/slog"

	"github.com/pgvector/pgvector-go"

	"github.com/draftly-ai/draftly/app/core"
	"github.com/draftly-ai/draftly/pkg/types"
)

const (
	// 项目级与会话级检索相似度阈值
	PROJECT_SIMILARITY_THRESHOLD = 0.3
	SESSION_SIMILARITY_THRESHOLD = 0.2

	DEFAULT_RETRIEVAL_LIMIT = 5
)

type RetrievalLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewRetrievalLogic(ctx context.Context, core *core.Core) *RetrievalLogic {
	return &RetrievalLogic{
		ctx:  ctx,
		core: core,
	}
}

// RetrieveRelevantKnowledge 项目级语义检索
// 检索是增强能力而非硬依赖，任何一步失败都降级而不是向上抛错，
// 最坏情况返回空切片让对话继续
func (l *RetrievalLogic) RetrieveRelevantKnowledge(projectID, query string, limit uint64) []*types.KnowledgeBaseEntry {
	return l.retrieve(projectID, "", query, PROJECT_SIMILARITY_THRESHOLD, limit)
}

// RetrieveSessionSpecific 会话级语义检索，sessionID 必填
func (l *RetrievalLogic) RetrieveSessionSpecific(projectID, sessionID, query string, limit uint64) []*types.KnowledgeBaseEntry {
	if sessionID == "" {
		return nil
	}
	return l.retrieve(projectID, sessionID, query, SESSION_SIMILARITY_THRESHOLD, limit)
}

func (l *RetrievalLogic) retrieve(projectID, sessionID, query string, threshold float64, limit uint64) []*types.KnowledgeBaseEntry {
	if limit == 0 {
		limit = DEFAULT_RETRIEVAL_LIMIT
	}

	embedding, err := l.core.Srv().AI().EmbeddingForQuery(l.ctx, []string{query})
	if err != nil || len(embedding.Data) == 0 {
		slog.Error("Retrieval embedding failed, falling back to direct fetch",
			slog.String("project_id", projectID), slog.Any("error", err))
		return l.directFetch(projectID, sessionID, limit)
	}

	result, err := l.core.Store().KnowledgeBaseStore().SimilaritySearch(
		l.ctx, projectID, sessionID, pgvector.NewVector(embedding.Data[0]), threshold, limit)
	if err != nil {
		slog.Error("Similarity search failed, falling back to direct fetch",
			slog.String("project_id", projectID), slog.String("error", err.Error()))
		return l.directFetch(projectID, sessionID, limit)
	}

	if len(result) == 0 {
		// 相似度过滤后一无所获，放宽为两倍量的直接拉取
		return l.directFetch(projectID, sessionID, limit*2)
	}

	return result
}

// directFetch 不经过向量检索的兜底拉取，按来源与时间排序
func (l *RetrievalLogic) directFetch(projectID, sessionID string, limit uint64) []*types.KnowledgeBaseEntry {
	result, err := l.core.Store().KnowledgeBaseStore().ListFallback(l.ctx, projectID, sessionID, limit)
	if err != nil {
		slog.Error("Direct knowledge fetch failed",
			slog.String("project_id", projectID), slog.String("error", err.Error()))
		return nil
	}
	return result
}
