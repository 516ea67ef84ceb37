package v1

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/draftly-ai/draftly/app/core"
	"github.com/draftly-ai/draftly/pkg/types"
)

const (
	// 上下文装配只取最近 10 条消息
	RAG_CHAT_HISTORY_LIMIT = 10

	// 会话级与项目级检索合并后的条目上限
	RAG_MERGED_KNOWLEDGE_LIMIT = 8
)

type RAGLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewRAGLogic(ctx context.Context, core *core.Core) *RAGLogic {
	return &RAGLogic{
		ctx:  ctx,
		core: core,
	}
}

type BuildRAGContextOptions struct {
	ProjectID        string
	SessionID        string
	Query            string
	HasAttachedFiles bool
	WithSchemaData   bool
}

// BuildRAGContext 并发装配对话历史与相关知识
// 历史与检索任一失败都降级为空，装配本身不失败
func (l *RAGLogic) BuildRAGContext(opts BuildRAGContextOptions) types.RAGContext {
	var ragCtx types.RAGContext

	g, ctx := errgroup.WithContext(l.ctx)

	g.Go(func() error {
		ragCtx.ChatHistory = l.fetchChatHistory(ctx, opts.SessionID)
		return nil
	})

	g.Go(func() error {
		ragCtx.RelevantKnowledge = l.fetchRelevantKnowledge(ctx, opts)
		return nil
	})

	if opts.WithSchemaData {
		g.Go(func() error {
			results, err := NewSchemaLogic(ctx, l.core).Search(opts.Query, RAG_MERGED_KNOWLEDGE_LIMIT)
			if err != nil {
				slog.Error("Schema search for RAG context failed",
					slog.String("project_id", opts.ProjectID), slog.String("error", err.Error()))
				return nil
			}
			ragCtx.SchemaData = results
			return nil
		})
	}

	_ = g.Wait()

	return ragCtx
}

// fetchChatHistory 取最近 N 条消息并翻转为对话顺序
func (l *RAGLogic) fetchChatHistory(ctx context.Context, sessionID string) []*types.ChatMessage {
	if sessionID == "" {
		return nil
	}

	messages, err := l.core.Store().ChatMessageStore().ListSessionMessages(ctx, types.GetChatMessageOptions{
		SessionID: sessionID,
	}, 1, RAG_CHAT_HISTORY_LIMIT)
	if err != nil {
		slog.Error("Failed to fetch chat history for RAG context",
			slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return nil
	}

	return lo.Reverse(messages)
}

// fetchRelevantKnowledge 附带文件时先取会话级条目再补项目级，合并上限 8 条
func (l *RAGLogic) fetchRelevantKnowledge(ctx context.Context, opts BuildRAGContextOptions) []*types.KnowledgeBaseEntry {
	retrieval := NewRetrievalLogic(ctx, l.core)

	if !opts.HasAttachedFiles {
		return retrieval.RetrieveRelevantKnowledge(opts.ProjectID, opts.Query, DEFAULT_RETRIEVAL_LIMIT)
	}

	sessionEntries := retrieval.RetrieveSessionSpecific(opts.ProjectID, opts.SessionID, opts.Query, DEFAULT_RETRIEVAL_LIMIT)
	projectEntries := retrieval.RetrieveRelevantKnowledge(opts.ProjectID, opts.Query, DEFAULT_RETRIEVAL_LIMIT)

	merged := make([]*types.KnowledgeBaseEntry, 0, len(sessionEntries)+len(projectEntries))
	merged = append(merged, sessionEntries...)
	for _, entry := range projectEntries {
		if lo.ContainsBy(merged, func(item *types.KnowledgeBaseEntry) bool {
			return item.ID == entry.ID
		}) {
			continue
		}
		merged = append(merged, entry)
	}

	if len(merged) > RAG_MERGED_KNOWLEDGE_LIMIT {
		merged = merged[:RAG_MERGED_KNOWLEDGE_LIMIT]
	}
	return merged
}
