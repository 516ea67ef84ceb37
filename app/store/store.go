package store

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/draftly-ai/draftly/pkg/sqlstore"
	"github.com/draftly-ai/draftly/pkg/types"
)

// Store 聚合所有实体存储，logic 层只依赖该接口，便于测试替换
type Store interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	KnowledgeBaseStore() KnowledgeBaseStore
	ContentVersionStore() ContentVersionStore
	ChatSessionStore() ChatSessionStore
	ChatMessageStore() ChatMessageStore
	AuthorStore() AuthorStore
	CategoryStore() CategoryStore
	BlogStore() BlogStore
}

// KnowledgeBaseStore 知识库条目存储
type KnowledgeBaseStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.KnowledgeBaseEntry) error
	BatchCreate(ctx context.Context, datas []*types.KnowledgeBaseEntry) error
	Get(ctx context.Context, opts types.GetKnowledgeBaseOptions) (*types.KnowledgeBaseEntry, error)
	Update(ctx context.Context, opts types.GetKnowledgeBaseOptions, args types.UpdateKnowledgeBaseArgs) error
	Delete(ctx context.Context, opts types.GetKnowledgeBaseOptions) error
	DeleteWithCount(ctx context.Context, opts types.GetKnowledgeBaseOptions) (int64, error)
	List(ctx context.Context, opts types.GetKnowledgeBaseOptions, page, pageSize uint64) ([]*types.KnowledgeBaseEntry, error)
	// ListFallback 检索降级路径使用的直接拉取，按 source ASC, created_at DESC 排序
	ListFallback(ctx context.Context, projectID, sessionID string, limit uint64) ([]*types.KnowledgeBaseEntry, error)
	Total(ctx context.Context, opts types.GetKnowledgeBaseOptions) (uint64, error)
	// SimilaritySearch 余弦相似度检索，sessionID 为空时检索整个项目
	SimilaritySearch(ctx context.Context, projectID, sessionID string, embedding pgvector.Vector, threshold float64, limit uint64) ([]*types.KnowledgeBaseEntry, error)
}

// ContentVersionStore 内容版本存储
type ContentVersionStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ContentVersion) error
	Get(ctx context.Context, id string) (*types.ContentVersion, error)
	GetLatest(ctx context.Context, sessionID string) (*types.ContentVersion, error)
	MaxVersionNumber(ctx context.Context, sessionID string) (int, error)
	List(ctx context.Context, opts types.GetContentVersionOptions, page, pageSize uint64) ([]*types.ContentVersion, error)
	UpdateContent(ctx context.Context, id, content string) error
	UpdatePublishState(ctx context.Context, id string, args types.UpdatePublishStateArgs) error
	// UnpublishAll 将会话下除 excludeID 外所有已发布版本置为未发布，返回影响行数
	UnpublishAll(ctx context.Context, sessionID, projectID, excludeID string) (int64, error)
}

type ChatSessionStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ChatSession) error
	GetChatSession(ctx context.Context, projectID, sessionID string) (*types.ChatSession, error)
	UpdateSessionTitle(ctx context.Context, sessionID, title string) error
	UpdateLatestAccessTime(ctx context.Context, projectID, sessionID string) error
	Delete(ctx context.Context, projectID, sessionID string) error
	List(ctx context.Context, projectID string, page, pageSize uint64) ([]types.ChatSession, error)
}

type ChatMessageStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ChatMessage) error
	GetMessage(ctx context.Context, sessionID, id string) (*types.ChatMessage, error)
	GetSessionLatestMessage(ctx context.Context, sessionID string) (*types.ChatMessage, error)
	ListSessionMessages(ctx context.Context, opts types.GetChatMessageOptions, page, pageSize uint64) ([]*types.ChatMessage, error)
	DeleteAll(ctx context.Context, sessionID string) error
}

type AuthorStore interface {
	sqlstore.SqlCommons
	Upsert(ctx context.Context, data types.Author) (*types.Author, error)
	GetBySlug(ctx context.Context, slug string) (*types.Author, error)
	List(ctx context.Context) ([]types.Author, error)
	ListBySlugs(ctx context.Context, slugs []string) ([]types.Author, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, keywords string, limit uint64) ([]types.SchemaSearchResult, error)
}

type CategoryStore interface {
	sqlstore.SqlCommons
	Upsert(ctx context.Context, data types.Category) (*types.Category, error)
	GetByTitle(ctx context.Context, title string) (*types.Category, error)
	List(ctx context.Context) ([]types.Category, error)
	ListByTitles(ctx context.Context, titles []string) ([]types.Category, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, keywords string, limit uint64) ([]types.SchemaSearchResult, error)
}

type BlogStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Blog) error
	Update(ctx context.Context, id string, args types.UpdateBlogArgs) error
	Get(ctx context.Context, id string) (*types.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*types.Blog, error)
	List(ctx context.Context, page, pageSize uint64) ([]types.Blog, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, keywords string, limit uint64) ([]types.SchemaSearchResult, error)
}
