package types

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"
)

// KnowledgeSource 知识条目来源，闭合枚举，禁止自由文本
type KnowledgeSource string

const (
	KNOWLEDGE_SOURCE_USER_UPLOAD       KnowledgeSource = "user_upload"
	KNOWLEDGE_SOURCE_WEB_SCRAPING      KnowledgeSource = "web_scraping"
	KNOWLEDGE_SOURCE_PUBLISHED_CONTENT KnowledgeSource = "published_content"
	KNOWLEDGE_SOURCE_GENERATED_CONTENT KnowledgeSource = "generated_content"
	KNOWLEDGE_SOURCE_SCHEMA_PAGES      KnowledgeSource = "schema_pages"
	KNOWLEDGE_SOURCE_SCHEMA_COMPONENTS KnowledgeSource = "schema_components"
	KNOWLEDGE_SOURCE_SCHEMA_GLOBAL_SEO KnowledgeSource = "schema_global_seo"
	KNOWLEDGE_SOURCE_UNKNOWN           KnowledgeSource = "unknown"
)

func (s KnowledgeSource) String() string {
	return string(s)
}

func KnowledgeSourceFromString(s string) KnowledgeSource {
	switch strings.ToLower(s) {
	case string(KNOWLEDGE_SOURCE_USER_UPLOAD):
		return KNOWLEDGE_SOURCE_USER_UPLOAD
	case string(KNOWLEDGE_SOURCE_WEB_SCRAPING):
		return KNOWLEDGE_SOURCE_WEB_SCRAPING
	case string(KNOWLEDGE_SOURCE_PUBLISHED_CONTENT):
		return KNOWLEDGE_SOURCE_PUBLISHED_CONTENT
	case string(KNOWLEDGE_SOURCE_GENERATED_CONTENT):
		return KNOWLEDGE_SOURCE_GENERATED_CONTENT
	case string(KNOWLEDGE_SOURCE_SCHEMA_PAGES):
		return KNOWLEDGE_SOURCE_SCHEMA_PAGES
	case string(KNOWLEDGE_SOURCE_SCHEMA_COMPONENTS):
		return KNOWLEDGE_SOURCE_SCHEMA_COMPONENTS
	case string(KNOWLEDGE_SOURCE_SCHEMA_GLOBAL_SEO):
		return KNOWLEDGE_SOURCE_SCHEMA_GLOBAL_SEO
	default:
		return KNOWLEDGE_SOURCE_UNKNOWN
	}
}

// KnowledgeBaseEntry 知识库条目。embedding 必须是 Embedder 对 content 的输出。
// session_id 为空表示项目级条目。
type KnowledgeBaseEntry struct {
	ID        string          `json:"id" db:"id"`
	ProjectID string          `json:"project_id" db:"project_id"`
	SessionID string          `json:"session_id" db:"session_id"`
	Content   string          `json:"content" db:"content"`
	Source    KnowledgeSource `json:"source" db:"source"`
	Metadata  Metadata        `json:"metadata" db:"metadata"`
	Embedding pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt int64           `json:"created_at" db:"created_at"`

	// Similarity 仅在相似度检索时由查询填充
	Similarity float64 `json:"similarity,omitempty" db:"similarity"`
}

type GetKnowledgeBaseOptions struct {
	ID        string
	ProjectID string
	SessionID string
	Source    KnowledgeSource
	Sources   []KnowledgeSource
}

func (opts GetKnowledgeBaseOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.ProjectID != "" {
		*query = query.Where(sq.Eq{"project_id": opts.ProjectID})
	}
	if opts.SessionID != "" {
		*query = query.Where(sq.Eq{"session_id": opts.SessionID})
	}
	if opts.Source != "" {
		*query = query.Where(sq.Eq{"source": opts.Source})
	}
	if len(opts.Sources) > 0 {
		*query = query.Where(sq.Eq{"source": opts.Sources})
	}
}

type UpdateKnowledgeBaseArgs struct {
	Content   string
	Metadata  Metadata
	Embedding *pgvector.Vector
}
