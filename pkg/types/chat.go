package types

import (
	sq "github.com/Masterminds/squirrel"
)

type ChatSession struct {
	ID               string `json:"id" db:"id"`
	ProjectID        string `json:"project_id" db:"project_id"`
	UserID           string `json:"user_id" db:"user_id"`
	Title            string `json:"title" db:"title"`
	CreatedAt        int64  `json:"created_at" db:"created_at"`
	LatestAccessTime int64  `json:"latest_access_time" db:"latest_access_time"`
}

type MessageUserRole string

const (
	USER_ROLE_SYSTEM    MessageUserRole = "system"
	USER_ROLE_USER      MessageUserRole = "user"
	USER_ROLE_ASSISTANT MessageUserRole = "assistant"
)

func (r MessageUserRole) String() string {
	return string(r)
}

// ChatMessage 会话消息，检索与上下文装配只读消费
type ChatMessage struct {
	ID        string          `json:"id" db:"id"`
	SessionID string          `json:"session_id" db:"session_id"`
	ProjectID string          `json:"project_id" db:"project_id"`
	UserID    string          `json:"user_id" db:"user_id"`
	Role      MessageUserRole `json:"role" db:"role"`
	Message   string          `json:"message" db:"message"`
	SendTime  int64           `json:"send_time" db:"send_time"`
	Sequence  int64           `json:"sequence" db:"sequence"`
}

type GetChatMessageOptions struct {
	SessionID string
	ProjectID string
	Role      MessageUserRole
}

func (opts GetChatMessageOptions) Apply(query *sq.SelectBuilder) {
	if opts.SessionID != "" {
		*query = query.Where(sq.Eq{"session_id": opts.SessionID})
	}
	if opts.ProjectID != "" {
		*query = query.Where(sq.Eq{"project_id": opts.ProjectID})
	}
	if opts.Role != "" {
		*query = query.Where(sq.Eq{"role": opts.Role})
	}
}

// MessageContext 提交给模型的消息上下文
type MessageContext struct {
	Role    MessageUserRole `json:"role"`
	Content string          `json:"content"`
}

// RAGContext 提示词装配消费的有界上下文
type RAGContext struct {
	ChatHistory       []*ChatMessage        `json:"chat_history"`
	RelevantKnowledge []*KnowledgeBaseEntry `json:"relevant_knowledge"`
	SchemaData        []SchemaSearchResult  `json:"schema_data,omitempty"`
}
