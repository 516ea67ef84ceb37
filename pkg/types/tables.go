package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "draftly_"

const (
	TABLE_KNOWLEDGE_BASE  = TableName("knowledge_base")
	TABLE_CONTENT_VERSION = TableName("content_versions")
	TABLE_CHAT_SESSION    = TableName("chat_sessions")
	TABLE_CHAT_MESSAGE    = TableName("chat_messages")
	TABLE_AUTHOR_SCHEMA   = TableName("author_schema")
	TABLE_CATEGORY_SCHEMA = TableName("category_schema")
	TABLE_BLOG_SCHEMA     = TableName("blog_schema")
)
