package types

import (
	sq "github.com/Masterminds/squirrel"
)

// ContentVersion 内容版本。version_number 以会话为单位从 1 严格递增，
// 同一 (session_id, project_id) 任意时刻最多一个 published=true。
type ContentVersion struct {
	ID            string `json:"id" db:"id"`
	SessionID     string `json:"session_id" db:"session_id"`
	ProjectID     string `json:"project_id" db:"project_id"`
	MessageID     string `json:"message_id" db:"message_id"`
	VersionNumber int    `json:"version_number" db:"version_number"`
	Title         string `json:"title" db:"title"`
	Author        string `json:"author" db:"author"`
	Content       string `json:"content" db:"content"`
	Published     bool   `json:"published" db:"published"`
	PublishedAt   int64  `json:"published_at" db:"published_at"`
	DocumentID    string `json:"document_id" db:"document_id"`
	CreatedAt     int64  `json:"created_at" db:"created_at"`
	UpdatedAt     int64  `json:"updated_at" db:"updated_at"`
}

type GetContentVersionOptions struct {
	ID        string
	SessionID string
	ProjectID string
	Published *bool
	ExcludeID string
}

func (opts GetContentVersionOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.SessionID != "" {
		*query = query.Where(sq.Eq{"session_id": opts.SessionID})
	}
	if opts.ProjectID != "" {
		*query = query.Where(sq.Eq{"project_id": opts.ProjectID})
	}
	if opts.Published != nil {
		*query = query.Where(sq.Eq{"published": *opts.Published})
	}
	if opts.ExcludeID != "" {
		*query = query.Where(sq.NotEq{"id": opts.ExcludeID})
	}
}

// UpdatePublishStateArgs publish/unpublish 状态变更参数
type UpdatePublishStateArgs struct {
	Published   bool
	PublishedAt int64
	DocumentID  string
	Touch       bool // 是否刷新 updated_at
}
