package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/draftly-ai/draftly/pkg/register"
	"github.com/draftly-ai/draftly/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.ContentVersionStore = NewContentVersionStore(provider)
	})
}

type ContentVersionStoreImpl struct {
	CommonFields
}

// NewContentVersionStore 创建新的 ContentVersionStore 实例
func NewContentVersionStore(provider SqlProviderAchieve) *ContentVersionStoreImpl {
	repo := &ContentVersionStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CONTENT_VERSION)
	repo.SetAllColumns("id", "session_id", "project_id", "message_id", "version_number",
		"title", "author", "content", "published", "published_at", "document_id", "created_at", "updated_at")
	return repo
}

// Create 创建内容版本，version_number 由 logic 层在会话锁内分配
func (s *ContentVersionStoreImpl) Create(ctx context.Context, data types.ContentVersion) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = data.CreatedAt
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "session_id", "project_id", "message_id", "version_number",
			"title", "author", "content", "published", "published_at", "document_id", "created_at", "updated_at").
		Values(data.ID, data.SessionID, data.ProjectID, data.MessageID, data.VersionNumber,
			data.Title, data.Author, data.Content, data.Published, data.PublishedAt, data.DocumentID, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}

func (s *ContentVersionStoreImpl) Get(ctx context.Context, id string) (*types.ContentVersion, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.ContentVersion
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetLatest 获取会话下最新版本（version_number 最大者）
func (s *ContentVersionStoreImpl) GetLatest(ctx context.Context, sessionID string) (*types.ContentVersion, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("version_number DESC").Limit(1)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.ContentVersion
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// MaxVersionNumber 会话当前最大版本号，无版本时返回 0
func (s *ContentVersionStoreImpl) MaxVersionNumber(ctx context.Context, sessionID string) (int, error) {
	query := sq.Select("COALESCE(MAX(version_number), 0)").From(s.GetTable()).Where(sq.Eq{"session_id": sessionID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var max int
	if err = s.GetReplica(ctx).Get(&max, queryString, args...); err != nil {
		return 0, err
	}
	return max, nil
}

func (s *ContentVersionStoreImpl) List(ctx context.Context, opts types.GetContentVersionOptions, page, pageSize uint64) ([]*types.ContentVersion, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("version_number DESC")
	if page != types.NO_PAGING && pageSize != types.NO_PAGING {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}
	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []*types.ContentVersion
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateContent 更新版本正文并刷新 updated_at
func (s *ContentVersionStoreImpl) UpdateContent(ctx context.Context, id, content string) error {
	query := sq.Update(s.GetTable()).
		Set("content", content).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// UpdatePublishState 变更单个版本的发布状态
func (s *ContentVersionStoreImpl) UpdatePublishState(ctx context.Context, id string, args types.UpdatePublishStateArgs) error {
	query := sq.Update(s.GetTable()).
		Set("published", args.Published).
		Set("published_at", args.PublishedAt).
		Set("document_id", args.DocumentID).
		Where(sq.Eq{"id": id})

	if args.Touch {
		query = query.Set("updated_at", time.Now().Unix())
	}

	queryString, sqlArgs, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, sqlArgs...)
	return err
}

// UnpublishAll 下线会话内除 excludeID 外所有已发布版本，返回影响行数
func (s *ContentVersionStoreImpl) UnpublishAll(ctx context.Context, sessionID, projectID, excludeID string) (int64, error) {
	query := sq.Update(s.GetTable()).
		Set("published", false).
		Set("published_at", 0).
		Set("document_id", "").
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"session_id": sessionID, "project_id": projectID, "published": true})

	if excludeID != "" {
		query = query.Where(sq.NotEq{"id": excludeID})
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	res, err := s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
