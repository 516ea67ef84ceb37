package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"

	"github.com/draftly-ai/draftly/pkg/register"
	"github.com/draftly-ai/draftly/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.KnowledgeBaseStore = NewKnowledgeBaseStore(provider)
	})
}

type KnowledgeBaseStoreImpl struct {
	CommonFields
}

// NewKnowledgeBaseStore 创建新的 KnowledgeBaseStore 实例
func NewKnowledgeBaseStore(provider SqlProviderAchieve) *KnowledgeBaseStoreImpl {
	repo := &KnowledgeBaseStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_KNOWLEDGE_BASE)
	repo.SetAllColumns("id", "project_id", "session_id", "content", "source", "metadata", "embedding", "created_at")
	return repo
}

// Create 创建新的知识库条目
func (s *KnowledgeBaseStoreImpl) Create(ctx context.Context, data types.KnowledgeBaseEntry) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "project_id", "session_id", "content", "source", "metadata", "embedding", "created_at").
		Values(data.ID, data.ProjectID, data.SessionID, data.Content, data.Source, data.Metadata, data.Embedding, data.CreatedAt)

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

// BatchCreate 批量创建知识库条目，一次文档切分产出的所有 chunk 走同一条 insert
func (s *KnowledgeBaseStoreImpl) BatchCreate(ctx context.Context, datas []*types.KnowledgeBaseEntry) error {
	if len(datas) == 0 {
		return nil
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "project_id", "session_id", "content", "source", "metadata", "embedding", "created_at")

	for _, data := range datas {
		if data.CreatedAt == 0 {
			data.CreatedAt = time.Now().Unix()
		}
		query = query.Values(data.ID, data.ProjectID, data.SessionID, data.Content, data.Source, data.Metadata, data.Embedding, data.CreatedAt)
	}

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

func (s *KnowledgeBaseStoreImpl) Get(ctx context.Context, opts types.GetKnowledgeBaseOptions) (*types.KnowledgeBaseEntry, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable())
	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.KnowledgeBaseEntry
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *KnowledgeBaseStoreImpl) Update(ctx context.Context, opts types.GetKnowledgeBaseOptions, args types.UpdateKnowledgeBaseArgs) error {
	query := sq.Update(s.GetTable())
	if args.Content != "" {
		query = query.Set("content", args.Content)
	}
	if args.Metadata != nil {
		query = query.Set("metadata", args.Metadata)
	}
	if args.Embedding != nil {
		query = query.Set("embedding", *args.Embedding)
	}

	if opts.ID != "" {
		query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.ProjectID != "" {
		query = query.Where(sq.Eq{"project_id": opts.ProjectID})
	}
	if opts.SessionID != "" {
		query = query.Where(sq.Eq{"session_id": opts.SessionID})
	}
	if opts.Source != "" {
		query = query.Where(sq.Eq{"source": opts.Source})
	}

	queryString, sqlArgs, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, sqlArgs...)
	return err
}

func (s *KnowledgeBaseStoreImpl) Delete(ctx context.Context, opts types.GetKnowledgeBaseOptions) error {
	_, err := s.DeleteWithCount(ctx, opts)
	return err
}

// DeleteWithCount 删除并返回影响行数，发布流程据此记录清理了多少旧条目
func (s *KnowledgeBaseStoreImpl) DeleteWithCount(ctx context.Context, opts types.GetKnowledgeBaseOptions) (int64, error) {
	query := sq.Delete(s.GetTable())
	if opts.ID != "" {
		query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.ProjectID != "" {
		query = query.Where(sq.Eq{"project_id": opts.ProjectID})
	}
	if opts.SessionID != "" {
		query = query.Where(sq.Eq{"session_id": opts.SessionID})
	}
	if opts.Source != "" {
		query = query.Where(sq.Eq{"source": opts.Source})
	}
	if len(opts.Sources) > 0 {
		query = query.Where(sq.Eq{"source": opts.Sources})
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

func (s *KnowledgeBaseStoreImpl) List(ctx context.Context, opts types.GetKnowledgeBaseOptions, page, pageSize uint64) ([]*types.KnowledgeBaseEntry, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	if page != types.NO_PAGING && pageSize != types.NO_PAGING {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}
	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []*types.KnowledgeBaseEntry
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// ListFallback 检索降级使用的直接拉取
func (s *KnowledgeBaseStoreImpl) ListFallback(ctx context.Context, projectID, sessionID string, limit uint64) ([]*types.KnowledgeBaseEntry, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"project_id": projectID}).
		OrderBy("source ASC", "created_at DESC").
		Limit(limit)
	if sessionID != "" {
		query = query.Where(sq.Eq{"session_id": sessionID})
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []*types.KnowledgeBaseEntry
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *KnowledgeBaseStoreImpl) Total(ctx context.Context, opts types.GetKnowledgeBaseOptions) (uint64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable())
	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var total uint64
	if err = s.GetReplica(ctx).Get(&total, queryString, args...); err != nil {
		return 0, err
	}
	return total, nil
}

// SimilaritySearch 余弦相似度检索
// pgvector supported distance functions are:
// <-> - L2 distance
// <#> - (negative) inner product
// <=> - cosine distance
// <+> - L1 distance (added in 0.7.0)
func (s *KnowledgeBaseStoreImpl) SimilaritySearch(ctx context.Context, projectID, sessionID string, embedding pgvector.Vector, threshold float64, limit uint64) ([]*types.KnowledgeBaseEntry, error) {
	simColumn, vectorArgs, _ := sq.Expr("1 - (embedding <=> ?) as similarity", embedding).ToSql()
	query := sq.Select("id", "project_id", "session_id", "content", "source", "metadata", "embedding", "created_at", simColumn).
		From(s.GetTable()).
		Where(sq.Eq{"project_id": projectID}).
		Limit(limit).
		OrderBy("similarity DESC")

	if sessionID != "" {
		query = query.Where(sq.Eq{"session_id": sessionID})
	}
	if threshold > 0 {
		thresholdCond, thresholdArgs, _ := sq.Expr("1 - (embedding <=> ?) >= ?", embedding, threshold).ToSql()
		query = query.Where(thresholdCond, thresholdArgs...)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	args = append(vectorArgs, args...)

	var res []*types.KnowledgeBaseEntry
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
