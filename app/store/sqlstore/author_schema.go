package sqlstore

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/draftly-ai/draftly/pkg/register"
	"github.com/draftly-ai/draftly/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.AuthorStore = NewAuthorStore(provider)
	})
}

type AuthorStoreImpl struct {
	CommonFields
}

func NewAuthorStore(provider SqlProviderAchieve) *AuthorStoreImpl {
	repo := &AuthorStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_AUTHOR_SCHEMA)
	repo.SetAllColumns("id", "name", "slug", "bio", "thumbnail_img", "referenced_by", "created_at", "updated_at")
	return repo
}

// Upsert 以 slug 为冲突键写入作者，已存在则更新资料并返回行
func (s *AuthorStoreImpl) Upsert(ctx context.Context, data types.Author) (*types.Author, error) {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	data.UpdatedAt = time.Now().Unix()
	if data.ReferencedBy == nil {
		data.ReferencedBy = types.Metadata{}
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "name", "slug", "bio", "thumbnail_img", "referenced_by", "created_at", "updated_at").
		Values(data.ID, data.Name, data.Slug, data.Bio, data.ThumbnailImg, data.ReferencedBy, data.CreatedAt, data.UpdatedAt).
		Suffix(`ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			bio = EXCLUDED.bio,
			thumbnail_img = EXCLUDED.thumbnail_img,
			referenced_by = EXCLUDED.referenced_by,
			updated_at = EXCLUDED.updated_at`)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
		return nil, err
	}
	return s.GetBySlug(ctx, data.Slug)
}

func (s *AuthorStoreImpl) GetBySlug(ctx context.Context, slug string) (*types.Author, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"slug": slug})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Author
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *AuthorStoreImpl) List(ctx context.Context) ([]types.Author, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("name ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Author
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *AuthorStoreImpl) ListBySlugs(ctx context.Context, slugs []string) ([]types.Author, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"slug": slugs})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Author
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *AuthorStoreImpl) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// Search 按名称或简介模糊检索，结果映射为统一的 schema 结构
func (s *AuthorStoreImpl) Search(ctx context.Context, keywords string, limit uint64) ([]types.SchemaSearchResult, error) {
	pattern := "%" + keywords + "%"
	query := sq.Select("'author' as table_name", "id", "name as title", "bio as content", "slug", "created_at").
		From(s.GetTable()).
		Where(sq.Or{
			sq.Expr("name ILIKE ?", pattern),
			sq.Expr("bio ILIKE ?", pattern),
		}).
		OrderBy("created_at DESC").
		Limit(limit)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.SchemaSearchResult
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, fmt.Errorf("failed to search authors: %w", err)
	}
	return res, nil
}
