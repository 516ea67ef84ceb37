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
		provider.stores.BlogStore = NewBlogStore(provider)
	})
}

type BlogStoreImpl struct {
	CommonFields
}

func NewBlogStore(provider SqlProviderAchieve) *BlogStoreImpl {
	repo := &BlogStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_BLOG_SCHEMA)
	repo.SetAllColumns("id", "title", "slug", "content", "excerpt", "authors", "categories",
		"thumbnail_img", "seo_fields", "content_version_id", "created_at", "updated_at")
	return repo
}

func (s *BlogStoreImpl) Create(ctx context.Context, data types.Blog) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = data.CreatedAt
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "title", "slug", "content", "excerpt", "authors", "categories",
			"thumbnail_img", "seo_fields", "content_version_id", "created_at", "updated_at").
		Values(data.ID, data.Title, data.Slug, data.Content, data.Excerpt, data.Authors, data.Categories,
			data.ThumbnailImg, data.SEOFields, data.ContentVersionID, data.CreatedAt, data.UpdatedAt)

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

func (s *BlogStoreImpl) Update(ctx context.Context, id string, args types.UpdateBlogArgs) error {
	query := sq.Update(s.GetTable()).Set("updated_at", time.Now().Unix()).Where(sq.Eq{"id": id})
	if args.Title != "" {
		query = query.Set("title", args.Title)
	}
	if args.Content != "" {
		query = query.Set("content", args.Content)
	}
	if args.Excerpt != "" {
		query = query.Set("excerpt", args.Excerpt)
	}
	if args.Authors != nil {
		query = query.Set("authors", args.Authors)
	}
	if args.Categories != nil {
		query = query.Set("categories", args.Categories)
	}
	if args.ThumbnailImg != nil {
		query = query.Set("thumbnail_img", args.ThumbnailImg)
	}
	if args.SEOFields != nil {
		query = query.Set("seo_fields", args.SEOFields)
	}
	if args.ContentVersionID != "" {
		query = query.Set("content_version_id", args.ContentVersionID)
	}

	queryString, sqlArgs, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, sqlArgs...)
	return err
}

func (s *BlogStoreImpl) Get(ctx context.Context, id string) (*types.Blog, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Blog
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *BlogStoreImpl) GetBySlug(ctx context.Context, slug string) (*types.Blog, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"slug": slug})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Blog
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *BlogStoreImpl) List(ctx context.Context, page, pageSize uint64) ([]types.Blog, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	if page != types.NO_PAGING && pageSize != types.NO_PAGING {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Blog
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *BlogStoreImpl) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *BlogStoreImpl) Search(ctx context.Context, keywords string, limit uint64) ([]types.SchemaSearchResult, error) {
	pattern := "%" + keywords + "%"
	query := sq.Select("'blog' as table_name", "id", "title", "excerpt as content", "slug", "created_at").
		From(s.GetTable()).
		Where(sq.Or{
			sq.Expr("title ILIKE ?", pattern),
			sq.Expr("excerpt ILIKE ?", pattern),
			sq.Expr("content ILIKE ?", pattern),
		}).
		OrderBy("created_at DESC").
		Limit(limit)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.SchemaSearchResult
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, fmt.Errorf("failed to search blogs: %w", err)
	}
	return res, nil
}
