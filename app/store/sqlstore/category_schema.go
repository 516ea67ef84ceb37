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
		provider.stores.CategoryStore = NewCategoryStore(provider)
	})
}

type CategoryStoreImpl struct {
	CommonFields
}

func NewCategoryStore(provider SqlProviderAchieve) *CategoryStoreImpl {
	repo := &CategoryStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CATEGORY_SCHEMA)
	repo.SetAllColumns("id", "title", "description", "referenced_by", "created_at", "updated_at")
	return repo
}

// Upsert 以 title 为冲突键写入分类
func (s *CategoryStoreImpl) Upsert(ctx context.Context, data types.Category) (*types.Category, error) {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	data.UpdatedAt = time.Now().Unix()
	if data.ReferencedBy == nil {
		data.ReferencedBy = types.Metadata{}
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "title", "description", "referenced_by", "created_at", "updated_at").
		Values(data.ID, data.Title, data.Description, data.ReferencedBy, data.CreatedAt, data.UpdatedAt).
		Suffix(`ON CONFLICT (title) DO UPDATE SET
			description = EXCLUDED.description,
			referenced_by = EXCLUDED.referenced_by,
			updated_at = EXCLUDED.updated_at`)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
		return nil, err
	}
	return s.GetByTitle(ctx, data.Title)
}

func (s *CategoryStoreImpl) GetByTitle(ctx context.Context, title string) (*types.Category, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"title": title})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Category
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *CategoryStoreImpl) List(ctx context.Context) ([]types.Category, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("title ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Category
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *CategoryStoreImpl) ListByTitles(ctx context.Context, titles []string) ([]types.Category, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"title": titles})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Category
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *CategoryStoreImpl) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *CategoryStoreImpl) Search(ctx context.Context, keywords string, limit uint64) ([]types.SchemaSearchResult, error) {
	pattern := "%" + keywords + "%"
	query := sq.Select("'category' as table_name", "id", "title", "description as content", "'' as slug", "created_at").
		From(s.GetTable()).
		Where(sq.Or{
			sq.Expr("title ILIKE ?", pattern),
			sq.Expr("description ILIKE ?", pattern),
		}).
		OrderBy("created_at DESC").
		Limit(limit)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.SchemaSearchResult
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}
	return res, nil
}
