package v1

import (
	"context"
	"database/sql"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/draftly-ai/draftly/app/core"
	"github.com/draftly-ai/draftly/pkg/errors"
	"github.com/draftly-ai/draftly/pkg/i18n"
	"github.com/draftly-ai/draftly/pkg/types"
	"github.com/draftly-ai/draftly/pkg/utils"
)

type SchemaLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewSchemaLogic(ctx context.Context, core *core.Core) *SchemaLogic {
	return &SchemaLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *SchemaLogic) UpsertAuthor(name, slug, bio, thumbnailImg string) (*types.Author, error) {
	if name == "" {
		return nil, errors.New("SchemaLogic.UpsertAuthor.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if slug == "" {
		slug = utils.GenSlug(name)
	}

	author, err := l.core.Store().AuthorStore().Upsert(l.ctx, types.Author{
		ID:           utils.GenUniqIDStr(),
		Name:         name,
		Slug:         slug,
		Bio:          bio,
		ThumbnailImg: thumbnailImg,
	})
	if err != nil {
		return nil, errors.New("SchemaLogic.UpsertAuthor.AuthorStore.Upsert", i18n.ERROR_INTERNAL, err)
	}
	return author, nil
}

func (l *SchemaLogic) ListAuthors() ([]types.Author, error) {
	list, err := l.core.Store().AuthorStore().List(l.ctx)
	if err != nil {
		return nil, errors.New("SchemaLogic.ListAuthors.AuthorStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *SchemaLogic) DeleteAuthor(id string) error {
	if err := l.core.Store().AuthorStore().Delete(l.ctx, id); err != nil {
		return errors.New("SchemaLogic.DeleteAuthor.AuthorStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *SchemaLogic) UpsertCategory(title, description string) (*types.Category, error) {
	if title == "" {
		return nil, errors.New("SchemaLogic.UpsertCategory.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	category, err := l.core.Store().CategoryStore().Upsert(l.ctx, types.Category{
		ID:          utils.GenUniqIDStr(),
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, errors.New("SchemaLogic.UpsertCategory.CategoryStore.Upsert", i18n.ERROR_INTERNAL, err)
	}
	return category, nil
}

func (l *SchemaLogic) ListCategories() ([]types.Category, error) {
	list, err := l.core.Store().CategoryStore().List(l.ctx)
	if err != nil {
		return nil, errors.New("SchemaLogic.ListCategories.CategoryStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *SchemaLogic) DeleteCategory(id string) error {
	if err := l.core.Store().CategoryStore().Delete(l.ctx, id); err != nil {
		return errors.New("SchemaLogic.DeleteCategory.CategoryStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

type CreateBlogArgs struct {
	Title            string
	Slug             string
	Content          string
	Excerpt          string
	Authors          types.Metadata
	Categories       types.Metadata
	ThumbnailImg     types.Metadata
	SEOFields        types.Metadata
	ContentVersionID string
}

// CreateBlog 创建博客文档，slug 冲突视为业务错误
func (l *SchemaLogic) CreateBlog(args CreateBlogArgs) (*types.Blog, error) {
	if args.Title == "" || args.Content == "" {
		return nil, errors.New("SchemaLogic.CreateBlog.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if args.Slug == "" {
		args.Slug = utils.GenSlug(args.Title)
	}

	exist, err := l.core.Store().BlogStore().GetBySlug(l.ctx, args.Slug)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("SchemaLogic.CreateBlog.BlogStore.GetBySlug", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return nil, errors.New("SchemaLogic.CreateBlog.slugExist", i18n.ERROR_SLUG_EXIST, nil).Code(http.StatusConflict)
	}

	blog := types.Blog{
		ID:               utils.GenUniqIDStr(),
		Title:            args.Title,
		Slug:             args.Slug,
		Content:          args.Content,
		Excerpt:          args.Excerpt,
		Authors:          args.Authors,
		Categories:       args.Categories,
		ThumbnailImg:     args.ThumbnailImg,
		SEOFields:        args.SEOFields,
		ContentVersionID: args.ContentVersionID,
		CreatedAt:        types.GetCurrentTimestamp(),
		UpdatedAt:        types.GetCurrentTimestamp(),
	}
	if err = l.core.Store().BlogStore().Create(l.ctx, blog); err != nil {
		return nil, errors.New("SchemaLogic.CreateBlog.BlogStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return &blog, nil
}

func (l *SchemaLogic) UpdateBlog(id string, args types.UpdateBlogArgs) error {
	if err := l.core.Store().BlogStore().Update(l.ctx, id, args); err != nil {
		return errors.New("SchemaLogic.UpdateBlog.BlogStore.Update", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *SchemaLogic) GetBlog(id string) (*types.Blog, error) {
	blog, err := l.core.Store().BlogStore().Get(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("SchemaLogic.GetBlog.BlogStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if blog == nil || err == sql.ErrNoRows {
		return nil, errors.New("SchemaLogic.GetBlog.notfound", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}
	return blog, nil
}

func (l *SchemaLogic) ListBlogs(page, pageSize uint64) ([]types.Blog, error) {
	list, err := l.core.Store().BlogStore().List(l.ctx, page, pageSize)
	if err != nil {
		return nil, errors.New("SchemaLogic.ListBlogs.BlogStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *SchemaLogic) DeleteBlog(id string) error {
	if err := l.core.Store().BlogStore().Delete(l.ctx, id); err != nil {
		return errors.New("SchemaLogic.DeleteBlog.BlogStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// Search 并发检索三张 schema 表并汇总
func (l *SchemaLogic) Search(keywords string, limit uint64) ([]types.SchemaSearchResult, error) {
	if keywords == "" {
		return nil, nil
	}

	var (
		authors    []types.SchemaSearchResult
		categories []types.SchemaSearchResult
		blogs      []types.SchemaSearchResult
	)

	g, ctx := errgroup.WithContext(l.ctx)
	g.Go(func() error {
		var err error
		authors, err = l.core.Store().AuthorStore().Search(ctx, keywords, limit)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = l.core.Store().CategoryStore().Search(ctx, keywords, limit)
		return err
	})
	g.Go(func() error {
		var err error
		blogs, err = l.core.Store().BlogStore().Search(ctx, keywords, limit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, errors.New("SchemaLogic.Search", i18n.ERROR_INTERNAL, err)
	}

	result := make([]types.SchemaSearchResult, 0, len(authors)+len(categories)+len(blogs))
	result = append(result, blogs...)
	result = append(result, authors...)
	result = append(result, categories...)
	if uint64(len(result)) > limit && limit > 0 {
		result = result[:limit]
	}
	return result, nil
}
