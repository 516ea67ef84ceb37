package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/draftly-ai/draftly/app/logic/v1"
	"github.com/draftly-ai/draftly/app/response"
	"github.com/draftly-ai/draftly/pkg/utils"
)

type UpsertAuthorRequest struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug"`
	Bio          string `json:"bio"`
	ThumbnailImg string `json:"thumbnail_img"`
}

func (s *HttpSrv) UpsertAuthor(c *gin.Context) {
	var req UpsertAuthorRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	author, err := v1.NewSchemaLogic(c, s.Core).UpsertAuthor(req.Name, req.Slug, req.Bio, req.ThumbnailImg)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, author)
}

func (s *HttpSrv) ListAuthors(c *gin.Context) {
	list, err := v1.NewSchemaLogic(c, s.Core).ListAuthors()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) DeleteAuthor(c *gin.Context) {
	if err := v1.NewSchemaLogic(c, s.Core).DeleteAuthor(c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type UpsertCategoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (s *HttpSrv) UpsertCategory(c *gin.Context) {
	var req UpsertCategoryRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	category, err := v1.NewSchemaLogic(c, s.Core).UpsertCategory(req.Title, req.Description)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, category)
}

func (s *HttpSrv) ListCategories(c *gin.Context) {
	list, err := v1.NewSchemaLogic(c, s.Core).ListCategories()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) DeleteCategory(c *gin.Context) {
	if err := v1.NewSchemaLogic(c, s.Core).DeleteCategory(c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) GetBlog(c *gin.Context) {
	blog, err := v1.NewSchemaLogic(c, s.Core).GetBlog(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, blog)
}

type ListBlogsRequest struct {
	Page     uint64 `form:"page" json:"page"`
	PageSize uint64 `form:"pagesize" json:"pagesize"`
}

func (s *HttpSrv) ListBlogs(c *gin.Context) {
	var req ListBlogsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	list, err := v1.NewSchemaLogic(c, s.Core).ListBlogs(req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

type SearchSchemaRequest struct {
	Keywords string `form:"keywords" json:"keywords" binding:"required"`
	Limit    uint64 `form:"limit" json:"limit"`
}

// SearchSchema 跨 schema 表模糊检索
func (s *HttpSrv) SearchSchema(c *gin.Context) {
	var req SearchSchemaRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if req.Limit == 0 {
		req.Limit = 10
	}

	result, err := v1.NewSchemaLogic(c, s.Core).Search(req.Keywords, req.Limit)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}
