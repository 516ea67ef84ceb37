package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/draftly-ai/draftly/app/logic/v1"
	"github.com/draftly-ai/draftly/app/response"
	"github.com/draftly-ai/draftly/pkg/types"
	"github.com/draftly-ai/draftly/pkg/utils"
)

type CreateContentVersionRequest struct {
	MessageID string `json:"message_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Content   string `json:"content" binding:"required"`
}

func (s *HttpSrv) CreateContentVersion(c *gin.Context) {
	var req CreateContentVersionRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	version, err := v1.NewContentVersionLogic(c, s.Core).CreateVersion(
		c.Param("projectid"), c.Param("sessionid"), req.MessageID, req.Title, req.Author, req.Content)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, version)
}

func (s *HttpSrv) GetContentVersion(c *gin.Context) {
	version, err := v1.NewContentVersionLogic(c, s.Core).GetVersion(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, version)
}

func (s *HttpSrv) GetLatestContentVersion(c *gin.Context) {
	version, err := v1.NewContentVersionLogic(c, s.Core).GetLatestVersion(c.Param("sessionid"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, version)
}

type ListContentVersionsRequest struct {
	Published *bool  `form:"published" json:"published"`
	Page      uint64 `form:"page" json:"page"`
	PageSize  uint64 `form:"pagesize" json:"pagesize"`
}

func (s *HttpSrv) ListContentVersions(c *gin.Context) {
	var req ListContentVersionsRequest
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

	list, err := v1.NewContentVersionLogic(c, s.Core).ListVersions(types.GetContentVersionOptions{
		ProjectID: c.Param("projectid"),
		SessionID: c.Param("sessionid"),
		Published: req.Published,
	}, req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

type UpdateContentVersionRequest struct {
	Content string `json:"content" binding:"required"`
}

func (s *HttpSrv) UpdateContentVersion(c *gin.Context) {
	var req UpdateContentVersionRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	version, err := v1.NewContentVersionLogic(c, s.Core).UpdateContent(c.Param("id"), req.Content)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, version)
}

type PublishBlogRequest struct {
	VersionID    string         `json:"version_id" binding:"required"`
	Slug         string         `json:"slug"`
	Excerpt      string         `json:"excerpt"`
	Authors      types.Metadata `json:"authors"`
	Categories   types.Metadata `json:"categories"`
	ThumbnailImg types.Metadata `json:"thumbnail_img"`
	SEOFields    types.Metadata `json:"seo_fields"`
}

// PublishBlog 将版本发布为博客文档并切换发布状态
func (s *HttpSrv) PublishBlog(c *gin.Context) {
	var req PublishBlogRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	projectID := c.Param("projectid")
	sessionID := c.Param("sessionid")

	versionLogic := v1.NewContentVersionLogic(c, s.Core)
	version, err := versionLogic.GetVersion(req.VersionID)
	if err != nil {
		response.APIError(c, err)
		return
	}

	schemaLogic := v1.NewSchemaLogic(c, s.Core)

	var documentID string
	if version.DocumentID != "" {
		// 已有文档则覆盖内容
		documentID = version.DocumentID
		if err = schemaLogic.UpdateBlog(documentID, types.UpdateBlogArgs{
			Title:            version.Title,
			Content:          version.Content,
			Excerpt:          req.Excerpt,
			Authors:          req.Authors,
			Categories:       req.Categories,
			ThumbnailImg:     req.ThumbnailImg,
			SEOFields:        req.SEOFields,
			ContentVersionID: version.ID,
		}); err != nil {
			response.APIError(c, err)
			return
		}
	} else {
		blog, err := schemaLogic.CreateBlog(v1.CreateBlogArgs{
			Title:            version.Title,
			Slug:             req.Slug,
			Content:          version.Content,
			Excerpt:          req.Excerpt,
			Authors:          req.Authors,
			Categories:       req.Categories,
			ThumbnailImg:     req.ThumbnailImg,
			SEOFields:        req.SEOFields,
			ContentVersionID: version.ID,
		})
		if err != nil {
			response.APIError(c, err)
			return
		}
		documentID = blog.ID
	}

	published, err := versionLogic.PublishVersion(projectID, sessionID, req.VersionID, documentID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, published)
}

type UnpublishBlogRequest struct {
	VersionID string `json:"version_id" binding:"required"`
}

// UnpublishBlog 下线版本并删除其博客文档
func (s *HttpSrv) UnpublishBlog(c *gin.Context) {
	var req UnpublishBlogRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	projectID := c.Param("projectid")
	sessionID := c.Param("sessionid")

	versionLogic := v1.NewContentVersionLogic(c, s.Core)
	version, err := versionLogic.GetVersion(req.VersionID)
	if err != nil {
		response.APIError(c, err)
		return
	}

	if err = versionLogic.UnpublishVersion(projectID, sessionID, req.VersionID); err != nil {
		response.APIError(c, err)
		return
	}

	if version.DocumentID != "" {
		if err = v1.NewSchemaLogic(c, s.Core).DeleteBlog(version.DocumentID); err != nil {
			response.APIError(c, err)
			return
		}
	}

	response.APISuccess(c, nil)
}
